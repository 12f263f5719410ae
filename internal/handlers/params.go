package handlers

import (
	"net/http"

	"jobradarBack/internal/models"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// userIDFromContext reads the authenticated user id set by the JWT
// middleware. Zero means an anonymous request.
func userIDFromContext(r *http.Request) int {
	if id, ok := r.Context().Value("user_id").(int); ok {
		return id
	}
	return 0
}

// canActForUser reports whether the authenticated caller may operate on the
// given user's data. Ids arriving in paths or bodies are never trusted on
// their own; admins may act for anyone.
func canActForUser(r *http.Request, userID int) bool {
	if userID > 0 && userID == userIDFromContext(r) {
		return true
	}
	role, _ := r.Context().Value("role").(string)
	return role == models.RoleAdmin
}
