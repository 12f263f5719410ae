package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobradarBack/internal/models"
	"jobradarBack/internal/services"
)

// AISearchHandler serves POST /ai/search: a short natural-language request is
// converted to filters and executed in one round trip.
type AISearchHandler struct {
	Extractor *services.FilterExtractorService
	Jobs      *services.JobService
}

type aiSearchRequest struct {
	UserQuery string `json:"userQuery"`
	// Older clients send the query under this name.
	Query string `json:"query"`
}

func (r aiSearchRequest) text() string {
	if r.UserQuery != "" {
		return r.UserQuery
	}
	return r.Query
}

type aiSearchResponse struct {
	Filters models.JobFilterCriteria `json:"filters"`
	Results models.JobSearchResponse `json:"results"`
}

func (h *AISearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID <= 0 {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req aiSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	criteria, err := h.Extractor.Extract(r.Context(), userID, req.text())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyQuery), errors.Is(err, services.ErrQueryTooLong):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrQuotaExceeded):
			http.Error(w, "Daily AI search limit reached", http.StatusTooManyRequests)
		default:
			http.Error(w, "Failed to interpret search query", http.StatusInternalServerError)
		}
		return
	}

	// The extracted tab is clamped and the caller is authenticated, so the
	// embedded search envelope carries its own error text if anything fails.
	results, _ := h.Jobs.Search(r.Context(), criteria)
	json.NewEncoder(w).Encode(aiSearchResponse{Filters: criteria, Results: results})
}
