package handlers

import (
	"encoding/json"
	"net/http"

	"jobradarBack/internal/services"
)

type RerankHandler struct {
	Service *services.RerankService
}

// RerankJobs handles POST /ai/rerank/jobs. The body carries the compact
// summaries of the already-filtered page; the response is always a usable
// ordering even when the AI step is skipped or fails.
func (h *RerankHandler) RerankJobs(w http.ResponseWriter, r *http.Request) {
	h.rerank(w, r, services.RerankEntityJobs)
}

func (h *RerankHandler) RerankCompanies(w http.ResponseWriter, r *http.Request) {
	h.rerank(w, r, services.RerankEntityCompanies)
}

func (h *RerankHandler) RerankProfiles(w http.ResponseWriter, r *http.Request) {
	h.rerank(w, r, services.RerankEntityProfiles)
}

func (h *RerankHandler) rerank(w http.ResponseWriter, r *http.Request, entity string) {
	var req services.RerankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Entity = entity
	req.UserID = userIDFromContext(r)
	if req.UserID <= 0 {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	outcome := h.Service.Rerank(r.Context(), req)
	json.NewEncoder(w).Encode(outcome)
}
