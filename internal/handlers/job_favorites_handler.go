package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"jobradarBack/internal/models"
	"jobradarBack/internal/services"
)

type JobFavoriteHandler struct {
	Service *services.JobFavoriteService
}

func (h *JobFavoriteHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	var fav models.JobFavorite
	if err := json.NewDecoder(r.Body).Decode(&fav); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if fav.UserID == 0 {
		fav.UserID = userIDFromContext(r)
	}
	if fav.JobID == "" {
		http.Error(w, "Missing job_id", http.StatusBadRequest)
		return
	}
	if !canActForUser(r, fav.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.Service.AddToFavorites(r.Context(), fav.UserID, fav.JobID); err != nil {
		if errors.Is(err, models.ErrJobNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to add to favorites", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *JobFavoriteHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	jobID := getParam(r, "job_id")
	if err != nil || jobID == "" {
		http.Error(w, "Invalid user_id or job_id", http.StatusBadRequest)
		return
	}
	if !canActForUser(r, userID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.Service.RemoveFromFavorites(r.Context(), userID, jobID); err != nil {
		http.Error(w, "Failed to remove from favorites", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *JobFavoriteHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	jobID := getParam(r, "job_id")
	if err != nil || jobID == "" {
		http.Error(w, "Invalid user_id or job_id", http.StatusBadRequest)
		return
	}
	if !canActForUser(r, userID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	liked, err := h.Service.IsFavorite(r.Context(), userID, jobID)
	if err != nil {
		http.Error(w, "Failed to check favorite status", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"liked": liked})
}

func (h *JobFavoriteHandler) GetFavoritesByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user_id", http.StatusBadRequest)
		return
	}
	if !canActForUser(r, userID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	favs, err := h.Service.GetFavoritesByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get favorites", http.StatusInternalServerError)
		return
	}
	if favs == nil {
		favs = []models.JobFavorite{}
	}
	json.NewEncoder(w).Encode(favs)
}
