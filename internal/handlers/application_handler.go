package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"jobradarBack/internal/models"
	"jobradarBack/internal/services"
)

type ApplicationHandler struct {
	Service *services.ApplicationService
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req models.Application
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == 0 {
		req.UserID = userIDFromContext(r)
	}
	if req.JobID == "" {
		http.Error(w, "Missing job_id", http.StatusBadRequest)
		return
	}
	if !canActForUser(r, req.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	app, err := h.Service.Apply(r.Context(), req.UserID, req.JobID)
	if err != nil {
		if errors.Is(err, models.ErrJobNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to apply", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(app)
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid application ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err = h.Service.UpdateStatus(r.Context(), id, userIDFromContext(r), body.Status)
	if err != nil {
		if errors.Is(err, models.ErrInvalidApplicationStatus) {
			http.Error(w, "Invalid status", http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrNoRecord) {
			http.Error(w, "Application not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ApplicationHandler) GetApplicationsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user_id", http.StatusBadRequest)
		return
	}
	if !canActForUser(r, userID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	apps, err := h.Service.GetApplicationsByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get applications", http.StatusInternalServerError)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	json.NewEncoder(w).Encode(apps)
}
