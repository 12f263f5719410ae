package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"jobradarBack/internal/models"
	"jobradarBack/internal/services"
)

type JobHandler struct {
	Service *services.JobService
}

// jobSearchRequest is the POST body form of a search. It exists for the
// relevance mode, where the client supplies the query embedding and the
// recency cutoff alongside the usual filters.
type jobSearchRequest struct {
	JobType       string     `json:"jobType"`
	Visa          string     `json:"visa"`
	Location      string     `json:"location"`
	Platform      string     `json:"platform"`
	Company       string     `json:"company"`
	TitleKeywords string     `json:"titleKeywords"`
	Status        string     `json:"status"`
	MinSalary     float64    `json:"minSalary"`
	MinExperience int        `json:"minExperience"`
	SortBy        string     `json:"sortBy"`
	SortOrder     string     `json:"sortOrder"`
	Tab           string     `json:"tab"`
	Start         int        `json:"start"`
	End           int        `json:"end"`
	Embedding     []float32  `json:"embedding,omitempty"`
	CreatedAfter  *time.Time `json:"createdAfter,omitempty"`
}

// SearchJobs handles GET /jobs/search. Filters arrive as delimited query
// parameters; the response always carries the data/count/error envelope.
func (h *JobHandler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	criteria := models.ParseJobFilterParams(r.URL.Query())
	criteria.UserID = userIDFromContext(r)

	resp, status := h.Service.Search(r.Context(), criteria)
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	json.NewEncoder(w).Encode(resp)
}

// SearchJobsPost handles POST /jobs/search, the body-based variant used for
// relevance searches.
func (h *JobHandler) SearchJobsPost(w http.ResponseWriter, r *http.Request) {
	var req jobSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	criteria := req.toCriteria()
	criteria.UserID = userIDFromContext(r)

	resp, status := h.Service.Search(r.Context(), criteria)
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	json.NewEncoder(w).Encode(resp)
}

func (req jobSearchRequest) toCriteria() models.JobFilterCriteria {
	c := models.JobFilterCriteria{
		JobTypes:          models.SplitFilterValues(req.JobType),
		VisaRequirements:  models.SplitFilterValues(req.Visa),
		Locations:         models.SplitFilterValues(req.Location),
		Platforms:         models.SplitFilterValues(req.Platform),
		CompanyNames:      models.SplitFilterValues(req.Company),
		TitleKeywords:     models.SplitFilterValues(req.TitleKeywords),
		ApplicationStatus: models.SplitFilterValues(req.Status),
		MinSalary:         req.MinSalary,
		MinExperience:     req.MinExperience,
		SortBy:            req.SortBy,
		SortOrder:         models.NormalizeSortOrder(req.SortOrder),
		Tab:               models.NormalizeTab(req.Tab),
		RangeStart:        req.Start,
		RangeEnd:          req.End,
		Embedding:         req.Embedding,
		CreatedAfter:      req.CreatedAfter,
	}
	if c.RangeStart < 0 {
		c.RangeStart = 0
	}
	if c.RangeEnd < c.RangeStart {
		c.RangeEnd = c.RangeStart + 19
	}
	return c
}

func (h *JobHandler) GetJobByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing job ID", http.StatusBadRequest)
		return
	}

	job, err := h.Service.GetJob(r.Context(), id, userIDFromContext(r))
	if err != nil {
		if errors.Is(err, models.ErrJobNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get job", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(job)
}

func (h *JobHandler) CreatePosting(w http.ResponseWriter, r *http.Request) {
	var posting models.JobPosting
	if err := json.NewDecoder(r.Body).Decode(&posting); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	posting.CompanyID = userIDFromContext(r)

	created, err := h.Service.CreatePosting(r.Context(), posting)
	if err != nil {
		http.Error(w, "Failed to create posting", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *JobHandler) UpdatePosting(w http.ResponseWriter, r *http.Request) {
	var posting models.JobPosting
	if err := json.NewDecoder(r.Body).Decode(&posting); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	posting.ID = getParam(r, "id")
	posting.CompanyID = userIDFromContext(r)

	updated, err := h.Service.UpdatePosting(r.Context(), posting)
	if err != nil {
		if errors.Is(err, models.ErrPostingNotFound) {
			http.Error(w, "Posting not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update posting", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *JobHandler) ActivatePosting(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing posting ID", http.StatusBadRequest)
		return
	}

	jobID, err := h.Service.ActivatePosting(r.Context(), id, userIDFromContext(r))
	if err != nil {
		if errors.Is(err, models.ErrPostingNotFound) {
			http.Error(w, "Posting not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to activate posting", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"job_id": jobID})
}

func (h *JobHandler) DeactivatePosting(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Missing posting ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeactivatePosting(r.Context(), id, userIDFromContext(r)); err != nil {
		if errors.Is(err, models.ErrPostingNotFound) {
			http.Error(w, "Posting not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to deactivate posting", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *JobHandler) GetPostingsByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.Atoi(getParam(r, "company_id"))
	if err != nil {
		companyID = userIDFromContext(r)
	}

	postings, err := h.Service.GetPostingsByCompany(r.Context(), companyID)
	if err != nil {
		http.Error(w, "Failed to get postings", http.StatusInternalServerError)
		return
	}
	if postings == nil {
		postings = []models.JobPosting{}
	}
	json.NewEncoder(w).Encode(postings)
}
