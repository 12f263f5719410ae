package services

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"jobradarBack/internal/models"
	"jobradarBack/internal/repositories"
)

// JobService fronts the query composer and the posting lifecycle. Search never
// returns an error to the handler: failures become a structured response with
// an empty page, so clients always get the same shape.
type JobService struct {
	JobRepo     *repositories.JobRepository
	PostingRepo *repositories.JobPostingRepository
	ErrorLog    *log.Logger
}

// Search runs the composed query and folds failures into the response body.
// The returned status lets handlers answer non-2xx while still sending the
// same data/count/error envelope; no raw error ever crosses this boundary.
func (s *JobService) Search(ctx context.Context, c models.JobFilterCriteria) (models.JobSearchResponse, int) {
	result, err := s.JobRepo.SearchJobs(ctx, c)
	if err != nil {
		if s.ErrorLog != nil {
			s.ErrorLog.Printf("job search failed: %v", err)
		}
		msg := "job search failed"
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrNotAuthenticated) {
			msg = "authentication required for this tab"
			status = http.StatusUnauthorized
		}
		return models.JobSearchResponse{Data: []models.JobRecord{}, Count: 0, Error: msg}, status
	}
	return models.JobSearchResponse{Data: result.Jobs, Count: result.Count}, http.StatusOK
}

// SearchRaw exposes the composer result for callers that need the matched id
// order, such as the relevance pipeline.
func (s *JobService) SearchRaw(ctx context.Context, c models.JobFilterCriteria) (models.JobSearchResult, error) {
	return s.JobRepo.SearchJobs(ctx, c)
}

func (s *JobService) GetJob(ctx context.Context, id string, userID int) (models.JobRecord, error) {
	return s.JobRepo.GetJobByID(ctx, id, userID)
}

// CreatePosting stores a new draft posting for the company. Activation is a
// separate step.
func (s *JobService) CreatePosting(ctx context.Context, p models.JobPosting) (models.JobPosting, error) {
	p.ID = uuid.New().String()
	p.Active = false
	return s.PostingRepo.CreatePosting(ctx, p)
}

func (s *JobService) UpdatePosting(ctx context.Context, p models.JobPosting) (models.JobPosting, error) {
	updated, err := s.PostingRepo.UpdatePosting(ctx, p)
	if err != nil {
		return models.JobPosting{}, err
	}
	// An active posting's searchable copy follows every edit.
	if updated.Active {
		if _, err := s.JobRepo.UpsertFromPosting(ctx, uuid.New().String(), updated); err != nil {
			return models.JobPosting{}, err
		}
	}
	return updated, nil
}

// ActivatePosting flips the posting live and denormalizes it into the search
// store. Re-activating an already live posting refreshes the copy.
func (s *JobService) ActivatePosting(ctx context.Context, postingID string, companyID int) (string, error) {
	if err := s.PostingRepo.SetPostingActive(ctx, postingID, companyID, true); err != nil {
		return "", err
	}
	p, err := s.PostingRepo.GetPostingByID(ctx, postingID)
	if err != nil {
		return "", err
	}
	return s.JobRepo.UpsertFromPosting(ctx, uuid.New().String(), p)
}

// DeactivatePosting takes the posting offline and marks its searchable copy
// inactive. The record stays in the store for history.
func (s *JobService) DeactivatePosting(ctx context.Context, postingID string, companyID int) error {
	if err := s.PostingRepo.SetPostingActive(ctx, postingID, companyID, false); err != nil {
		return err
	}
	err := s.JobRepo.DeactivateJob(ctx, postingID)
	if errors.Is(err, models.ErrJobNotFound) {
		// Posting was never activated; nothing to hide.
		return nil
	}
	return err
}

func (s *JobService) GetPostingsByCompany(ctx context.Context, companyID int) ([]models.JobPosting, error) {
	return s.PostingRepo.GetPostingsByCompany(ctx, companyID)
}
