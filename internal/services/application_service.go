package services

import (
	"context"

	"jobradarBack/internal/models"
	"jobradarBack/internal/repositories"
)

type ApplicationService struct {
	ApplicationRepo *repositories.ApplicationRepository
	JobRepo         *repositories.JobRepository
}

func (s *ApplicationService) Apply(ctx context.Context, userID int, jobID string) (models.Application, error) {
	if _, err := s.JobRepo.GetJobByID(ctx, jobID, userID); err != nil {
		return models.Application{}, err
	}
	return s.ApplicationRepo.Apply(ctx, models.Application{UserID: userID, JobID: jobID})
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id int, userID int, status string) error {
	if !models.IsValidApplicationStatus(status) {
		return models.ErrInvalidApplicationStatus
	}
	return s.ApplicationRepo.UpdateStatus(ctx, id, userID, status)
}

func (s *ApplicationService) GetApplicationsByUser(ctx context.Context, userID int) ([]models.Application, error) {
	apps, err := s.ApplicationRepo.GetApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		job, err := s.JobRepo.GetJobByID(ctx, apps[i].JobID, userID)
		if err != nil {
			continue
		}
		apps[i].Job = &job
	}
	return apps, nil
}
