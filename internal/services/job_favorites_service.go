package services

import (
	"context"

	"jobradarBack/internal/models"
	"jobradarBack/internal/repositories"
)

type JobFavoriteService struct {
	FavoriteRepo *repositories.JobFavoriteRepository
	JobRepo      *repositories.JobRepository
}

func (s *JobFavoriteService) AddToFavorites(ctx context.Context, userID int, jobID string) error {
	// Only existing jobs can be saved; a stale id is a client error.
	if _, err := s.JobRepo.GetJobByID(ctx, jobID, userID); err != nil {
		return err
	}
	return s.FavoriteRepo.AddToFavorites(ctx, models.JobFavorite{UserID: userID, JobID: jobID})
}

func (s *JobFavoriteService) IsFavorite(ctx context.Context, userID int, jobID string) (bool, error) {
	return s.FavoriteRepo.IsFavorite(ctx, userID, jobID)
}

func (s *JobFavoriteService) RemoveFromFavorites(ctx context.Context, userID int, jobID string) error {
	return s.FavoriteRepo.RemoveFromFavorites(ctx, userID, jobID)
}

func (s *JobFavoriteService) GetFavoritesByUser(ctx context.Context, userID int) ([]models.JobFavorite, error) {
	favs, err := s.FavoriteRepo.GetFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range favs {
		job, err := s.JobRepo.GetJobByID(ctx, favs[i].JobID, userID)
		if err != nil {
			continue
		}
		favs[i].Job = &job
	}
	return favs, nil
}
