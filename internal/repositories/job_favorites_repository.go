package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"jobradarBack/internal/models"
)

type JobFavoriteRepository struct {
	DB *sql.DB
}

// AddToFavorites is an independent single-row upsert; toggling twice in a row
// is harmless.
func (r *JobFavoriteRepository) AddToFavorites(ctx context.Context, fav models.JobFavorite) error {
	query := `INSERT INTO job_favorites (user_id, job_id, created_at) VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, job_id) DO NOTHING`
	_, err := r.DB.ExecContext(ctx, query, fav.UserID, fav.JobID)
	if isForeignKeyViolation(err) {
		return models.ErrJobNotFound
	}
	return err
}

func (r *JobFavoriteRepository) RemoveFromFavorites(ctx context.Context, userID int, jobID string) error {
	query := `DELETE FROM job_favorites WHERE user_id = $1 AND job_id = $2`
	_, err := r.DB.ExecContext(ctx, query, userID, jobID)
	return err
}

func (r *JobFavoriteRepository) IsFavorite(ctx context.Context, userID int, jobID string) (bool, error) {
	query := `SELECT COUNT(*) FROM job_favorites WHERE user_id = $1 AND job_id = $2`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID, jobID).Scan(&count)
	return count > 0, err
}

func (r *JobFavoriteRepository) GetFavoritesByUser(ctx context.Context, userID int) ([]models.JobFavorite, error) {
	query := `SELECT f.id, f.user_id, f.job_id, f.created_at
		FROM job_favorites f
		JOIN all_jobs j ON f.job_id = j.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favs []models.JobFavorite
	for rows.Next() {
		var fav models.JobFavorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.JobID, &fav.CreatedAt); err != nil {
			return nil, err
		}
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("job favorites rows: %w", err)
	}
	return favs, nil
}
