package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"jobradarBack/internal/models"
)

type ApplicationRepository struct {
	DB *sql.DB
}

// Apply records one application per user/job pair; re-applying refreshes the
// status back to "applied". Single-row upsert, no cross-row guarantees.
func (r *ApplicationRepository) Apply(ctx context.Context, app models.Application) (models.Application, error) {
	query := `
		INSERT INTO applications (user_id, job_id, status, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, job_id) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING id, created_at`

	status := app.Status
	if status == "" {
		status = models.ApplicationStatusApplied
	}
	err := r.DB.QueryRowContext(ctx, query, app.UserID, app.JobID, status).Scan(&app.ID, &app.CreatedAt)
	if isForeignKeyViolation(err) {
		return models.Application{}, models.ErrJobNotFound
	}
	if err != nil {
		return models.Application{}, err
	}
	app.Status = status
	return app, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int, userID int, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		status, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNoRecord
	}
	return nil
}

func (r *ApplicationRepository) GetApplicationsByUser(ctx context.Context, userID int) ([]models.Application, error) {
	query := `SELECT a.id, a.user_id, a.job_id, a.status, a.created_at, a.updated_at
		FROM applications a
		JOIN all_jobs j ON a.job_id = j.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var (
			app       models.Application
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&app.ID, &app.UserID, &app.JobID, &app.Status, &app.CreatedAt, &updatedAt); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			app.UpdatedAt = &updatedAt.Time
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("application rows: %w", err)
	}
	return apps, nil
}
