package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"jobradarBack/internal/models"
)

type JobPostingRepository struct {
	DB *sql.DB
}

func (r *JobPostingRepository) CreatePosting(ctx context.Context, p models.JobPosting) (models.JobPosting, error) {
	query := `
		INSERT INTO job_postings
			(id, company_id, job_name, job_type, locations, salary_min, salary_max,
			 experience_min, experience_max, equity_min, equity_max, visa_requirement,
			 company_name, company_url, requirements, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.CompanyID, p.JobName, p.JobType, pq.Array(p.Locations), p.SalaryMin, p.SalaryMax,
		p.ExperienceMin, p.ExperienceMax, p.EquityMin, p.EquityMax, p.VisaRequirement,
		p.CompanyName, p.CompanyURL, p.Requirements, p.Active,
	)
	if err != nil {
		return models.JobPosting{}, err
	}
	return r.GetPostingByID(ctx, p.ID)
}

func (r *JobPostingRepository) GetPostingByID(ctx context.Context, id string) (models.JobPosting, error) {
	query := `
		SELECT id, company_id, job_name, job_type, locations, salary_min, salary_max,
		       experience_min, experience_max, equity_min, equity_max, visa_requirement,
		       company_name, company_url, requirements, active, created_at, updated_at
		FROM job_postings
		WHERE id = $1`

	var (
		p         models.JobPosting
		locations pq.StringArray
		salaryMin sql.NullFloat64
		salaryMax sql.NullFloat64
		expMin    sql.NullInt64
		expMax    sql.NullInt64
		equityMin sql.NullFloat64
		equityMax sql.NullFloat64
		updatedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.CompanyID, &p.JobName, &p.JobType, &locations, &salaryMin, &salaryMax,
		&expMin, &expMax, &equityMin, &equityMax, &p.VisaRequirement,
		&p.CompanyName, &p.CompanyURL, &p.Requirements, &p.Active, &p.CreatedAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JobPosting{}, models.ErrPostingNotFound
	}
	if err != nil {
		return models.JobPosting{}, err
	}

	p.Locations = []string(locations)
	if salaryMin.Valid {
		p.SalaryMin = &salaryMin.Float64
	}
	if salaryMax.Valid {
		p.SalaryMax = &salaryMax.Float64
	}
	if expMin.Valid {
		v := int(expMin.Int64)
		p.ExperienceMin = &v
	}
	if expMax.Valid {
		v := int(expMax.Int64)
		p.ExperienceMax = &v
	}
	if equityMin.Valid {
		p.EquityMin = &equityMin.Float64
	}
	if equityMax.Valid {
		p.EquityMax = &equityMax.Float64
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return p, nil
}

func (r *JobPostingRepository) UpdatePosting(ctx context.Context, p models.JobPosting) (models.JobPosting, error) {
	query := `
		UPDATE job_postings
		SET job_name = $1, job_type = $2, locations = $3, salary_min = $4, salary_max = $5,
		    experience_min = $6, experience_max = $7, equity_min = $8, equity_max = $9,
		    visa_requirement = $10, company_name = $11, company_url = $12, requirements = $13,
		    updated_at = $14
		WHERE id = $15 AND company_id = $16`

	updatedAt := time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		p.JobName, p.JobType, pq.Array(p.Locations), p.SalaryMin, p.SalaryMax,
		p.ExperienceMin, p.ExperienceMax, p.EquityMin, p.EquityMax,
		p.VisaRequirement, p.CompanyName, p.CompanyURL, p.Requirements,
		updatedAt, p.ID, p.CompanyID,
	)
	if err != nil {
		return models.JobPosting{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.JobPosting{}, err
	}
	if affected == 0 {
		return models.JobPosting{}, models.ErrPostingNotFound
	}
	return r.GetPostingByID(ctx, p.ID)
}

func (r *JobPostingRepository) SetPostingActive(ctx context.Context, id string, companyID int, active bool) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE job_postings SET active = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`,
		active, id, companyID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPostingNotFound
	}
	return nil
}

func (r *JobPostingRepository) GetPostingsByCompany(ctx context.Context, companyID int) ([]models.JobPosting, error) {
	query := `
		SELECT id FROM job_postings WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("posting rows: %w", err)
	}

	postings := make([]models.JobPosting, 0, len(ids))
	for _, id := range ids {
		p, err := r.GetPostingByID(ctx, id)
		if err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, nil
}
