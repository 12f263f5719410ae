package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"jobradarBack/internal/models"
)

// Fixed parameters of the vector-similarity pre-filter. The stored function
// is an opaque collaborator; candidates below the threshold or beyond the cap
// never reach the composed query.
const (
	matchThreshold    = 0.5
	matchCandidateCap = 100
)

type JobRepository struct {
	DB *sql.DB
}

const jobSelectColumns = `j.id, j.job_name, j.job_type, j.locations, j.salary_range, j.salary_min, j.salary_max,
		j.experience_min, j.experience_max, j.equity_min, j.equity_max, j.visa_requirement,
		j.company_name, j.company_url, j.platform, j.status, j.posting_id,
		CASE WHEN sf.job_id IS NOT NULL THEN true ELSE false END AS liked,
		j.created_at, j.updated_at`

// SearchJobs composes one paginated query over all_jobs honoring every active
// filter. Empty multi-value filters are no-ops. The saved/applied tabs
// require an authenticated user and report models.ErrNotAuthenticated
// otherwise; the service layer turns that into a structured response.
func (r *JobRepository) SearchJobs(ctx context.Context, c models.JobFilterCriteria) (models.JobSearchResult, error) {
	q := &jobQuery{}

	// Favorites flag for the current viewer; user id 0 simply never matches.
	q.joins = append(q.joins,
		fmt.Sprintf("LEFT JOIN job_favorites sf ON sf.job_id = j.id AND sf.user_id = %s", q.arg(c.UserID)))

	appliedJoin := false
	switch c.Tab {
	case models.TabSaved:
		if c.UserID <= 0 {
			return models.JobSearchResult{}, models.ErrNotAuthenticated
		}
		q.joins = append(q.joins,
			fmt.Sprintf("INNER JOIN job_favorites fav ON fav.job_id = j.id AND fav.user_id = %s", q.arg(c.UserID)))
	case models.TabApplied:
		if c.UserID <= 0 {
			return models.JobSearchResult{}, models.ErrNotAuthenticated
		}
		q.joins = append(q.joins,
			fmt.Sprintf("INNER JOIN applications app ON app.job_id = j.id AND app.user_id = %s", q.arg(c.UserID)))
		appliedJoin = true
	default:
		q.conditions = append(q.conditions, fmt.Sprintf("j.status = %s", q.arg(models.JobStatusActive)))
	}

	// Records without a display name are never shown.
	q.conditions = append(q.conditions, "j.job_name IS NOT NULL AND j.job_name <> ''")

	if c.IsRelevanceSort() && c.HasVectorInputs() {
		ids, err := r.matchJobsByEmbedding(ctx, c.Embedding, *c.CreatedAfter)
		if err != nil {
			return models.JobSearchResult{}, fmt.Errorf("vector search: %w", err)
		}
		if len(ids) == 0 {
			// No qualifying candidates is an empty page, not an error.
			return emptySearchResult(), nil
		}
		q.conditions = append(q.conditions, fmt.Sprintf("j.id = ANY(%s::text[])", q.arg(pq.Array(ids))))
	}

	if len(c.JobTypes) > 0 {
		q.conditions = append(q.conditions, fmt.Sprintf("j.job_type = ANY(%s::text[])", q.arg(pq.Array(c.JobTypes))))
	}
	if len(c.VisaRequirements) > 0 {
		q.conditions = append(q.conditions, fmt.Sprintf("j.visa_requirement = ANY(%s::text[])", q.arg(pq.Array(c.VisaRequirements))))
	}
	if expanded := models.ExpandLocations(c.Locations); len(expanded) > 0 {
		q.conditions = append(q.conditions, fmt.Sprintf("j.locations && %s::text[]", q.arg(pq.Array(expanded))))
	}
	if len(c.Platforms) > 0 {
		q.conditions = append(q.conditions, fmt.Sprintf("j.platform = ANY(%s::text[])", q.arg(pq.Array(c.Platforms))))
	}
	if len(c.CompanyNames) > 0 {
		q.conditions = append(q.conditions, fmt.Sprintf("j.company_name = ANY(%s::text[])", q.arg(pq.Array(c.CompanyNames))))
	}
	if c.MinSalary > 0 {
		q.conditions = append(q.conditions, fmt.Sprintf("j.salary_min >= %s", q.arg(c.MinSalary)))
	}
	if c.MinExperience > 0 {
		// Jobs demanding more experience than the searcher has are excluded.
		q.conditions = append(q.conditions, fmt.Sprintf("j.experience_max <= %s", q.arg(c.MinExperience)))
	}
	if appliedJoin && len(c.ApplicationStatus) > 0 {
		q.conditions = append(q.conditions, fmt.Sprintf("app.status = ANY(%s::text[])", q.arg(pq.Array(c.ApplicationStatus))))
	}
	if len(c.TitleKeywords) > 0 {
		keywordConds := make([]string, 0, len(c.TitleKeywords))
		for _, kw := range c.TitleKeywords {
			keywordConds = append(keywordConds, fmt.Sprintf("j.job_name ILIKE %s", q.arg("%"+kw+"%")))
		}
		cond := keywordConds[0]
		if len(keywordConds) > 1 {
			cond = "(" + joinOr(keywordConds) + ")"
		}
		q.conditions = append(q.conditions, cond)
	}

	countQuery := "SELECT COUNT(*) FROM all_jobs j" + q.joinClause() + q.where()

	var count int
	if err := r.DB.QueryRowContext(ctx, countQuery, q.params...).Scan(&count); err != nil {
		return models.JobSearchResult{}, fmt.Errorf("count jobs: %w", err)
	}

	pageQuery := "SELECT " + jobSelectColumns
	if appliedJoin {
		pageQuery += ", app.status AS application_status"
	} else {
		pageQuery += ", NULL::text AS application_status"
	}
	pageQuery += " FROM all_jobs j" + q.joinClause() + q.where()

	if col, ok := c.SortColumn(); ok {
		dir := "DESC"
		if c.SortOrder == models.SortAsc {
			dir = "ASC"
		}
		// Stable tiebreak on id, same direction as the primary sort.
		pageQuery += fmt.Sprintf(" ORDER BY j.%s %s, j.id %s", col, dir, dir)
	}
	// Relevance sort without vector inputs applies no ordering here; the
	// caller's AI re-rank step owns the order in that mode.

	limit := c.RangeEnd - c.RangeStart + 1
	if limit < 1 {
		limit = 1
	}
	pageQuery += fmt.Sprintf(" LIMIT %s OFFSET %s", q.arg(limit), q.arg(c.RangeStart))

	rows, err := r.DB.QueryContext(ctx, pageQuery, q.params...)
	if err != nil {
		return models.JobSearchResult{}, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	result := models.JobSearchResult{Jobs: []models.JobRecord{}, Count: count, MatchedJobIDs: []string{}}
	for rows.Next() {
		job, err := scanJobRow(rows)
		if err != nil {
			return models.JobSearchResult{}, fmt.Errorf("scan job: %w", err)
		}
		result.Jobs = append(result.Jobs, job)
		result.MatchedJobIDs = append(result.MatchedJobIDs, job.ID)
	}
	if err := rows.Err(); err != nil {
		return models.JobSearchResult{}, fmt.Errorf("job rows: %w", err)
	}

	return result, nil
}

func emptySearchResult() models.JobSearchResult {
	return models.JobSearchResult{Jobs: []models.JobRecord{}, Count: 0, MatchedJobIDs: []string{}}
}

func joinOr(conds []string) string {
	out := conds[0]
	for _, c := range conds[1:] {
		out += " OR " + c
	}
	return out
}

// matchJobsByEmbedding calls the vector-similarity stored function and
// returns candidate ids created after the cutoff. The function itself is an
// opaque collaborator; we only fix its threshold and candidate cap.
func (r *JobRepository) matchJobsByEmbedding(ctx context.Context, embedding []float32, createdAfter time.Time) ([]string, error) {
	const query = `SELECT job_id FROM match_all_jobs_new($1::vector, $2, $3, $4)`

	rows, err := r.DB.QueryContext(ctx, query, vectorLiteral(embedding), matchThreshold, matchCandidateCap, createdAfter)
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
	return ids, rows.Err()
}

func scanJobRow(rows *sql.Rows) (models.JobRecord, error) {
	var (
		job         models.JobRecord
		locations   pq.StringArray
		salaryRange sql.NullString
		salaryMin   sql.NullFloat64
		salaryMax   sql.NullFloat64
		expMin      sql.NullInt64
		expMax      sql.NullInt64
		equityMin   sql.NullFloat64
		equityMax   sql.NullFloat64
		visa        sql.NullString
		companyURL  sql.NullString
		postingID   sql.NullString
		appStatus   sql.NullString
		updatedAt   sql.NullTime
	)

	err := rows.Scan(
		&job.ID, &job.JobName, &job.JobType, &locations, &salaryRange, &salaryMin, &salaryMax,
		&expMin, &expMax, &equityMin, &equityMax, &visa,
		&job.CompanyName, &companyURL, &job.Platform, &job.Status, &postingID,
		&job.Liked, &job.CreatedAt, &updatedAt, &appStatus,
	)
	if err != nil {
		return models.JobRecord{}, err
	}

	job.Locations = []string(locations)
	job.SalaryRange = salaryRange.String
	if salaryMin.Valid {
		job.SalaryMin = &salaryMin.Float64
	}
	if salaryMax.Valid {
		job.SalaryMax = &salaryMax.Float64
	}
	if expMin.Valid {
		v := int(expMin.Int64)
		job.ExperienceMin = &v
	}
	if expMax.Valid {
		v := int(expMax.Int64)
		job.ExperienceMax = &v
	}
	if equityMin.Valid {
		job.EquityMin = &equityMin.Float64
	}
	if equityMax.Valid {
		job.EquityMax = &equityMax.Float64
	}
	job.VisaRequirement = visa.String
	job.CompanyURL = companyURL.String
	job.PostingID = postingID.String
	if appStatus.Valid {
		job.ApplicationStatus = &appStatus.String
	}
	if updatedAt.Valid {
		job.UpdatedAt = &updatedAt.Time
	}

	return job, nil
}

// GetJobByID loads one record with the viewer's favorite flag.
func (r *JobRepository) GetJobByID(ctx context.Context, id string, userID int) (models.JobRecord, error) {
	query := "SELECT " + jobSelectColumns + `, NULL::text AS application_status
		FROM all_jobs j
		LEFT JOIN job_favorites sf ON sf.job_id = j.id AND sf.user_id = $1
		WHERE j.id = $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, id)
	if err != nil {
		return models.JobRecord{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.JobRecord{}, err
		}
		return models.JobRecord{}, models.ErrJobNotFound
	}
	return scanJobRow(rows)
}

// UpsertFromPosting denormalizes an activated posting into all_jobs. Repeated
// activation of the same posting updates the copy in place.
func (r *JobRepository) UpsertFromPosting(ctx context.Context, jobID string, p models.JobPosting) (string, error) {
	query := `
		INSERT INTO all_jobs
			(id, job_name, job_type, locations, salary_min, salary_max, experience_min, experience_max,
			 equity_min, equity_max, visa_requirement, company_name, company_url, platform, status, posting_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		ON CONFLICT (posting_id) DO UPDATE SET
			job_name = EXCLUDED.job_name, job_type = EXCLUDED.job_type, locations = EXCLUDED.locations,
			salary_min = EXCLUDED.salary_min, salary_max = EXCLUDED.salary_max,
			experience_min = EXCLUDED.experience_min, experience_max = EXCLUDED.experience_max,
			equity_min = EXCLUDED.equity_min, equity_max = EXCLUDED.equity_max,
			visa_requirement = EXCLUDED.visa_requirement, company_name = EXCLUDED.company_name,
			company_url = EXCLUDED.company_url, status = EXCLUDED.status, updated_at = NOW()
		RETURNING id`

	var id string
	err := r.DB.QueryRowContext(ctx, query,
		jobID, p.JobName, p.JobType, pq.Array(p.Locations), p.SalaryMin, p.SalaryMax,
		p.ExperienceMin, p.ExperienceMax, p.EquityMin, p.EquityMax, p.VisaRequirement,
		p.CompanyName, p.CompanyURL, models.PlatformInternal, models.JobStatusActive, p.ID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert job from posting: %w", err)
	}
	return id, nil
}

// DeactivateJob marks the denormalized record inactive. Records are never
// deleted from the search store.
func (r *JobRepository) DeactivateJob(ctx context.Context, postingID string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE all_jobs SET status = $1, updated_at = NOW() WHERE posting_id = $2`,
		models.JobStatusInactive, postingID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrJobNotFound
	}
	return nil
}
