package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jobradarBack/internal/models"
)

func newJobRepoMock(t *testing.T) (*JobRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &JobRepository{DB: db}, mock
}

func jobRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "job_name", "job_type", "locations", "salary_range", "salary_min", "salary_max",
		"experience_min", "experience_max", "equity_min", "equity_max", "visa_requirement",
		"company_name", "company_url", "platform", "status", "posting_id",
		"liked", "created_at", "updated_at", "application_status",
	})
}

func TestSearchJobsDefaultTab(t *testing.T) {
	repo, mock := newJobRepoMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM all_jobs j`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	now := time.Now()
	rows := jobRows().
		AddRow("job-1", "Backend Engineer", "Fulltime", "{Berlin,Remote}", "90k-120k", 90000.0, 120000.0,
			2, 5, nil, nil, "Will Sponsor", "Acme", "https://acme.io", "linkedin", "active", nil,
			true, now, nil, nil).
		AddRow("job-2", "Data Engineer", "Contract", "{Remote}", nil, nil, nil,
			nil, nil, nil, nil, nil, "Globex", nil, "jobradar", "active", "posting-7",
			false, now, now, nil)
	mock.ExpectQuery(`(?s)SELECT .+ FROM all_jobs j .+ LIMIT`).WillReturnRows(rows)

	result, err := repo.SearchJobs(context.Background(), models.JobFilterCriteria{
		UserID:     42,
		Tab:        models.TabAll,
		JobTypes:   []string{"Fulltime", "Contract"},
		SortBy:     "created_at",
		SortOrder:  models.SortDesc,
		RangeStart: 0,
		RangeEnd:   19,
	})
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}

	if result.Count != 2 {
		t.Errorf("Count = %d, want 2", result.Count)
	}
	if len(result.Jobs) != 2 {
		t.Fatalf("got %d jobs", len(result.Jobs))
	}
	if !result.Jobs[0].Liked {
		t.Error("first job should be liked")
	}
	if result.Jobs[0].Locations[0] != "Berlin" {
		t.Errorf("Locations = %v", result.Jobs[0].Locations)
	}
	if result.Jobs[1].SalaryMin != nil {
		t.Error("nullable salary should stay nil")
	}
	if len(result.MatchedJobIDs) != 2 || result.MatchedJobIDs[0] != "job-1" {
		t.Errorf("MatchedJobIDs = %v", result.MatchedJobIDs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSearchJobsSavedTabRequiresAuth(t *testing.T) {
	repo, _ := newJobRepoMock(t)

	_, err := repo.SearchJobs(context.Background(), models.JobFilterCriteria{Tab: models.TabSaved})
	if !errors.Is(err, models.ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestSearchJobsRelevanceNoCandidates(t *testing.T) {
	repo, mock := newJobRepoMock(t)

	mock.ExpectQuery(`SELECT job_id FROM match_all_jobs_new`).
		WillReturnRows(sqlmock.NewRows([]string{"job_id"}))

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	result, err := repo.SearchJobs(context.Background(), models.JobFilterCriteria{
		UserID:       7,
		SortBy:       models.SortRelevance,
		Embedding:    []float32{0.1, 0.2},
		CreatedAfter: &cutoff,
	})
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}

	if result.Count != 0 || len(result.Jobs) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if result.Jobs == nil || result.MatchedJobIDs == nil {
		t.Error("empty result slices must be non-nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSearchJobsRelevanceFiltersToCandidates(t *testing.T) {
	repo, mock := newJobRepoMock(t)

	mock.ExpectQuery(`SELECT job_id FROM match_all_jobs_new`).
		WillReturnRows(sqlmock.NewRows([]string{"job_id"}).AddRow("job-9"))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM all_jobs j`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .+ FROM all_jobs j .+ LIMIT`).
		WillReturnRows(jobRows().AddRow("job-9", "ML Engineer", "Fulltime", "{Remote}", nil, nil, nil,
			nil, nil, nil, nil, nil, "Initech", nil, "linkedin", "active", nil,
			false, now, nil, nil))

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	result, err := repo.SearchJobs(context.Background(), models.JobFilterCriteria{
		UserID:       7,
		SortBy:       models.SortRelevance,
		Embedding:    []float32{0.1, 0.2},
		CreatedAfter: &cutoff,
	})
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if len(result.Jobs) != 1 || result.Jobs[0].ID != "job-9" {
		t.Errorf("Jobs = %+v", result.Jobs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSearchJobsCountError(t *testing.T) {
	repo, mock := newJobRepoMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM all_jobs j`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.SearchJobs(context.Background(), models.JobFilterCriteria{UserID: 1})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestDeactivateJobNotFound(t *testing.T) {
	repo, mock := newJobRepoMock(t)

	mock.ExpectExec(`UPDATE all_jobs SET status`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeactivateJob(context.Background(), "missing")
	if !errors.Is(err, models.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestVectorLiteral(t *testing.T) {
	got := vectorLiteral([]float32{0.25, -1, 3})
	if got != "[0.25,-1,3]" {
		t.Errorf("vectorLiteral = %q", got)
	}
}

func TestSearchJobsPaginationAndTiebreak(t *testing.T) {
	repo, mock := newJobRepoMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM all_jobs j`).
		WithArgs(0, "active", 100000.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(57))

	// An inclusive [20,39] range becomes LIMIT 20 OFFSET 20, and the sort
	// carries an id tiebreak in the same direction.
	mock.ExpectQuery(`(?s)ORDER BY j\.created_at DESC, j\.id DESC LIMIT \$\d+ OFFSET \$\d+`).
		WithArgs(0, "active", 100000.0, 20, 20).
		WillReturnRows(jobRows())

	result, err := repo.SearchJobs(context.Background(), models.JobFilterCriteria{
		Tab:        models.TabAll,
		MinSalary:  100000,
		SortBy:     "created_at",
		SortOrder:  models.SortDesc,
		RangeStart: 20,
		RangeEnd:   39,
	})
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if result.Count != 57 {
		t.Errorf("Count = %d, want 57", result.Count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSearchJobsAscendingTiebreak(t *testing.T) {
	repo, mock := newJobRepoMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM all_jobs j`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`(?s)ORDER BY j\.salary_min ASC, j\.id ASC LIMIT`).
		WillReturnRows(jobRows())

	_, err := repo.SearchJobs(context.Background(), models.JobFilterCriteria{
		SortBy:    "salary_min",
		SortOrder: models.SortAsc,
		RangeEnd:  19,
	})
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
