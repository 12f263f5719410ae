package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jobradarBack/internal/models"
	"jobradarBack/internal/repositories"
)

func newJobService(t *testing.T) (*JobService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &JobService{
		JobRepo:     &repositories.JobRepository{DB: db},
		PostingRepo: &repositories.JobPostingRepository{DB: db},
	}, mock
}

func TestSearchSoftensErrors(t *testing.T) {
	svc, mock := newJobService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM all_jobs j`).
		WillReturnError(errors.New("dial tcp: connection refused"))

	resp, status := svc.Search(context.Background(), models.JobFilterCriteria{UserID: 1})

	if resp.Error == "" {
		t.Fatal("expected error message in response")
	}
	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Errorf("Data = %v, want empty non-nil slice", resp.Data)
	}
	if resp.Count != 0 {
		t.Errorf("Count = %d, want 0", resp.Count)
	}
}

func TestSearchSoftensAuthError(t *testing.T) {
	svc, _ := newJobService(t)

	resp, status := svc.Search(context.Background(), models.JobFilterCriteria{Tab: models.TabSaved})

	if resp.Error != "authentication required for this tab" {
		t.Errorf("Error = %q", resp.Error)
	}
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
	if len(resp.Data) != 0 || resp.Count != 0 {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestSearchSuccess(t *testing.T) {
	svc, mock := newJobService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM all_jobs j`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT .+ FROM all_jobs j .+ LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "job_name", "job_type", "locations", "salary_range", "salary_min", "salary_max",
			"experience_min", "experience_max", "equity_min", "equity_max", "visa_requirement",
			"company_name", "company_url", "platform", "status", "posting_id",
			"liked", "created_at", "updated_at", "application_status",
		}).AddRow("job-1", "Backend Engineer", "Fulltime", "{Remote}", nil, nil, nil,
			nil, nil, nil, nil, nil, "Acme", nil, "linkedin", "active", nil,
			false, time.Now(), nil, nil))

	resp, status := svc.Search(context.Background(), models.JobFilterCriteria{UserID: 1})

	if resp.Error != "" {
		t.Fatalf("Error = %q", resp.Error)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if resp.Count != 1 || len(resp.Data) != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestDeactivatePostingToleratesNeverActivated(t *testing.T) {
	svc, mock := newJobService(t)

	mock.ExpectExec(`UPDATE job_postings SET active`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE all_jobs SET status`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.DeactivatePosting(context.Background(), "posting-1", 10); err != nil {
		t.Errorf("DeactivatePosting: %v", err)
	}
}
