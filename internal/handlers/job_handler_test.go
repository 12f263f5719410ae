package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"jobradarBack/internal/repositories"
	"jobradarBack/internal/services"
)

func newSearchHandler(t *testing.T) (*JobHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &JobHandler{
		Service: &services.JobService{
			JobRepo:     &repositories.JobRepository{DB: db},
			PostingRepo: &repositories.JobPostingRepository{DB: db},
		},
	}, mock
}

func TestSearchJobsSavedTabAnonymous(t *testing.T) {
	h, _ := newSearchHandler(t)

	w := httptest.NewRecorder()
	h.SearchJobs(w, httptest.NewRequest(http.MethodGet, "/jobs/search?tab=saved", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	var resp struct {
		Data  []json.RawMessage `json:"data"`
		Count int               `json:"count"`
		Error string            `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error in envelope")
	}
	if resp.Data == nil || len(resp.Data) != 0 || resp.Count != 0 {
		t.Errorf("envelope = %+v", resp)
	}
}

func TestSearchJobsFailureIsNon2xxEnvelope(t *testing.T) {
	h, mock := newSearchHandler(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM all_jobs j`).
		WillReturnError(errors.New("database is down"))

	w := httptest.NewRecorder()
	h.SearchJobs(w, httptest.NewRequest(http.MethodGet, "/jobs/search", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	var resp struct {
		Data  []json.RawMessage `json:"data"`
		Error string            `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" || resp.Data == nil {
		t.Errorf("envelope = %+v", resp)
	}
}
