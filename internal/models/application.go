package models

import "time"

type Application struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	JobID     string     `json:"job_id"`
	Status    string     `json:"status"`
	Job       *JobRecord `json:"job,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

const (
	ApplicationStatusApplied      = "applied"
	ApplicationStatusInterviewing = "interviewing"
	ApplicationStatusOffered      = "offered"
	ApplicationStatusRejected     = "rejected"
)

// allowedApplicationStatuses is the closed set accepted from clients and from
// the NL extractor; anything else is dropped before it reaches the composer.
var allowedApplicationStatuses = map[string]struct{}{
	ApplicationStatusApplied:      {},
	ApplicationStatusInterviewing: {},
	ApplicationStatusOffered:      {},
	ApplicationStatusRejected:     {},
}

func IsValidApplicationStatus(status string) bool {
	_, ok := allowedApplicationStatuses[status]
	return ok
}
