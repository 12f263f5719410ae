package models

import "time"

type JobFavorite struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	JobID     string     `json:"job_id"`
	Job       *JobRecord `json:"job,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
