package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrPostingNotFound    = errors.New("job posting not found")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrQuotaExceeded      = errors.New("ai quota exceeded")

	ErrInvalidApplicationStatus = errors.New("invalid application status")
)
