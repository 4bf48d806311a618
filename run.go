package docsync

import (
	"context"
	"time"
)

// Run is the persisted history record of one pipeline invocation.
type Run struct {
	ID             string    `json:"id"`
	URL            string    `json:"url"`
	Status         Status    `json:"status"`
	Stage          string    `json:"stage"`
	FilesProcessed int       `json:"filesProcessed"`
	Error          string    `json:"error"`
	StartedAt      time.Time `json:"startedAt"`
	FinishedAt     time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "run URL required")
	}
	switch r.Status {
	case StatusSuccess, StatusFailure, StatusSkipped:
	default:
		return Errorf(EINVALID, "run status %q invalid", r.Status)
	}
	return nil
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunService represents a service for managing run history.
type RunService interface {
	// CreateRun records a finished run. An ID is assigned if empty.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Status *Status `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
