package mock

import (
	"context"

	"github.com/fwojciec/docsync"
)

var _ docsync.RunService = (*RunService)(nil)

// RunService is a mock implementation of docsync.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *docsync.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*docsync.Run, error)
	FindRunsFn    func(ctx context.Context, filter docsync.RunFilter) ([]*docsync.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *docsync.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*docsync.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter docsync.RunFilter) ([]*docsync.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
