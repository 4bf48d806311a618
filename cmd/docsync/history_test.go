package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docsync"
	main "github.com/fwojciec/docsync/cmd/docsync"
	"github.com/fwojciec/docsync/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("lists runs with errors", func(t *testing.T) {
		t.Parallel()

		var gotFilter docsync.RunFilter
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs: &mock.RunService{
				FindRunsFn: func(_ context.Context, filter docsync.RunFilter) ([]*docsync.Run, error) {
					gotFilter = filter
					return []*docsync.Run{
						{Status: docsync.StatusFailure, Stage: "fetching", Error: "HTTP 404 error downloading archive",
							StartedAt: started, FinishedAt: started.Add(time.Second)},
						{Status: docsync.StatusSuccess, Stage: "done", FilesProcessed: 321,
							StartedAt: started.Add(-time.Hour), FinishedAt: started.Add(-time.Hour + 5*time.Second)},
					}, nil
				},
			},
		}

		err := (&main.HistoryCmd{Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Nil(t, gotFilter.Status)
		out := stdout.String()
		assert.Contains(t, out, "failure")
		assert.Contains(t, out, "HTTP 404 error downloading archive")
		assert.Contains(t, out, " 321 files")
		assert.Contains(t, out, "5s")
	})

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()

		var gotFilter docsync.RunFilter
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Runs: &mock.RunService{
				FindRunsFn: func(_ context.Context, filter docsync.RunFilter) ([]*docsync.Run, error) {
					gotFilter = filter
					return nil, nil
				},
			},
		}

		require.NoError(t, (&main.HistoryCmd{Status: "skipped"}).Run(deps))
		require.NotNil(t, gotFilter.Status)
		assert.Equal(t, docsync.StatusSkipped, *gotFilter.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		err := (&main.HistoryCmd{Status: "pending"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docsync.EINVALID, docsync.ErrorCode(err))
		assert.Equal(t, `unknown status "pending"`, docsync.ErrorMessage(err))
		assert.Empty(t, stderr.String())
	})

	t.Run("reports empty history", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs: &mock.RunService{
				FindRunsFn: func(context.Context, docsync.RunFilter) ([]*docsync.Run, error) { return nil, nil },
			},
		}

		require.NoError(t, (&main.HistoryCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No runs recorded")
	})
}
