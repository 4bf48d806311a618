// Package pipeline provides the documentation sync orchestrator. It moves a
// run through fetching, extraction, validation, grooming, indexing and
// publishing, and records the outcome in the lock state and run history.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/docsync"
)

// Syncer orchestrates one documentation sync.
//
// Locks, Gate and every stage are required. Guard, Runs and Documents are
// optional; without them no run exclusion, history or catalog is kept.
type Syncer struct {
	Locks     docsync.LockStore
	Gate      *docsync.CooldownGate
	Fetcher   docsync.ArchiveFetcher
	Extractor docsync.ArchiveExtractor
	Validator docsync.TreeValidator
	Groomer   docsync.Groomer
	Indexer   docsync.Indexer
	Publisher docsync.Publisher

	Guard     docsync.RunGuard
	Runs      docsync.RunService
	Documents docsync.DocumentService

	// Logger receives warnings about best-effort steps. Defaults to discard.
	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Options configures a single Sync call.
type Options struct {
	URL    string
	Layout docsync.Layout

	// Force bypasses the cooldown gate.
	Force bool

	// KeepTemp leaves the downloaded archive and scratch directory in place.
	KeepTemp bool

	// Events, if set, receives state transitions and download progress.
	Events docsync.EventFunc
}

// run carries the state of one invocation between stages.
type run struct {
	opts    Options
	result  *docsync.PipelineResult
	index   *docsync.Index
	started time.Time
}

// Sync runs the pipeline. The returned result is never nil. A non-nil error
// is also stored in result.Err. A cooldown skip is not an error.
func (s *Syncer) Sync(ctx context.Context, opts Options) (*docsync.PipelineResult, error) {
	r := &run{
		opts:    opts,
		result:  &docsync.PipelineResult{Stage: docsync.StateIdle},
		started: s.now(),
	}

	if s.Guard != nil {
		release, err := s.Guard.Acquire()
		if err != nil {
			return r.fail(err)
		}
		defer func() {
			if err := release(); err != nil {
				s.logger().Warn("failed to release run guard", "err", err)
			}
		}()
	}

	if _, err := s.Publisher.Recover(opts.Layout.PublishedDir); err != nil {
		return r.fail(err)
	}

	state, err := s.Locks.Load()
	if err != nil {
		return r.fail(err)
	}

	if !s.Gate.CanProceed(state, opts.Force) {
		r.result.Skipped = true
		r.result.Remaining = s.Gate.Remaining(state)
		s.record(ctx, r, docsync.StatusSkipped, nil)
		return r.result, nil
	}

	if !opts.KeepTemp {
		defer s.cleanup(opts.Layout)
	}

	runErr := s.runStages(ctx, r)

	status := docsync.StatusSuccess
	if runErr != nil {
		status = docsync.StatusFailure
	}

	lock := &docsync.LockState{
		LastRun:        s.now(),
		LastStatus:     status,
		FilesProcessed: r.result.FilesProcessed,
	}
	if err := s.Locks.Save(lock); err != nil {
		if runErr != nil {
			s.logger().Warn("failed to write lock state", "err", err)
		} else {
			runErr = err
			status = docsync.StatusFailure
		}
	}

	if runErr != nil {
		runErr = normalize(runErr)
		r.emit(docsync.Event{State: docsync.StateFailed, Message: docsync.ErrorMessage(runErr)})
		s.record(ctx, r, status, runErr)
		r.result.Err = runErr
		return r.result, runErr
	}

	r.result.Success = true
	r.result.Stage = docsync.StateDone
	s.record(ctx, r, status, nil)
	r.emit(docsync.Event{State: docsync.StateDone})
	return r.result, nil
}

// runStages executes the stage chain, leaving result.Stage at the stage
// that was running when an error occurred.
func (s *Syncer) runStages(ctx context.Context, r *run) error {
	layout := r.opts.Layout

	if err := r.enter(ctx, docsync.StateFetching); err != nil {
		return err
	}
	progress := func(p docsync.DownloadProgress) {
		r.emit(docsync.Event{State: docsync.StateFetching, Download: &p})
	}
	if err := s.Fetcher.Fetch(ctx, r.opts.URL, layout.ArchivePath, progress); err != nil {
		return err
	}

	if err := r.enter(ctx, docsync.StateExtracting); err != nil {
		return err
	}
	if err := os.RemoveAll(layout.ScratchDir); err != nil {
		return docsync.WrapError(docsync.EEXTRACT, err, "failed to clear %s", layout.ScratchDir)
	}
	if err := os.MkdirAll(layout.ScratchDir, 0755); err != nil {
		return docsync.WrapError(docsync.EEXTRACT, err, "failed to create %s", layout.ScratchDir)
	}
	if err := s.Extractor.Extract(ctx, layout.ArchivePath, layout.ScratchDir); err != nil {
		return err
	}

	if err := r.enter(ctx, docsync.StateValidating); err != nil {
		return err
	}
	docRoot, err := s.Validator.Validate(ctx, layout.ScratchDir)
	if err != nil {
		return err
	}

	if err := r.enter(ctx, docsync.StateGrooming); err != nil {
		return err
	}
	groomed, err := s.Groomer.Groom(ctx, docRoot)
	if err != nil {
		return err
	}
	r.result.FilesProcessed = groomed.Files
	r.result.Links = groomed.Links

	if err := r.enter(ctx, docsync.StateIndexing); err != nil {
		return err
	}
	index, err := s.Indexer.BuildIndex(ctx, docRoot)
	if err != nil {
		return err
	}
	if err := s.Indexer.UpdateIndexDocument(ctx, layout.IndexFile, index.Text); err != nil {
		return err
	}
	r.index = index

	if err := r.enter(ctx, docsync.StatePublishing); err != nil {
		return err
	}
	return s.Publisher.Publish(ctx, docRoot, layout.PublishedDir)
}

// record stores the run and, for a successful run, the new catalog. Both
// are best effort and run detached from ctx so an interrupted run is still
// recorded.
func (s *Syncer) record(ctx context.Context, r *run, status docsync.Status, runErr error) {
	ctx = context.WithoutCancel(ctx)

	if s.Documents != nil && r.index != nil && runErr == nil {
		previous, err := s.Documents.FindDocuments(ctx, docsync.DocumentFilter{})
		if err != nil {
			s.logger().Warn("failed to read document catalog", "err", err)
		} else {
			r.result.Changes = docsync.DiffDocuments(previous, r.index.Documents)
		}
	}

	if s.Runs == nil {
		return
	}

	rec := &docsync.Run{
		URL:            r.opts.URL,
		Status:         status,
		Stage:          r.result.Stage.String(),
		FilesProcessed: r.result.FilesProcessed,
		StartedAt:      r.started,
		FinishedAt:     s.now(),
	}
	if status == docsync.StatusSuccess {
		rec.Stage = docsync.StateDone.String()
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	if err := s.Runs.CreateRun(ctx, rec); err != nil {
		s.logger().Warn("failed to record run", "err", err)
		return
	}
	r.result.RunID = rec.ID

	if s.Documents != nil && r.index != nil && runErr == nil {
		if err := s.Documents.ReplaceDocuments(ctx, rec.ID, r.index.Documents); err != nil {
			s.logger().Warn("failed to update document catalog", "err", err)
		}
	}
}

// cleanup removes the downloaded archive and the scratch directory.
func (s *Syncer) cleanup(layout docsync.Layout) {
	if err := os.Remove(layout.ArchivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger().Warn("failed to remove archive", "path", layout.ArchivePath, "err", err)
	}
	if err := os.RemoveAll(layout.ScratchDir); err != nil {
		s.logger().Warn("failed to remove scratch directory", "path", layout.ScratchDir, "err", err)
	}
}

func (s *Syncer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Syncer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// enter moves the run into state unless ctx is already done.
func (r *run) enter(ctx context.Context, state docsync.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.result.Stage = state
	r.emit(docsync.Event{State: state})
	return nil
}

func (r *run) emit(e docsync.Event) {
	if r.opts.Events != nil {
		r.opts.Events(e)
	}
}

// fail ends a run that never got past the gate. The lock is not written.
func (r *run) fail(err error) (*docsync.PipelineResult, error) {
	err = normalize(err)
	r.result.Err = err
	return r.result, err
}

// normalize wraps errors that carry no application code.
func normalize(err error) error {
	var e *docsync.Error
	if errors.As(err, &e) {
		return err
	}
	return docsync.WrapError(docsync.EINTERNAL, err, "unexpected error during update")
}
