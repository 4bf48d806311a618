package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/pipeline"
)

// Syncer runs the sync pipeline.
type Syncer interface {
	Sync(ctx context.Context, opts pipeline.Options) (*docsync.PipelineResult, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Layout    docsync.Layout
	Locks     docsync.LockStore
	Gate      *docsync.CooldownGate
	Runs      docsync.RunService
	Documents docsync.DocumentService
	Syncer    Syncer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	WorkingDir string        `short:"w" default:"." env:"DOCSYNC_WORKDIR" help:"Working directory holding the published tree and state files"`
	Cooldown   time.Duration `default:"${cooldown}" env:"DOCSYNC_COOLDOWN" help:"Minimum time between successful syncs"`
	Verbose    bool          `short:"v" help:"Log stage timings to stderr"`

	Sync    SyncCmd    `cmd:"" default:"withargs" help:"Download and publish the documentation (default)"`
	Status  StatusCmd  `cmd:"" help:"Show the last run and remaining cooldown"`
	History HistoryCmd `cmd:"" help:"List recorded runs, newest first"`
	Docs    DocsCmd    `cmd:"" help:"List the published documents"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	URL         string        `default:"${url}" env:"DOCSYNC_URL" help:"Archive URL"`
	Subpath     string        `default:"${subpath}" help:"Document root inside the archive's top-level directory"`
	Timeout     time.Duration `default:"${timeout}" help:"Download timeout"`
	Concurrency int           `short:"c" default:"8" help:"Files groomed in parallel"`
	Force       bool          `short:"f" help:"Ignore the cooldown"`
	NoCleanup   bool          `name:"no-cleanup" help:"Keep the downloaded archive and scratch directory"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit  int    `short:"n" default:"10" help:"Maximum runs to show"`
	Status string `help:"Only show runs with this status (success, failure, skipped)"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Prefix string `arg:"" optional:"" help:"Only list documents under this path prefix"`
}
