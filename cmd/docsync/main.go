package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/compress"
	"github.com/fwojciec/docsync/fs"
	dochttp "github.com/fwojciec/docsync/http"
	"github.com/fwojciec/docsync/pipeline"
	docslog "github.com/fwojciec/docsync/slog"
	"github.com/fwojciec/docsync/sqlite"
	"github.com/fwojciec/docsync/yaml"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	ReportError(os.Stderr, err)
	os.Exit(ExitCode(err))
}

// ReportError prints err to w as a single line. Application errors show
// their message only; interruptions are already reported by the command.
func ReportError(w io.Writer, err error) {
	var e *docsync.Error
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return
	case errors.As(err, &e):
		fmt.Fprintf(w, "error: %s\n", docsync.ErrorMessage(err))
	default:
		fmt.Fprintf(w, "error: %v\n", err)
	}
}

// ExitCode maps the result of Run to a process exit status:
// 0 on success or cooldown skip, 130 on interruption, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used for run history and the document catalog.
	DB *sqlite.DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsync"),
		kong.Description("Keep a local copy of the GitLab CI documentation up to date"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"url":      docsync.DefaultArchiveURL,
			"subpath":  docsync.DefaultDocsSubpath,
			"cooldown": docsync.DefaultCooldown.String(),
			"timeout":  dochttp.DefaultTimeout.String(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 {
		if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	workDir, err := filepath.Abs(cli.WorkingDir)
	if err != nil {
		return docsync.WrapError(docsync.EINVALID, err, "invalid working directory %q", cli.WorkingDir)
	}
	if info, err := os.Stat(workDir); err != nil || !info.IsDir() {
		return docsync.Errorf(docsync.EINVALID, "working directory %s does not exist", workDir)
	}

	layout := docsync.NewLayout(workDir)
	deps.Layout = layout
	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Locks = fs.NewLockStore(layout.LockFile)
	deps.Gate = &docsync.CooldownGate{Cooldown: cli.Cooldown, Now: m.Now}

	m.DB = sqlite.NewDB(layout.DBPath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", layout.DBPath, err)
	}
	defer m.Close()

	deps.Runs = sqlite.NewRunService(m.DB)
	documents := sqlite.NewDocumentService(m.DB)
	documents.Now = m.Now
	deps.Documents = documents

	if kongCtx.Command() == "sync" {
		cfg := cli.Sync.Config(workDir)
		if err := cfg.Validate(); err != nil {
			return err
		}
		deps.Syncer = m.newSyncer(cfg, deps)
	}

	return kongCtx.Run(deps)
}

// newSyncer wires the pipeline stages, each wrapped in a logging decorator.
func (m *Main) newSyncer(cfg *Config, deps *Dependencies) *pipeline.Syncer {
	logger := deps.Logger
	layout := deps.Layout

	return &pipeline.Syncer{
		Locks: deps.Locks,
		Gate:  deps.Gate,
		Fetcher: docslog.NewLoggingFetcher(
			dochttp.NewArchiveFetcher(dochttp.WithTimeout(cfg.Timeout)), logger),
		Extractor: docslog.NewLoggingExtractor(compress.NewExtractor(), logger),
		Validator: docslog.NewLoggingValidator(fs.NewTreeValidator(cfg.Subpath), logger),
		Groomer: docslog.NewLoggingGroomer(
			fs.NewGroomer(docsync.DefaultRawURLTemplate, cfg.Concurrency), logger),
		Indexer: docslog.NewLoggingIndexer(&fs.Indexer{
			Parser:     yaml.NewMetadataParser(),
			LinkPrefix: layout.IndexLinkPrefix(),
			Heading:    docsync.DefaultIndexHeading,
		}, logger),
		Publisher: docslog.NewLoggingPublisher(fs.NewPublisher(), logger),
		Guard:     fs.NewRunGuard(layout.GuardFile),
		Runs:      deps.Runs,
		Documents: deps.Documents,
		Logger:    logger,
		Now:       m.Now,
	}
}

// newLogger logs stage timings to stderr when verbose, warnings otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
