package docsync

import (
	"context"
	"time"
)

// DownloadProgress reports bytes written while fetching an archive.
// Total is -1 when the server did not announce a length.
type DownloadProgress struct {
	Written int64
	Total   int64
}

// DownloadProgressFunc is called as archive bytes are written.
type DownloadProgressFunc func(DownloadProgress)

// ArchiveFetcher downloads a remote archive to a local file.
type ArchiveFetcher interface {
	// Fetch streams the body of url into dst. Non-2xx responses, transport
	// errors and local write errors are EDOWNLOAD errors. No retries.
	Fetch(ctx context.Context, url, dst string, progress DownloadProgressFunc) error
}

// ArchiveExtractor unpacks a compressed tar archive.
type ArchiveExtractor interface {
	// Extract unpacks archivePath into destDir. Entries that would be written
	// outside destDir are rejected. Failures are EEXTRACT errors.
	Extract(ctx context.Context, archivePath, destDir string) error
}

// TreeValidator checks the shape of an extracted archive.
type TreeValidator interface {
	// Validate returns the document root inside extractedDir, or an
	// EVALIDATE error when the tree does not have the expected shape.
	Validate(ctx context.Context, extractedDir string) (string, error)
}

// GroomResult summarizes the grooming stage.
type GroomResult struct {
	Files int
	Links LinkStats
}

// Groomer rewrites every markdown file under a document root in place.
type Groomer interface {
	// Groom processes all markdown files. A failure on any file aborts the
	// stage with an EGROOM error.
	Groom(ctx context.Context, docRoot string) (*GroomResult, error)
}

// Indexer builds the documentation index.
type Indexer interface {
	// BuildIndex lists all markdown files under docRoot. Running it twice on
	// an unchanged tree yields identical results.
	BuildIndex(ctx context.Context, docRoot string) (*Index, error)

	// UpdateIndexDocument writes text into the index section of indexFile.
	UpdateIndexDocument(ctx context.Context, indexFile, text string) error
}

// Publisher replaces the published tree with a new one.
type Publisher interface {
	// Publish moves newTree into publishedPath, replacing any previous tree.
	Publish(ctx context.Context, newTree, publishedPath string) error

	// Recover restores a previous tree left behind by an interrupted Publish.
	// It reports whether anything was restored.
	Recover(publishedPath string) (bool, error)
}

// RunGuard provides mutual exclusion between pipeline invocations.
type RunGuard interface {
	// Acquire takes the guard or returns an ECONFLICT error if another
	// invocation holds it. The returned func releases the guard.
	Acquire() (release func() error, err error)
}

// State is a pipeline state.
type State int

// State constants, in the order the pipeline moves through them.
const (
	StateIdle State = iota
	StateFetching
	StateExtracting
	StateValidating
	StateGrooming
	StateIndexing
	StatePublishing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateExtracting:
		return "extracting"
	case StateValidating:
		return "validating"
	case StateGrooming:
		return "grooming"
	case StateIndexing:
		return "indexing"
	case StatePublishing:
		return "publishing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is Done or Failed.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Event reports a pipeline transition or download progress.
type Event struct {
	State    State
	Download *DownloadProgress
	Message  string
}

// EventFunc receives pipeline events.
type EventFunc func(Event)

// PipelineResult is the outcome of one pipeline invocation.
type PipelineResult struct {
	Success        bool
	Skipped        bool
	FilesProcessed int
	RunID          string

	// Remaining is the cooldown left when the run was skipped.
	Remaining time.Duration

	// Stage is the last state reached: StateDone on success, or the stage
	// that failed.
	Stage   State
	Links   LinkStats
	Changes ChangeSet
	Err     error
}
