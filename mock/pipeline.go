package mock

import (
	"context"

	"github.com/fwojciec/docsync"
)

var _ docsync.ArchiveFetcher = (*ArchiveFetcher)(nil)

// ArchiveFetcher is a mock implementation of docsync.ArchiveFetcher.
type ArchiveFetcher struct {
	FetchFn func(ctx context.Context, url, dst string, progress docsync.DownloadProgressFunc) error
}

func (f *ArchiveFetcher) Fetch(ctx context.Context, url, dst string, progress docsync.DownloadProgressFunc) error {
	return f.FetchFn(ctx, url, dst, progress)
}

var _ docsync.ArchiveExtractor = (*ArchiveExtractor)(nil)

// ArchiveExtractor is a mock implementation of docsync.ArchiveExtractor.
type ArchiveExtractor struct {
	ExtractFn func(ctx context.Context, archivePath, destDir string) error
}

func (e *ArchiveExtractor) Extract(ctx context.Context, archivePath, destDir string) error {
	return e.ExtractFn(ctx, archivePath, destDir)
}

var _ docsync.TreeValidator = (*TreeValidator)(nil)

// TreeValidator is a mock implementation of docsync.TreeValidator.
type TreeValidator struct {
	ValidateFn func(ctx context.Context, extractedDir string) (string, error)
}

func (v *TreeValidator) Validate(ctx context.Context, extractedDir string) (string, error) {
	return v.ValidateFn(ctx, extractedDir)
}

var _ docsync.Groomer = (*Groomer)(nil)

// Groomer is a mock implementation of docsync.Groomer.
type Groomer struct {
	GroomFn func(ctx context.Context, docRoot string) (*docsync.GroomResult, error)
}

func (g *Groomer) Groom(ctx context.Context, docRoot string) (*docsync.GroomResult, error) {
	return g.GroomFn(ctx, docRoot)
}

var _ docsync.Indexer = (*Indexer)(nil)

// Indexer is a mock implementation of docsync.Indexer.
type Indexer struct {
	BuildIndexFn          func(ctx context.Context, docRoot string) (*docsync.Index, error)
	UpdateIndexDocumentFn func(ctx context.Context, indexFile, text string) error
}

func (x *Indexer) BuildIndex(ctx context.Context, docRoot string) (*docsync.Index, error) {
	return x.BuildIndexFn(ctx, docRoot)
}

func (x *Indexer) UpdateIndexDocument(ctx context.Context, indexFile, text string) error {
	return x.UpdateIndexDocumentFn(ctx, indexFile, text)
}

var _ docsync.Publisher = (*Publisher)(nil)

// Publisher is a mock implementation of docsync.Publisher.
type Publisher struct {
	PublishFn func(ctx context.Context, newTree, published string) error
	RecoverFn func(published string) (bool, error)
}

func (p *Publisher) Publish(ctx context.Context, newTree, published string) error {
	return p.PublishFn(ctx, newTree, published)
}

func (p *Publisher) Recover(published string) (bool, error) {
	return p.RecoverFn(published)
}

var _ docsync.RunGuard = (*RunGuard)(nil)

// RunGuard is a mock implementation of docsync.RunGuard.
type RunGuard struct {
	AcquireFn func() (func() error, error)
}

func (g *RunGuard) Acquire() (func() error, error) {
	return g.AcquireFn()
}
