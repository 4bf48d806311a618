package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsync"
)

// Ensure LoggingValidator implements docsync.TreeValidator.
var _ docsync.TreeValidator = (*LoggingValidator)(nil)

// LoggingValidator wraps a TreeValidator with logging.
type LoggingValidator struct {
	next   docsync.TreeValidator
	logger *slog.Logger
}

// NewLoggingValidator creates a new LoggingValidator.
func NewLoggingValidator(next docsync.TreeValidator, logger *slog.Logger) *LoggingValidator {
	return &LoggingValidator{next: next, logger: logger}
}

// Validate delegates to the wrapped validator and logs the document root.
func (v *LoggingValidator) Validate(ctx context.Context, extractedDir string) (docRoot string, err error) {
	defer func(begin time.Time) {
		v.logger.Info("validate",
			"dir", extractedDir,
			"root", docRoot,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return v.next.Validate(ctx, extractedDir)
}

// Ensure LoggingGroomer implements docsync.Groomer.
var _ docsync.Groomer = (*LoggingGroomer)(nil)

// LoggingGroomer wraps a Groomer with logging.
type LoggingGroomer struct {
	next   docsync.Groomer
	logger *slog.Logger
}

// NewLoggingGroomer creates a new LoggingGroomer.
func NewLoggingGroomer(next docsync.Groomer, logger *slog.Logger) *LoggingGroomer {
	return &LoggingGroomer{next: next, logger: logger}
}

// Groom delegates to the wrapped groomer and logs file and link counts.
func (g *LoggingGroomer) Groom(ctx context.Context, docRoot string) (result *docsync.GroomResult, err error) {
	defer func(begin time.Time) {
		var files int
		var links docsync.LinkStats
		if result != nil {
			files = result.Files
			links = result.Links
		}
		g.logger.Info("groom",
			"root", docRoot,
			"files", files,
			"internal", links.Internal,
			"external", links.External,
			"distinct_external", links.DistinctExternal,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Groom(ctx, docRoot)
}

// Ensure LoggingIndexer implements docsync.Indexer.
var _ docsync.Indexer = (*LoggingIndexer)(nil)

// LoggingIndexer wraps an Indexer with logging.
type LoggingIndexer struct {
	next   docsync.Indexer
	logger *slog.Logger
}

// NewLoggingIndexer creates a new LoggingIndexer.
func NewLoggingIndexer(next docsync.Indexer, logger *slog.Logger) *LoggingIndexer {
	return &LoggingIndexer{next: next, logger: logger}
}

// BuildIndex delegates to the wrapped indexer and logs the document count.
func (x *LoggingIndexer) BuildIndex(ctx context.Context, docRoot string) (index *docsync.Index, err error) {
	defer func(begin time.Time) {
		var count int
		if index != nil {
			count = len(index.Documents)
		}
		x.logger.Info("build index",
			"root", docRoot,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return x.next.BuildIndex(ctx, docRoot)
}

// UpdateIndexDocument delegates to the wrapped indexer and logs the operation.
func (x *LoggingIndexer) UpdateIndexDocument(ctx context.Context, indexFile, text string) (err error) {
	defer func(begin time.Time) {
		x.logger.Info("update index document",
			"file", indexFile,
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return x.next.UpdateIndexDocument(ctx, indexFile, text)
}

// Ensure LoggingPublisher implements docsync.Publisher.
var _ docsync.Publisher = (*LoggingPublisher)(nil)

// LoggingPublisher wraps a Publisher with logging.
type LoggingPublisher struct {
	next   docsync.Publisher
	logger *slog.Logger
}

// NewLoggingPublisher creates a new LoggingPublisher.
func NewLoggingPublisher(next docsync.Publisher, logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{next: next, logger: logger}
}

// Publish delegates to the wrapped publisher and logs the operation.
func (p *LoggingPublisher) Publish(ctx context.Context, newTree, published string) (err error) {
	defer func(begin time.Time) {
		p.logger.Info("publish",
			"from", newTree,
			"to", published,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Publish(ctx, newTree, published)
}

// Recover delegates to the wrapped publisher. Only a restore or a failure
// is logged.
func (p *LoggingPublisher) Recover(published string) (restored bool, err error) {
	restored, err = p.next.Recover(published)
	if restored || err != nil {
		p.logger.Warn("recover",
			"path", published,
			"restored", restored,
			"err", err,
		)
	}
	return restored, err
}
