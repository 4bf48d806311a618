// Package slog provides logging decorators for the docsync pipeline stages.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsync"
)

// Ensure LoggingFetcher implements docsync.ArchiveFetcher.
var _ docsync.ArchiveFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps an ArchiveFetcher with logging.
type LoggingFetcher struct {
	next   docsync.ArchiveFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docsync.ArchiveFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the download size.
func (f *LoggingFetcher) Fetch(ctx context.Context, url, dst string, progress docsync.DownloadProgressFunc) (err error) {
	var written int64
	track := func(p docsync.DownloadProgress) {
		written = p.Written
		if progress != nil {
			progress(p)
		}
	}
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", written,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, dst, track)
}

// Ensure LoggingExtractor implements docsync.ArchiveExtractor.
var _ docsync.ArchiveExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an ArchiveExtractor with logging.
type LoggingExtractor struct {
	next   docsync.ArchiveExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docsync.ArchiveExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, archivePath, destDir string) (err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"archive", archivePath,
			"dest", destDir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, archivePath, destDir)
}
