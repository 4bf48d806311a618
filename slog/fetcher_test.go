package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/mock"
	docslog "github.com/fwojciec/docsync/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArchiveFetcher{
			FetchFn: func(_ context.Context, _, _ string, progress docsync.DownloadProgressFunc) error {
				progress(docsync.DownloadProgress{Written: 8192, Total: 16384})
				progress(docsync.DownloadProgress{Written: 16384, Total: 16384})
				return nil
			},
		}

		var seen []int64
		fetcher := docslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Fetch(context.Background(), "https://example.com/a.tar.gz", "/tmp/a.tar.gz",
			func(p docsync.DownloadProgress) { seen = append(seen, p.Written) })

		require.NoError(t, err)
		assert.Equal(t, []int64{8192, 16384}, seen)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/a.tar.gz")
		assert.Contains(t, output, "bytes=16384")
		assert.Contains(t, output, "duration=")
	})

	t.Run("tolerates nil progress", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArchiveFetcher{
			FetchFn: func(_ context.Context, _, _ string, progress docsync.DownloadProgressFunc) error {
				progress(docsync.DownloadProgress{Written: 10})
				return nil
			},
		}

		err := docslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "u", "d", nil)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "bytes=10")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArchiveFetcher{
			FetchFn: func(context.Context, string, string, docsync.DownloadProgressFunc) error {
				return errors.New("network error")
			},
		}

		err := docslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "u", "d", nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.ArchiveExtractor{
		ExtractFn: func(context.Context, string, string) error { return nil },
	}

	err := docslog.NewLoggingExtractor(inner, logger).Extract(context.Background(), "/w/a.tar.gz", "/w/scratch")

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "msg=extract")
	assert.Contains(t, output, "archive=/w/a.tar.gz")
	assert.Contains(t, output, "dest=/w/scratch")
}
