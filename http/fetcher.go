// Package http provides an HTTP implementation of docsync.ArchiveFetcher
// that streams a remote archive to a local file.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fwojciec/docsync"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the overall timeout for an archive download,
// covering connection, redirects and reading the body.
const DefaultTimeout = 60 * time.Second

// DefaultChunkSize is the size of each read from the response body.
const DefaultChunkSize = 8 * 1024

// DefaultProgressInterval is the minimum time between progress reports.
const DefaultProgressInterval = 100 * time.Millisecond

// Ensure ArchiveFetcher implements docsync.ArchiveFetcher at compile time.
var _ docsync.ArchiveFetcher = (*ArchiveFetcher)(nil)

// ArchiveFetcher downloads archives with plain HTTP GET requests.
// Redirects are followed by the default client policy.
type ArchiveFetcher struct {
	client           *http.Client
	timeout          time.Duration
	chunkSize        int
	progressInterval time.Duration
}

// Option configures an ArchiveFetcher.
type Option func(*ArchiveFetcher)

// WithTimeout sets the overall download timeout.
// Defaults to DefaultTimeout (60s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *ArchiveFetcher) {
		f.timeout = d
	}
}

// WithChunkSize sets the read buffer size.
func WithChunkSize(n int) Option {
	return func(f *ArchiveFetcher) {
		if n > 0 {
			f.chunkSize = n
		}
	}
}

// WithProgressInterval sets the minimum time between progress reports.
// Zero reports every chunk.
func WithProgressInterval(d time.Duration) Option {
	return func(f *ArchiveFetcher) {
		f.progressInterval = d
	}
}

// NewArchiveFetcher creates a new ArchiveFetcher.
func NewArchiveFetcher(opts ...Option) *ArchiveFetcher {
	f := &ArchiveFetcher{
		timeout:          DefaultTimeout,
		chunkSize:        DefaultChunkSize,
		progressInterval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch streams the archive at url into dst.
func (f *ArchiveFetcher) Fetch(ctx context.Context, url, dst string, progress docsync.DownloadProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return docsync.WrapError(docsync.EDOWNLOAD, err, "invalid archive URL %q", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return docsync.WrapError(docsync.EDOWNLOAD, err, "network error downloading archive")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return docsync.Errorf(docsync.EDOWNLOAD, "HTTP %d error downloading archive", resp.StatusCode)
	}

	file, err := os.Create(dst)
	if err != nil {
		return docsync.WrapError(docsync.EDOWNLOAD, err, "failed to write archive to %s", dst)
	}

	written, err := f.copy(file, resp.Body, resp.ContentLength, progress)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = docsync.WrapError(docsync.EDOWNLOAD, cerr, "failed to write archive to %s", dst)
	}
	if err != nil {
		return err
	}

	if progress != nil {
		progress(docsync.DownloadProgress{Written: written, Total: resp.ContentLength})
	}
	return nil
}

// copy moves the body into w chunk by chunk, keeping read (network) and
// write (local) failures apart.
func (f *ArchiveFetcher) copy(w io.Writer, body io.Reader, total int64, progress docsync.DownloadProgressFunc) (int64, error) {
	buf := make([]byte, f.chunkSize)
	throttle := f.throttle()

	var written int64
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return written, docsync.WrapError(docsync.EDOWNLOAD, werr, "failed to write archive to %s", fileName(w))
			}
			written += int64(n)
			if progress != nil {
				throttle.Do(func() {
					progress(docsync.DownloadProgress{Written: written, Total: total})
				})
			}
		}
		if errors.Is(rerr, io.EOF) {
			return written, nil
		}
		if rerr != nil {
			return written, docsync.WrapError(docsync.EDOWNLOAD, rerr, "network error downloading archive")
		}
	}
}

// throttle limits chunk progress reports to one per progressInterval.
// A non-positive interval reports every chunk.
func (f *ArchiveFetcher) throttle() *rate.Sometimes {
	if f.progressInterval <= 0 {
		return &rate.Sometimes{Every: 1}
	}
	return &rate.Sometimes{Interval: f.progressInterval}
}

func fileName(w io.Writer) string {
	if f, ok := w.(*os.File); ok {
		return f.Name()
	}
	return "archive"
}
