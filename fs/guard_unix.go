//go:build unix

package fs

import (
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/docsync"
	"golang.org/x/sys/unix"
)

// Ensure RunGuard implements docsync.RunGuard at compile time.
var _ docsync.RunGuard = (*RunGuard)(nil)

// RunGuard serializes pipeline runs in one working directory with an
// exclusive flock on a guard file. The lock dies with the process.
type RunGuard struct {
	path string
}

// NewRunGuard creates a RunGuard on the file at path.
func NewRunGuard(path string) *RunGuard {
	return &RunGuard{path: path}
}

// Acquire takes the lock without blocking. It fails with ECONFLICT when
// another process holds it.
func (g *RunGuard) Acquire() (func() error, error) {
	f, err := os.OpenFile(g.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, docsync.WrapError(docsync.EINTERNAL, err, "failed to open run guard %s", g.path)
	}

	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, docsync.Errorf(docsync.ECONFLICT, "another sync is already running (%s)", g.path)
		}
		return nil, docsync.WrapError(docsync.EINTERNAL, err, "failed to lock run guard %s", g.path)
	}

	// Informational only; the flock is what excludes other runs.
	if err := f.Truncate(0); err == nil {
		fmt.Fprintf(f, "%d\n", os.Getpid())
	}

	release := func() error {
		uerr := unix.Flock(fd, unix.LOCK_UN)
		cerr := f.Close()
		return errors.Join(uerr, cerr)
	}
	return release, nil
}
