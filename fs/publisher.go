package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsync"
)

// Ensure Publisher implements docsync.Publisher at compile time.
var _ docsync.Publisher = (*Publisher)(nil)

// Publisher swaps a freshly groomed tree into the published location.
//
// The swap is three renames: the new tree is staged next to the target as
// "<published>.new", the current tree is moved aside to "<published>.old",
// and the staged tree is renamed into place. The published path is absent
// only between the last two renames. Recover repairs that window after a
// crash.
type Publisher struct{}

// NewPublisher creates a new Publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

func stagedPath(published string) string { return published + ".new" }
func backupPath(published string) string { return published + ".old" }

// Publish replaces published with newTree. newTree is consumed.
func (p *Publisher) Publish(ctx context.Context, newTree, published string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	staged := stagedPath(published)
	backup := backupPath(published)

	if err := os.MkdirAll(filepath.Dir(published), 0755); err != nil {
		return docsync.WrapError(docsync.EPUBLISH, err, "failed to create %s", filepath.Dir(published))
	}

	if err := os.RemoveAll(staged); err != nil {
		return docsync.WrapError(docsync.EPUBLISH, err, "failed to clear %s", staged)
	}
	if err := os.Rename(newTree, staged); err != nil {
		return docsync.WrapError(docsync.EPUBLISH, err, "failed to stage %s", newTree)
	}

	hadPrevious := true
	if _, err := os.Lstat(published); errors.Is(err, os.ErrNotExist) {
		hadPrevious = false
	} else if err != nil {
		return docsync.WrapError(docsync.EPUBLISH, err, "failed to inspect %s", published)
	}

	if hadPrevious {
		if err := os.RemoveAll(backup); err != nil {
			return docsync.WrapError(docsync.EPUBLISH, err, "failed to clear %s", backup)
		}
		if err := os.Rename(published, backup); err != nil {
			return docsync.WrapError(docsync.EPUBLISH, err, "failed to move %s aside", published)
		}
	}

	if err := os.Rename(staged, published); err != nil {
		if hadPrevious {
			if rerr := os.Rename(backup, published); rerr != nil {
				return docsync.WrapError(docsync.EPUBLISH, errors.Join(err, rerr), "failed to publish %s and restore previous tree", published)
			}
		}
		return docsync.WrapError(docsync.EPUBLISH, err, "failed to publish %s", published)
	}

	// A leftover backup is removed by the next Recover.
	_ = os.RemoveAll(backup)
	return nil
}

// Recover restores the previous tree when an interrupted Publish left the
// published path missing. It reports whether a tree was restored. When the
// published path exists, stale staging and backup directories are removed.
func (p *Publisher) Recover(published string) (bool, error) {
	staged := stagedPath(published)
	backup := backupPath(published)

	_, err := os.Lstat(published)
	if err == nil {
		if err := os.RemoveAll(staged); err != nil {
			return false, docsync.WrapError(docsync.EPUBLISH, err, "failed to clear %s", staged)
		}
		if err := os.RemoveAll(backup); err != nil {
			return false, docsync.WrapError(docsync.EPUBLISH, err, "failed to clear %s", backup)
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, docsync.WrapError(docsync.EPUBLISH, err, "failed to inspect %s", published)
	}

	if _, err := os.Lstat(backup); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, docsync.WrapError(docsync.EPUBLISH, err, "failed to inspect %s", backup)
	}

	if err := os.Rename(backup, published); err != nil {
		return false, docsync.WrapError(docsync.EPUBLISH, err, "failed to restore %s", published)
	}
	return true, nil
}
