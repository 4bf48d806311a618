package fs

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/fwojciec/docsync"
)

// Ensure LockStore implements docsync.LockStore at compile time.
var _ docsync.LockStore = (*LockStore)(nil)

// LockStore persists docsync.LockState as a JSON file.
type LockStore struct {
	path string
}

// NewLockStore creates a new LockStore for the file at path.
func NewLockStore(path string) *LockStore {
	return &LockStore{path: path}
}

// Path returns the lock file location.
func (s *LockStore) Path() string {
	return s.path
}

// lockFile is the on-disk shape. Timestamps are kept as strings so that a
// malformed value is reported as such rather than as a JSON syntax error.
type lockFile struct {
	LastRun        string `json:"last_run"`
	LastStatus     string `json:"last_status"`
	FilesProcessed int    `json:"files_processed"`
}

// Load reads the lock state. A missing file means the pipeline never ran.
func (s *LockStore) Load() (*docsync.LockState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, docsync.WrapError(docsync.EINVALID, err, "failed to read lock file %s", s.path)
	}

	var raw lockFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, docsync.WrapError(docsync.EINVALID, err, "failed to read lock file %s", s.path)
	}

	state := &docsync.LockState{
		LastStatus:     docsync.Status(raw.LastStatus),
		FilesProcessed: raw.FilesProcessed,
	}

	if raw.LastRun != "" || state.LastStatus == docsync.StatusSuccess {
		lastRun, err := time.Parse(time.RFC3339Nano, raw.LastRun)
		if err != nil {
			return nil, docsync.WrapError(docsync.EINVALID, err, "invalid timestamp in lock file %s", s.path)
		}
		state.LastRun = lastRun
	}

	return state, nil
}

// Save writes the lock state through a temporary file and a rename.
func (s *LockStore) Save(state *docsync.LockState) error {
	data, err := json.MarshalIndent(lockFile{
		LastRun:        state.LastRun.UTC().Format(time.RFC3339Nano),
		LastStatus:     string(state.LastStatus),
		FilesProcessed: state.FilesProcessed,
	}, "", "  ")
	if err != nil {
		return docsync.WrapError(docsync.EINTERNAL, err, "failed to encode lock state")
	}

	if err := WriteFileAtomic(s.path, append(data, '\n'), 0644); err != nil {
		return docsync.WrapError(docsync.EINTERNAL, err, "failed to write lock file %s", s.path)
	}
	return nil
}
