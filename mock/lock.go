package mock

import "github.com/fwojciec/docsync"

var _ docsync.LockStore = (*LockStore)(nil)

// LockStore is a mock implementation of docsync.LockStore.
type LockStore struct {
	LoadFn func() (*docsync.LockState, error)
	SaveFn func(state *docsync.LockState) error
}

func (s *LockStore) Load() (*docsync.LockState, error) {
	return s.LoadFn()
}

func (s *LockStore) Save(state *docsync.LockState) error {
	return s.SaveFn(state)
}
