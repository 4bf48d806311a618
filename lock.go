package docsync

import "time"

// DefaultCooldown is the minimum time between two successful runs.
const DefaultCooldown = 72 * time.Hour

// Status is the outcome recorded for a pipeline run.
type Status string

// Status constants.
const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusSkipped Status = "skipped"
)

// LockState is the run metadata persisted between invocations.
// A nil *LockState means the pipeline has never run.
type LockState struct {
	LastRun        time.Time `json:"last_run"`
	LastStatus     Status    `json:"last_status"`
	FilesProcessed int       `json:"files_processed"`
}

// LockStore loads and saves the lock state.
type LockStore interface {
	// Load returns the persisted state, or nil if none exists.
	// Malformed persisted data is an EINVALID error.
	Load() (*LockState, error)

	// Save replaces the persisted state. A crash during Save leaves the
	// previous state intact.
	Save(state *LockState) error
}

// CooldownGate decides whether a new run is permitted.
type CooldownGate struct {
	// Cooldown is the minimum elapsed time after a successful run.
	// Defaults to DefaultCooldown when zero.
	Cooldown time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// CanProceed reports whether a run may start given the last lock state.
// A prior failure never blocks a retry.
func (g *CooldownGate) CanProceed(state *LockState, force bool) bool {
	if force || state == nil || state.LastStatus != StatusSuccess {
		return true
	}
	return g.now().Sub(state.LastRun) >= g.cooldown()
}

// Remaining returns how long until the cooldown expires, or zero if a run
// may start now.
func (g *CooldownGate) Remaining(state *LockState) time.Duration {
	if state == nil || state.LastStatus != StatusSuccess {
		return 0
	}
	remaining := g.cooldown() - g.now().Sub(state.LastRun)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (g *CooldownGate) cooldown() time.Duration {
	if g.Cooldown <= 0 {
		return DefaultCooldown
	}
	return g.Cooldown
}

func (g *CooldownGate) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}
