// Package review tracks per-chunk accept/reject decisions. The diff model
// itself is immutable and carries no decision state; a Tracker is the
// caller-owned map from chunk ID to Decision, safe for concurrent use.
package review

import (
	"sync"

	"reviewdiff/types"
)

// Tracker records decisions keyed by chunk ID. The zero value is not ready
// to use; call NewTracker.
type Tracker struct {
	mu        sync.RWMutex
	decisions map[string]types.Decision
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{decisions: make(map[string]types.Decision)}
}

// Set records the decision for a chunk. Setting DecisionPending clears any
// previous decision.
func (t *Tracker) Set(chunkID string, d types.Decision) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d == types.DecisionPending {
		delete(t.decisions, chunkID)
		return
	}
	t.decisions[chunkID] = d
}

// Get returns the decision for a chunk; chunks never set are pending.
func (t *Tracker) Get(chunkID string) types.Decision {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.decisions[chunkID]
}

// Counts returns how many chunks are accepted and rejected.
func (t *Tracker) Counts() (accepted, rejected int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, d := range t.decisions {
		switch d {
		case types.DecisionAccepted:
			accepted++
		case types.DecisionRejected:
			rejected++
		}
	}
	return accepted, rejected
}

// Reset clears all recorded decisions.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.decisions = make(map[string]types.Decision)
}
