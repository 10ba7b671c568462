// CLAUDE:SUMMARY In-memory Store for tests and ephemeral single-process deployments.
package match

import (
	"context"
	"sync"
)

// MemStore is a Store keeping snapshots in a process-local map. Snapshots
// are stored by value copy, so later session mutations do not leak into a
// saved record.
type MemStore struct {
	mu    sync.Mutex
	snaps map[Key]*Snapshot
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{snaps: make(map[Key]*Snapshot)}
}

func (s *MemStore) Save(_ context.Context, key Key, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[key] = copySnapshot(snap)
	return nil
}

func (s *MemStore) Load(_ context.Context, key Key) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[key]
	if !ok {
		return nil, ErrNotFound
	}
	return copySnapshot(snap), nil
}

func copySnapshot(snap *Snapshot) *Snapshot {
	out := &Snapshot{LastUpdated: snap.LastUpdated}
	if snap.RawInputs != nil {
		out.RawInputs = make([]RawInput, len(snap.RawInputs))
		copy(out.RawInputs, snap.RawInputs)
	}
	if snap.CleanNames != nil {
		out.CleanNames = make([]string, len(snap.CleanNames))
		copy(out.CleanNames, snap.CleanNames)
	}
	if snap.Matches != nil {
		out.Matches = make(map[int]string, len(snap.Matches))
		for id, name := range snap.Matches {
			out.Matches[id] = name
		}
	}
	return out
}
