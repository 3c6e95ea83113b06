// Package memory provides the default in-process RedirectMemory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

var _ types.RedirectMemory = (*Store)(nil)

// Store keeps one RedirectEntry per parent state for the lifetime of the
// process. Params are copied on both Record and Recall.
type Store struct {
	mu      sync.RWMutex
	entries map[types.StateID]types.RedirectEntry
	now     func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		entries: make(map[types.StateID]types.RedirectEntry),
		now:     time.Now,
	}
}

// Record overwrites the entry for parent.
func (s *Store) Record(_ context.Context, parent, child types.StateID, params types.Params) error {
	s.mu.Lock()
	s.entries[parent] = types.RedirectEntry{
		Parent:     parent,
		Child:      child,
		Params:     params.Clone(),
		RecordedAt: s.now().UTC(),
	}
	s.mu.Unlock()
	return nil
}

// Recall returns the entry for parent, or ok=false when nothing has been
// recorded under it.
func (s *Store) Recall(_ context.Context, parent types.StateID) (types.RedirectEntry, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[parent]
	s.mu.RUnlock()
	if !ok {
		return types.RedirectEntry{}, false, nil
	}
	entry.Params = entry.Params.Clone()
	return entry, true, nil
}

// Len returns the number of remembered parents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
