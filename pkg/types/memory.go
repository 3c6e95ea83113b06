package types

import (
	"context"
	"time"
)

// RedirectEntry is the remembered child activation of a parent state.
type RedirectEntry struct {
	Parent     StateID   `json:"parent"`
	Child      StateID   `json:"child"`
	Params     Params    `json:"params"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RedirectMemory remembers, per parent state, the last child state and
// params a navigation settled into. Entries are overwritten, never deleted,
// and live for the session only.
type RedirectMemory interface {
	// Record overwrites the entry for parent. Implementations store a copy
	// of params.
	Record(ctx context.Context, parent, child StateID, params Params) error

	// Recall returns the entry for parent. A miss returns ok=false and a nil
	// error.
	Recall(ctx context.Context, parent StateID) (entry RedirectEntry, ok bool, err error)
}
