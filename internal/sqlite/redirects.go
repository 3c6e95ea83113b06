package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// Record overwrites the redirect entry for parent.
func (b *Backend) Record(ctx context.Context, parent, child types.StateID, params types.Params) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrMemoryDetached
	}

	encoded, err := encodeParams(params)
	if err != nil {
		return err
	}

	_, err = b.db.ExecContext(ctx,
		`INSERT INTO redirects (parent_state, child_state, params, recorded_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(parent_state) DO UPDATE SET
		   child_state = excluded.child_state,
		   params = excluded.params,
		   recorded_at = excluded.recorded_at`,
		string(parent), string(child), encoded, b.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording redirect for %s: %w", parent, err)
	}
	return nil
}

// Recall returns the redirect entry for parent. A miss is ok=false.
func (b *Backend) Recall(ctx context.Context, parent types.StateID) (types.RedirectEntry, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.RedirectEntry{}, false, types.ErrMemoryDetached
	}

	var child, rawParams, rawTime string
	err := b.db.QueryRowContext(ctx,
		"SELECT child_state, params, recorded_at FROM redirects WHERE parent_state = ?",
		string(parent),
	).Scan(&child, &rawParams, &rawTime)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RedirectEntry{}, false, nil
	}
	if err != nil {
		return types.RedirectEntry{}, false, fmt.Errorf("recalling redirect for %s: %w", parent, err)
	}

	params, err := decodeParams(rawParams)
	if err != nil {
		return types.RedirectEntry{}, false, err
	}
	recordedAt, err := parseTime(rawTime)
	if err != nil {
		return types.RedirectEntry{}, false, err
	}

	return types.RedirectEntry{
		Parent:     parent,
		Child:      types.StateID(child),
		Params:     params,
		RecordedAt: recordedAt,
	}, true, nil
}
