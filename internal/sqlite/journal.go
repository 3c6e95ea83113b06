package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// JournalEntry is one settled transition as stored in the journal.
type JournalEntry struct {
	Seq       int64                 `json:"seq"`
	Event     types.NavigationEvent `json:"event"`
	SettledAt time.Time             `json:"settled_at"`
}

// Append adds a settled transition to the journal.
func (b *Backend) Append(ctx context.Context, ev types.NavigationEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrMemoryDetached
	}

	encoded, err := encodeParams(ev.Params)
	if err != nil {
		return err
	}
	replay := 0
	if ev.Replay {
		replay = 1
	}

	_, err = b.db.ExecContext(ctx,
		`INSERT INTO transitions (transition_id, from_state, to_state, title, href, params, replay, settled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, string(ev.From), string(ev.To), ev.Title, ev.Href, encoded, replay,
		b.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("appending transition %s: %w", ev.ID, err)
	}
	return nil
}

// Journal returns every settled transition of the session in settle order.
func (b *Backend) Journal(ctx context.Context) ([]JournalEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrMemoryDetached
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT seq, transition_id, from_state, to_state, title, href, params, replay, settled_at
		 FROM transitions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var (
			e                  JournalEntry
			from, to           string
			rawParams, rawTime string
			replay             int
		)
		if err := rows.Scan(&e.Seq, &e.Event.ID, &from, &to, &e.Event.Title, &e.Event.Href, &rawParams, &replay, &rawTime); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.Event.From = types.StateID(from)
		e.Event.To = types.StateID(to)
		e.Event.Replay = replay != 0
		if e.Event.Params, err = decodeParams(rawParams); err != nil {
			return nil, err
		}
		if e.SettledAt, err = parseTime(rawTime); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal: %w", err)
	}
	return entries, nil
}
