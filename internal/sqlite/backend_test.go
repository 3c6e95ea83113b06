// Tests for the session-scoped SQLite backend.
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

func attachedBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	err := b.Attach(types.Config{Memory: types.MemorySQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Memory:  types.MemorySQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	dbPath := filepath.Join(tmpDir, DatabaseFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", DatabaseFile)
	}
	assert.Equal(t, dbPath, b.Path())

	err = b.Attach(config)
	if err != ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrMemoryEmpty)
}

func TestBackend_Detach(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Memory: types.MemorySQLite, DataDir: t.TempDir()}))

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should be a no-op, got %v", err)
	}
	assert.Empty(t, b.Path())

	err := b.Record(ctx, types.StateSearch, types.StateSearchResults, types.Params{})
	assert.ErrorIs(t, err, types.ErrMemoryDetached)

	_, _, err = b.Recall(ctx, types.StateSearch)
	assert.ErrorIs(t, err, types.ErrMemoryDetached)

	err = b.Append(ctx, types.NavigationEvent{ID: "x"})
	assert.ErrorIs(t, err, types.ErrMemoryDetached)

	_, err = b.Journal(ctx)
	assert.ErrorIs(t, err, types.ErrMemoryDetached)
}

func TestBackend_RecallBeforeRecord(t *testing.T) {
	b := attachedBackend(t)

	_, ok, err := b.Recall(context.Background(), types.StateSearch)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBackend_RecordRecallRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := attachedBackend(t)
	p := types.Params{"query": "cats", "orderBy": "date", "nonFree": true}

	require.NoError(t, b.Record(ctx, types.StateSearch, types.StateSearchResults, p))

	entry, ok, err := b.Recall(ctx, types.StateSearch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.StateSearchResults, entry.Child)
	assert.True(t, p.Equal(entry.Params), "params %v != %v", entry.Params, p)
	assert.False(t, entry.RecordedAt.IsZero())
}

func TestBackend_RecordOverwrites(t *testing.T) {
	ctx := context.Background()
	b := attachedBackend(t)

	require.NoError(t, b.Record(ctx, types.StateSearch, types.StateSearchResults, types.Params{"query": "a"}))
	require.NoError(t, b.Record(ctx, types.StateSearch, types.StateSearchResults, types.Params{"query": "b"}))

	entry, ok, err := b.Recall(ctx, types.StateSearch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", entry.Params.String("query"))
}

func TestBackend_FreshSessionPerAttach(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := types.Config{Memory: types.MemorySQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	require.NoError(t, b.Record(ctx, types.StateSearch, types.StateSearchResults, types.Params{"query": "cats"}))
	require.NoError(t, b.Detach())

	next := NewBackend()
	require.NoError(t, next.Attach(cfg))
	defer next.Detach()

	_, ok, err := next.Recall(ctx, types.StateSearch)
	require.NoError(t, err)
	assert.False(t, ok, "redirect memory must not survive a restart")
}

func TestBackend_JournalOrder(t *testing.T) {
	ctx := context.Background()
	b := attachedBackend(t)

	events := []types.NavigationEvent{
		{ID: "1", From: "", To: types.StateSearch, Title: "", Href: "/"},
		{ID: "2", From: types.StateSearch, To: types.StateSearchResults, Title: "search", Href: "/search", Params: types.Params{}},
		{ID: "3", From: types.StateSearchResults, To: types.StateSearchResults, Title: "cats", Href: "/search?query=cats", Params: types.Params{"query": "cats"}, Replay: true},
	}
	for _, ev := range events {
		require.NoError(t, b.Append(ctx, ev))
	}

	got, err := b.Journal(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(events))
	for i, e := range got {
		assert.Equal(t, events[i].ID, e.Event.ID)
		assert.Equal(t, events[i].To, e.Event.To)
		assert.Equal(t, events[i].Replay, e.Event.Replay)
		assert.True(t, e.Event.Params.Equal(events[i].Params))
		if i > 0 {
			assert.Greater(t, e.Seq, got[i-1].Seq)
		}
	}
}

func TestBackend_AppendDuplicateID(t *testing.T) {
	ctx := context.Background()
	b := attachedBackend(t)

	require.NoError(t, b.Append(ctx, types.NavigationEvent{ID: "dup", To: types.StateSearch}))
	assert.Error(t, b.Append(ctx, types.NavigationEvent{ID: "dup", To: types.StateSearch}))
}
