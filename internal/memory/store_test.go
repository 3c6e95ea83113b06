package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

func TestStore_RecallBeforeRecord(t *testing.T) {
	s := New()

	entry, ok, err := s.Recall(context.Background(), types.StateSearch)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, types.RedirectEntry{}, entry)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := types.Params{"query": "cats", "orderBy": "date"}

	require.NoError(t, s.Record(ctx, types.StateSearch, types.StateSearchResults, p))

	entry, ok, err := s.Recall(ctx, types.StateSearch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.StateSearch, entry.Parent)
	assert.Equal(t, types.StateSearchResults, entry.Child)
	assert.True(t, p.Equal(entry.Params))
	assert.False(t, entry.RecordedAt.IsZero())
}

func TestStore_RecordOverwrites(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Record(ctx, types.StateSearch, types.StateSearchResults, types.Params{"query": "a"}))
	require.NoError(t, s.Record(ctx, types.StateSearch, types.StateSearchResults, types.Params{"query": "b"}))

	entry, ok, err := s.Recall(ctx, types.StateSearch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", entry.Params.String("query"))
	assert.Equal(t, 1, s.Len())
}

func TestStore_ParamsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := types.Params{"query": "cats"}

	require.NoError(t, s.Record(ctx, types.StateSearch, types.StateSearchResults, p))
	p["query"] = "mutated"

	entry, _, err := s.Recall(ctx, types.StateSearch)
	require.NoError(t, err)
	assert.Equal(t, "cats", entry.Params.String("query"))

	entry.Params["query"] = "mutated again"
	again, _, err := s.Recall(ctx, types.StateSearch)
	require.NoError(t, err)
	assert.Equal(t, "cats", again.Params.String("query"))
}
