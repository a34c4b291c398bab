package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-study-assistant/internal/model"
)

func entry(id string, mode model.Mode) model.HistoryEntry {
	return model.HistoryEntry{
		ID:        id,
		Mode:      mode,
		Note:      model.StructuredNote{Mode: mode, Bullets: []string{"a point"}},
		CreatedAt: time.Now(),
	}
}

func TestMemoryStoreAppendAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(time.Minute)

	require.NoError(t, store.Append(ctx, "s1", entry("e1", model.ModeBullets)))
	require.NoError(t, store.Append(ctx, "s1", entry("e2", model.ModeFlashcards)))

	entries, err := store.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e1", entries[0].ID, "append order is preserved")
	assert.Equal(t, "e2", entries[1].ID)
}

func TestMemoryStoreSessionIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(time.Minute)

	require.NoError(t, store.Append(ctx, "s1", entry("e1", model.ModeBullets)))

	entries, err := store.List(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, entries, "no cross-session sharing")
}

func TestMemoryStoreGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(time.Minute)

	require.NoError(t, store.Append(ctx, "s1", entry("e1", model.ModeBullets)))

	got, err := store.Get(ctx, "s1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)

	_, err = store.Get(ctx, "s1", "missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = store.Get(ctx, "other-session", "e1")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(time.Minute)

	require.NoError(t, store.Append(ctx, "s1", entry("e1", model.ModeBullets)))
	require.NoError(t, store.Clear(ctx, "s1"))

	entries, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(30 * time.Millisecond)

	require.NoError(t, store.Append(ctx, "s1", entry("e1", model.ModeBullets)))
	time.Sleep(60 * time.Millisecond)

	entries, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, entries, "history dies with the session")
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(time.Minute)

	require.NoError(t, store.Append(ctx, "s1", entry("e1", model.ModeBullets)))

	entries, _ := store.List(ctx, "s1")
	entries[0].ID = "mutated"

	again, _ := store.List(ctx, "s1")
	assert.Equal(t, "e1", again[0].ID)
}
