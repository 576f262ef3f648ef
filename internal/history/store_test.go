package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/copycraft-ai/copycraft/internal/db"
	"github.com/copycraft-ai/copycraft/internal/history"
	"github.com/copycraft-ai/copycraft/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blogRequest(topic string) models.GenerationRequest {
	return models.GenerationRequest{
		Topic:       topic,
		ContentType: models.BlogPost,
		Audience:    "small business owners",
		Tone:        models.Professional,
	}
}

func TestAppendThenList(t *testing.T) {
	store := history.NewStore(db.NewMemory())
	ctx := context.Background()

	entry, err := store.Append(ctx, "u1", "Hello world", blogRequest("x"))
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, "Hello world", entry.Content)

	entries, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Hello world", entries[0].Content)
	assert.Equal(t, blogRequest("x"), entries[0].Params)
}

func TestList_NewestFirst(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := history.NewStore(db.NewMemory()).WithClock(func() time.Time {
		ts = ts.Add(time.Second)
		return ts
	})
	ctx := context.Background()

	_, err := store.Append(ctx, "u1", "first", blogRequest("a"))
	require.NoError(t, err)
	_, err = store.Append(ctx, "u1", "second", blogRequest("b"))
	require.NoError(t, err)

	entries, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Content)
	assert.Equal(t, "first", entries[1].Content)
}

func TestList_EmptyForUnknownUser(t *testing.T) {
	store := history.NewStore(db.NewMemory())

	entries, err := store.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemove(t *testing.T) {
	store := history.NewStore(db.NewMemory())
	ctx := context.Background()

	entry, err := store.Append(ctx, "u1", "Hello world", blogRequest("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "u1", entry.ID))

	entries, err := store.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Removing an id that is already gone stays a no-op.
	require.NoError(t, store.Remove(ctx, "u1", entry.ID))
}

func TestRemove_ScopedToUser(t *testing.T) {
	store := history.NewStore(db.NewMemory())
	ctx := context.Background()

	entry, err := store.Append(ctx, "u1", "mine", blogRequest("x"))
	require.NoError(t, err)

	// Another user cannot delete it.
	require.NoError(t, store.Remove(ctx, "u2", entry.ID))

	entries, err := store.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
