package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/copycraft-ai/copycraft/internal/db"
	"github.com/copycraft-ai/copycraft/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *db.Database {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestAccounts_RoundTrip(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	acct, err := database.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, acct, "unknown user has no row")

	want := &models.CreditAccount{UserID: "alice", Credits: 7, LastReset: "2025-03-01"}
	require.NoError(t, database.PutAccount(ctx, want))

	got, err := database.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Upsert replaces in place.
	want.Credits = 3
	want.LastReset = "2025-03-02"
	require.NoError(t, database.PutAccount(ctx, want))

	got, err = database.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Credits)
	assert.Equal(t, "2025-03-02", got.LastReset)
}

func TestHistory_InsertListDelete(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	params := models.GenerationRequest{
		Topic:       "x",
		ContentType: models.VideoScript,
		Audience:    "creators",
		Tone:        models.Educational,
		WordCount:   "300 words",
	}
	first := &models.HistoryEntry{ID: "h1", UserID: "alice", Content: "one", Params: params, Timestamp: 1000}
	second := &models.HistoryEntry{ID: "h2", UserID: "alice", Content: "two", Params: params, Timestamp: 2000}
	other := &models.HistoryEntry{ID: "h3", UserID: "bob", Content: "not mine", Params: params, Timestamp: 3000}

	require.NoError(t, database.InsertHistory(ctx, first))
	require.NoError(t, database.InsertHistory(ctx, second))
	require.NoError(t, database.InsertHistory(ctx, other))

	entries, err := database.ListHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "h2", entries[0].ID, "newest first")
	assert.Equal(t, "h1", entries[1].ID)
	assert.Equal(t, params, entries[0].Params, "params survive the JSON round trip")

	// Delete is scoped to the owning user.
	require.NoError(t, database.DeleteHistory(ctx, "alice", "h3"))
	bobEntries, err := database.ListHistory(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobEntries, 1)

	require.NoError(t, database.DeleteHistory(ctx, "alice", "h1"))
	require.NoError(t, database.DeleteHistory(ctx, "alice", "h1"))

	entries, err = database.ListHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "h2", entries[0].ID)
}

func TestHistory_EmptyListIsNotNil(t *testing.T) {
	database := newTestDB(t)

	entries, err := database.ListHistory(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestPresets_RoundTrip(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	params := models.GenerationRequest{
		Topic:               "weekly digest",
		ContentType:         models.EmailNewsletter,
		Audience:            "subscribers",
		Tone:                models.Conversational,
		SpecialRequirements: "always include a P.S.",
	}
	p := &models.Preset{ID: "p1", UserID: "alice", Name: "Digest", Params: params}
	require.NoError(t, database.InsertPreset(ctx, p))

	presets, err := database.ListPresets(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, *p, presets[0])

	require.NoError(t, database.DeletePreset(ctx, "alice", "p1"))
	presets, err = database.ListPresets(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, presets)
}
