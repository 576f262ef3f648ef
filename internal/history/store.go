// Package history keeps the append-only record of past generations.
package history

import (
	"context"
	"time"

	"github.com/copycraft-ai/copycraft/internal/models"
	"github.com/google/uuid"
)

// Repository persists history entries. ListHistory returns entries newest
// first; DeleteHistory on an absent id is not an error.
type Repository interface {
	InsertHistory(ctx context.Context, entry *models.HistoryEntry) error
	ListHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error)
	DeleteHistory(ctx context.Context, userID, id string) error
}

// Store assigns ids and timestamps and delegates persistence.
type Store struct {
	repo Repository
	now  func() time.Time
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// WithClock replaces the time source, for tests that need stable timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Append records a finished generation. The params are stored as a frozen
// copy; entries are immutable once written.
func (s *Store) Append(ctx context.Context, userID, content string, params models.GenerationRequest) (*models.HistoryEntry, error) {
	entry := &models.HistoryEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Params:    params,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.repo.InsertHistory(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns the user's entries newest first; an empty slice if none.
func (s *Store) List(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	return s.repo.ListHistory(ctx, userID)
}

// Remove deletes an entry by id, scoped to the user. Deleting an id that is
// already gone is a no-op.
func (s *Store) Remove(ctx context.Context, userID, id string) error {
	return s.repo.DeleteHistory(ctx, userID, id)
}
