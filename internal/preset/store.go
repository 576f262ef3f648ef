// Package preset manages named, reusable generation request templates.
package preset

import (
	"context"
	"errors"

	"github.com/copycraft-ai/copycraft/internal/models"
	"github.com/google/uuid"
)

// ErrEmptyName is returned when saving a preset without a name.
var ErrEmptyName = errors.New("preset name is required")

// Repository persists presets.
type Repository interface {
	InsertPreset(ctx context.Context, p *models.Preset) error
	ListPresets(ctx context.Context, userID string) ([]models.Preset, error)
	DeletePreset(ctx context.Context, userID, id string) error
}

type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Save stores a named copy of the given request parameters.
func (s *Store) Save(ctx context.Context, userID, name string, params models.GenerationRequest) (*models.Preset, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	p := &models.Preset{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Params: params,
	}
	if err := s.repo.InsertPreset(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) List(ctx context.Context, userID string) ([]models.Preset, error) {
	return s.repo.ListPresets(ctx, userID)
}

// Remove deletes a preset by id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, userID, id string) error {
	return s.repo.DeletePreset(ctx, userID, id)
}
