package db

import (
	"context"
	"sort"
	"sync"

	"github.com/copycraft-ai/copycraft/internal/models"
)

// Memory is an in-memory implementation of the repository interfaces,
// primarily intended for tests. It stores copies so callers can never
// mutate persisted state through a returned pointer.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]models.CreditAccount
	history  map[string][]models.HistoryEntry
	presets  map[string][]models.Preset
}

func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]models.CreditAccount),
		history:  make(map[string][]models.HistoryEntry),
		presets:  make(map[string][]models.Preset),
	}
}

func (m *Memory) GetAccount(ctx context.Context, userID string) (*models.CreditAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acct, ok := m.accounts[userID]
	if !ok {
		return nil, nil
	}
	return &acct, nil
}

func (m *Memory) PutAccount(ctx context.Context, acct *models.CreditAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts[acct.UserID] = *acct
	return nil
}

func (m *Memory) InsertHistory(ctx context.Context, entry *models.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history[entry.UserID] = append(m.history[entry.UserID], *entry)
	return nil
}

func (m *Memory) ListHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]models.HistoryEntry, len(m.history[userID]))
	copy(entries, m.history[userID])
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}

func (m *Memory) DeleteHistory(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.history[userID]
	for i, entry := range entries {
		if entry.ID == id {
			m.history[userID] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) InsertPreset(ctx context.Context, p *models.Preset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.presets[p.UserID] = append(m.presets[p.UserID], *p)
	return nil
}

func (m *Memory) ListPresets(ctx context.Context, userID string) ([]models.Preset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	presets := make([]models.Preset, len(m.presets[userID]))
	copy(presets, m.presets[userID])
	sort.SliceStable(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})
	return presets, nil
}

func (m *Memory) DeletePreset(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	presets := m.presets[userID]
	for i, p := range presets {
		if p.ID == id {
			m.presets[userID] = append(presets[:i], presets[i+1:]...)
			break
		}
	}
	return nil
}
