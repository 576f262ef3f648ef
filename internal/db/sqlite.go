package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/copycraft-ai/copycraft/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_credits (
    user_id TEXT PRIMARY KEY,
    credits INTEGER NOT NULL,
    last_reset TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS history (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    content TEXT NOT NULL,
    params TEXT NOT NULL,
    timestamp INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_user ON history(user_id, timestamp DESC);

CREATE TABLE IF NOT EXISTS presets (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    params TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_presets_user ON presets(user_id);`

// Database is the SQLite-backed store for credits, history and presets. It
// satisfies credit.Repository, history.Repository and preset.Repository.
type Database struct {
	db *sql.DB
}

func New(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// GetAccount returns the stored credit account, or nil when the user has
// never been seen.
func (d *Database) GetAccount(ctx context.Context, userID string) (*models.CreditAccount, error) {
	query := `
        SELECT user_id, credits, last_reset
        FROM user_credits
        WHERE user_id = ?`

	acct := &models.CreditAccount{}
	err := d.db.QueryRowContext(ctx, query, userID).Scan(&acct.UserID, &acct.Credits, &acct.LastReset)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return acct, nil
}

// PutAccount inserts or replaces the credit account row.
func (d *Database) PutAccount(ctx context.Context, acct *models.CreditAccount) error {
	query := `
        INSERT INTO user_credits (user_id, credits, last_reset)
        VALUES (?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET credits = excluded.credits, last_reset = excluded.last_reset`

	_, err := d.db.ExecContext(ctx, query, acct.UserID, acct.Credits, acct.LastReset)
	return err
}

func (d *Database) InsertHistory(ctx context.Context, entry *models.HistoryEntry) error {
	params, err := json.Marshal(entry.Params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}

	query := `
        INSERT INTO history (id, user_id, content, params, timestamp)
        VALUES (?, ?, ?, ?, ?)`

	_, err = d.db.ExecContext(ctx, query, entry.ID, entry.UserID, entry.Content, string(params), entry.Timestamp)
	return err
}

func (d *Database) ListHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	query := `
        SELECT id, user_id, content, params, timestamp
        FROM history
        WHERE user_id = ?
        ORDER BY timestamp DESC`

	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var entry models.HistoryEntry
		var params string
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Content, &params, &entry.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(params), &entry.Params); err != nil {
			return nil, fmt.Errorf("failed to decode params for entry %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (d *Database) DeleteHistory(ctx context.Context, userID, id string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM history WHERE user_id = ? AND id = ?", userID, id)
	return err
}

func (d *Database) InsertPreset(ctx context.Context, p *models.Preset) error {
	params, err := json.Marshal(p.Params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}

	query := `
        INSERT INTO presets (id, user_id, name, params)
        VALUES (?, ?, ?, ?)`

	_, err = d.db.ExecContext(ctx, query, p.ID, p.UserID, p.Name, string(params))
	return err
}

func (d *Database) ListPresets(ctx context.Context, userID string) ([]models.Preset, error) {
	query := `
        SELECT id, user_id, name, params
        FROM presets
        WHERE user_id = ?
        ORDER BY name`

	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presets := make([]models.Preset, 0)
	for rows.Next() {
		var p models.Preset
		var params string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &params); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(params), &p.Params); err != nil {
			return nil, fmt.Errorf("failed to decode params for preset %s: %w", p.ID, err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

func (d *Database) DeletePreset(ctx context.Context, userID, id string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM presets WHERE user_id = ? AND id = ?", userID, id)
	return err
}
