package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"microStepsAPI/internal/types/habit"
)

// SQLiteBackend is the default durable store: an embedded database file with
// a single-row key/value table holding the serialized StoreState.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value BLOB NOT NULL)`, StoreTable)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create store table: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set schema version: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Save(ctx context.Context, state *habit.StoreState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	query := fmt.Sprintf(`
	INSERT INTO %s (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, StoreTable)

	if _, err := s.db.ExecContext(ctx, query, StateKey, blob); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Load(ctx context.Context) (*habit.StoreState, bool, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, StoreTable)

	var blob []byte
	err := s.db.QueryRowContext(ctx, query, StateKey).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load state: %w", err)
	}

	state := &habit.StoreState{}
	if err := json.Unmarshal(blob, state); err != nil {
		return nil, false, fmt.Errorf("failed to parse state: %w", err)
	}
	return state, true, nil
}

func (s *SQLiteBackend) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteBackend) Close() {
	s.db.Close()
}
