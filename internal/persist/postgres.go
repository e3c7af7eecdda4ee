package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"microStepsAPI/internal/types/habit"
)

// PostgresBackend stores the blob in a shared database instead of a local
// file. Selected when DATABASE_URL is set.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(ctx context.Context, dbURL string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value JSONB NOT NULL)`, StoreTable)
	if _, err := pool.Exec(ctx, query); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create store table: %w", err)
	}

	return &PostgresBackend{pool: pool}, nil
}

func (p *PostgresBackend) Save(ctx context.Context, state *habit.StoreState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	query := fmt.Sprintf(`
	INSERT INTO %s (key, value) VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, StoreTable)

	if _, err := p.pool.Exec(ctx, query, StateKey, blob); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (p *PostgresBackend) Load(ctx context.Context) (*habit.StoreState, bool, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, StoreTable)

	var blob []byte
	err := p.pool.QueryRow(ctx, query, StateKey).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

func (p *PostgresBackend) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresBackend) Close() {
	p.pool.Close()
}
