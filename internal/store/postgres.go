package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS records (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Postgres is a Store backed by a single key-value table in PostgreSQL.
type Postgres struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgres opens a connection with the given DSN, verifies it, and
// creates the records table if it does not exist.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Postgres{DB: db}, nil
}

// NewPostgresWithDB wraps an existing database handle. Used by tests.
func NewPostgresWithDB(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.DB.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("postgres get: %w", err)
	}
	return value, nil
}

func (p *Postgres) Put(ctx context.Context, key, value string) error {
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO records (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("postgres put: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.DB.ExecContext(ctx, `DELETE FROM records WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("postgres delete: %w", err)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT key FROM records WHERE key LIKE $1 || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("postgres list: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres list: %w", err)
	}
	return keys, nil
}
