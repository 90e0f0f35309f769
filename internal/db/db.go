package db

import (
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	reset_token TEXT,
	reset_expiry INTEGER
);

CREATE TABLE IF NOT EXISTS watchlist (
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	coin_id TEXT NOT NULL,
	UNIQUE(user_id, coin_id)
);`

// Connect opens the SQLite database at path and verifies the schema.
// Use ":memory:" in tests.
func Connect(path string) (*sqlx.DB, error) {
	pool, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if _, err := pool.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := pool.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return pool, nil
}
