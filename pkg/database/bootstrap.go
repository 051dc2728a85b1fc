package database

import (
	"context"
	"fmt"
)

// Bootstrap creates the tables the application needs if they do not exist.
// Movies are stored as loosely-typed jsonb documents; users have a fixed shape.
func Bootstrap(ctx context.Context, db PgxIface) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			id         uuid PRIMARY KEY,
			doc        jsonb NOT NULL DEFAULT '{}'::jsonb,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id         uuid PRIMARY KEY,
			name       text NOT NULL,
			email      text NOT NULL,
			password   text NOT NULL,
			role       text NOT NULL DEFAULT 'user',
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (email)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}

	return nil
}
