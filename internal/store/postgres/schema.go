package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notewell/notewell/internal/model"
)

const notesSchema = `
CREATE TABLE IF NOT EXISTS notes (
    id               SERIAL PRIMARY KEY,
    uuid             VARCHAR(36) NOT NULL UNIQUE,
    title            TEXT NOT NULL,
    owner            TEXT NOT NULL,
    description      TEXT NOT NULL,
    create_time      VARCHAR(20) NOT NULL,
    last_update_time VARCHAR(20) NOT NULL,
    delete_time      VARCHAR(20),
    tags             TEXT[] NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS notes_owner_idx ON notes (owner);
`

// EnsureSchema creates the notes table when it does not exist. Production
// deployments run migrations out of band; this keeps local and test
// environments self-bootstrapping.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, notesSchema); err != nil {
		return fmt.Errorf("%w: ensuring notes schema: %v", model.ErrUnavailable, err)
	}
	return nil
}
