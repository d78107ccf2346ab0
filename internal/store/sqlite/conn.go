package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a SQLite database at the given path with WAL
// journal mode for better read concurrency.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the notes and lists tables if they do not exist.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Notes (
            Id INTEGER PRIMARY KEY AUTOINCREMENT,
            Uuid TEXT NOT NULL UNIQUE,
            Title TEXT NOT NULL,
            Owner TEXT NOT NULL,
            Description TEXT NOT NULL,
            CreateTime TEXT NOT NULL,
            LastUpdateTime TEXT NOT NULL,
            DeleteTime TEXT,
            Tags TEXT NOT NULL DEFAULT '[]'
        );`,
		`CREATE INDEX IF NOT EXISTS NotesOwnerIdx ON Notes (Owner);`,
		`CREATE TABLE IF NOT EXISTS Lists (
            Id INTEGER PRIMARY KEY AUTOINCREMENT,
            Uuid TEXT NOT NULL UNIQUE,
            Title TEXT NOT NULL,
            Owner TEXT NOT NULL,
            Description TEXT NOT NULL,
            NoteIds TEXT NOT NULL DEFAULT '[]'
        );`,
		`CREATE INDEX IF NOT EXISTS ListsOwnerIdx ON Lists (Owner);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
