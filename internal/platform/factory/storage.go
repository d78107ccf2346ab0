// Package factory selects the storage backend at process start.
package factory

import (
	"context"
	"fmt"

	"github.com/notewell/notewell/internal/config"
	"github.com/notewell/notewell/internal/store"
	"github.com/notewell/notewell/internal/store/memory"
	"github.com/notewell/notewell/internal/store/postgres"
	"github.com/notewell/notewell/internal/store/sqlite"
)

// NewStore builds the store.Store named by cfg.DBDriver.
func NewStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite at %s: %w", cfg.SQLitePath, err)
		}
		if err := sqlite.EnsureSchema(db); err != nil {
			return nil, fmt.Errorf("preparing sqlite schema: %w", err)
		}
		return sqlite.NewWithDB(db), nil
	case "postgres":
		pool, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return nil, err
		}
		return postgres.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
