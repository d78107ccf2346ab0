package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/notewell/notewell/internal/store"
	"github.com/notewell/notewell/internal/store/storetest"
)

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	dsn := os.Getenv("NOTES_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("NOTES_POSTGRES_DSN not set; skipping postgres store integration test")
	}
	ctx := context.Background()
	pool, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return NewWithPool(pool)
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
