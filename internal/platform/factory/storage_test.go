package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/notewell/notewell/internal/config"
)

func TestNewStore_Memory(t *testing.T) {
	cfg := &config.Config{DBDriver: "memory"}
	s, err := NewStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if s == nil {
		t.Fatalf("nil store")
	}
}

func TestNewStore_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "notes.db"),
	}
	s, err := NewStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	// Schema bootstrap ran: an owner scan on the fresh database works.
	if notes, err := s.Notes().ListByOwner(context.Background(), "alice"); err != nil || len(notes) != 0 {
		t.Fatalf("fresh sqlite store scan: n=%d err=%v", len(notes), err)
	}
}

func TestNewStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "clay-tablets"}
	if _, err := NewStore(context.Background(), cfg); err == nil {
		t.Fatalf("unknown driver accepted")
	}
}
