package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/store"
	"github.com/notewell/notewell/internal/store/storetest"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

// Concurrent partial updates of disjoint fields must not lose either write.
func TestMemoryStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s := New()

	now := model.Now()
	n := &model.Note{
		ID:             uuid.New().String(),
		Title:          "t0",
		Owner:          "alice",
		Description:    "d0",
		CreateTime:     now,
		LastUpdateTime: now,
	}
	if err := s.Notes().Create(ctx, n); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		title := "t1"
		if err := s.Notes().Update(ctx, model.UpdateNoteRequest{NoteID: n.ID, Title: &title}); err != nil {
			t.Errorf("title update: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		desc := "d1"
		if err := s.Notes().Update(ctx, model.UpdateNoteRequest{NoteID: n.ID, Description: &desc}); err != nil {
			t.Errorf("description update: %v", err)
		}
	}()
	wg.Wait()

	got, err := s.Notes().Get(ctx, n.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "t1" || got.Description != "d1" {
		t.Fatalf("lost update: title=%q description=%q", got.Title, got.Description)
	}
}

// Mutating a returned note must not leak into storage.
func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	now := model.Now()
	n := &model.Note{
		ID:             uuid.New().String(),
		Title:          "immutable",
		Owner:          "alice",
		Tags:           []model.Tag{model.NewTag(model.TagBook)},
		CreateTime:     now,
		LastUpdateTime: now,
	}
	if err := s.Notes().Create(ctx, n); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Notes().Get(ctx, n.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.Title = "mutated"
	got.Tags[0] = model.NewTag(model.TagMovie)

	again, err := s.Notes().Get(ctx, n.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Title != "immutable" || again.Tags[0] != model.NewTag(model.TagBook) {
		t.Fatalf("caller mutation leaked into storage: %+v", again)
	}
}
