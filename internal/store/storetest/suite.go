// Package storetest holds a compliance suite every store.Store backend
// must pass. Backends provide a clean, isolated store from makeStore.
package storetest

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/uuid"

	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/store"
)

func newNote(owner string, tags ...model.Tag) *model.Note {
	now := model.Now()
	return &model.Note{
		ID:             uuid.New().String(),
		Title:          "Foo",
		Owner:          owner,
		Description:    "Bar",
		Tags:           tags,
		CreateTime:     now,
		LastUpdateTime: now,
	}
}

func epoch(t *testing.T, s string) int64 {
	t.Helper()
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		t.Fatalf("timestamp %q is not epoch seconds: %v", s, err)
	}
	return v
}

// Run exercises the full note contract plus, when the backend supports
// lists, the list contract, against a store.Store implementation.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	ctx := context.Background()
	owner := "owner-" + uuid.New().String()

	t.Run("CreateAndGet", func(t *testing.T) {
		s := makeStore(t)
		n := newNote(owner, model.NewTag(model.TagBook), model.NewParamTag(model.TagRecommendedBy, "sam"))
		if err := s.Notes().Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := s.Notes().Get(ctx, n.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Title != n.Title || got.Owner != n.Owner || got.Description != n.Description {
			t.Fatalf("Get mismatch: got=%+v want=%+v", got, n)
		}
		if got.CreateTime != got.LastUpdateTime {
			t.Fatalf("fresh note timestamps differ: %s vs %s", got.CreateTime, got.LastUpdateTime)
		}
		if got.DeleteTime != nil {
			t.Fatalf("fresh note has delete time %q", *got.DeleteTime)
		}
		if len(got.Tags) != 2 {
			t.Fatalf("tag round-trip: got %d tags, want 2", len(got.Tags))
		}
		seen := map[model.Tag]bool{}
		for _, tag := range got.Tags {
			if seen[tag] {
				t.Fatalf("duplicate tag after round-trip: %v", tag)
			}
			seen[tag] = true
		}
		if !seen[model.NewParamTag(model.TagRecommendedBy, "sam")] {
			t.Fatalf("parameterized tag lost payload: %v", got.Tags)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := makeStore(t)
		if _, err := s.Notes().Get(ctx, uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("Get missing: err=%v, want ErrNotFound", err)
		}
	})

	t.Run("CreateDuplicate", func(t *testing.T) {
		s := makeStore(t)
		n := newNote(owner)
		if err := s.Notes().Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := s.Notes().Create(ctx, n); !errors.Is(err, model.ErrConflict) {
			t.Fatalf("duplicate Create: err=%v, want ErrConflict", err)
		}
	})

	t.Run("ListByOwner", func(t *testing.T) {
		s := makeStore(t)
		mine := newNote(owner)
		other := newNote("someone-else")
		archived := newNote(owner)
		for _, n := range []*model.Note{mine, other, archived} {
			if err := s.Notes().Create(ctx, n); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}
		if err := s.Notes().Archive(ctx, model.ArchiveNoteRequest{NoteID: archived.ID}); err != nil {
			t.Fatalf("Archive: %v", err)
		}

		got, err := s.Notes().ListByOwner(ctx, owner)
		if err != nil {
			t.Fatalf("ListByOwner: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("ListByOwner: got %d notes, want 2 (archived included)", len(got))
		}
		if _, ok := got[archived.ID]; !ok {
			t.Fatalf("ListByOwner dropped archived note")
		}
		if _, ok := got[other.ID]; ok {
			t.Fatalf("ListByOwner leaked another owner's note")
		}

		empty, err := s.Notes().ListByOwner(ctx, "bob-"+uuid.New().String())
		if err != nil {
			t.Fatalf("ListByOwner empty: %v", err)
		}
		if len(empty) != 0 {
			t.Fatalf("ListByOwner on empty owner: got %d, want 0", len(empty))
		}
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		s := makeStore(t)
		n := newNote(owner, model.NewTag(model.TagMovie))
		if err := s.Notes().Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
		before, err := s.Notes().Get(ctx, n.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}

		title := "Foo2"
		if err := s.Notes().Update(ctx, model.UpdateNoteRequest{NoteID: n.ID, Title: &title}); err != nil {
			t.Fatalf("Update: %v", err)
		}
		after, err := s.Notes().Get(ctx, n.ID)
		if err != nil {
			t.Fatalf("Get after update: %v", err)
		}
		if after.Title != "Foo2" {
			t.Fatalf("title not updated: %q", after.Title)
		}
		if after.Description != before.Description {
			t.Fatalf("description changed by title-only update: %q -> %q", before.Description, after.Description)
		}
		if len(after.Tags) != 1 || after.Tags[0] != before.Tags[0] {
			t.Fatalf("tags changed by title-only update: %v -> %v", before.Tags, after.Tags)
		}
		if after.CreateTime != before.CreateTime {
			t.Fatalf("create time changed on update")
		}
		if epoch(t, after.LastUpdateTime) < epoch(t, before.LastUpdateTime) {
			t.Fatalf("last update time went backwards: %s -> %s", before.LastUpdateTime, after.LastUpdateTime)
		}

		tags := []model.Tag{model.NewTag(model.TagRecipe), model.NewParamTag(model.TagOrigin, "grandma")}
		if err := s.Notes().Update(ctx, model.UpdateNoteRequest{NoteID: n.ID, Tags: &tags}); err != nil {
			t.Fatalf("Update tags: %v", err)
		}
		final, err := s.Notes().Get(ctx, n.ID)
		if err != nil {
			t.Fatalf("Get after tag update: %v", err)
		}
		if len(final.Tags) != 2 {
			t.Fatalf("tag replacement: got %d tags, want 2", len(final.Tags))
		}
		if final.Title != "Foo2" {
			t.Fatalf("tags-only update touched title: %q", final.Title)
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		s := makeStore(t)
		title := "x"
		err := s.Notes().Update(ctx, model.UpdateNoteRequest{NoteID: uuid.New().String(), Title: &title})
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("Update missing: err=%v, want ErrNotFound", err)
		}
	})

	t.Run("ArchiveTerminal", func(t *testing.T) {
		s := makeStore(t)
		n := newNote(owner)
		if err := s.Notes().Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := s.Notes().Archive(ctx, model.ArchiveNoteRequest{NoteID: n.ID}); err != nil {
			t.Fatalf("Archive: %v", err)
		}
		first, err := s.Notes().Get(ctx, n.ID)
		if err != nil {
			t.Fatalf("Get archived: %v", err)
		}
		if first.DeleteTime == nil {
			t.Fatalf("archive did not set delete time")
		}

		if err := s.Notes().Archive(ctx, model.ArchiveNoteRequest{NoteID: n.ID}); !errors.Is(err, model.ErrAlreadyArchived) {
			t.Fatalf("second Archive: err=%v, want ErrAlreadyArchived", err)
		}
		second, err := s.Notes().Get(ctx, n.ID)
		if err != nil {
			t.Fatalf("Get after failed archive: %v", err)
		}
		if second.DeleteTime == nil || *second.DeleteTime != *first.DeleteTime {
			t.Fatalf("failed archive disturbed delete time: %v -> %v", first.DeleteTime, second.DeleteTime)
		}

		if err := s.Notes().Archive(ctx, model.ArchiveNoteRequest{NoteID: uuid.New().String()}); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("Archive missing: err=%v, want ErrNotFound", err)
		}
	})

	t.Run("Lists", func(t *testing.T) {
		s := makeStore(t)
		l := &model.List{ID: uuid.New().String(), Title: "ranked", Owner: owner, Description: "best first"}
		if err := s.Lists().Put(ctx, l); errors.Is(err, model.ErrNotImplemented) {
			t.Skipf("backend does not implement lists: %v", err)
		} else if err != nil {
			t.Fatalf("Put: %v", err)
		}

		n1 := newNote(owner)
		n2 := newNote(owner)
		for _, n := range []*model.Note{n1, n2} {
			if err := s.Notes().Create(ctx, n); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}
		l.NoteIDs = []string{n2.ID, n1.ID}
		if err := s.Lists().Put(ctx, l); err != nil {
			t.Fatalf("Put replace: %v", err)
		}

		byOwner, err := s.Lists().ListByOwner(ctx, owner)
		if err != nil {
			t.Fatalf("ListByOwner: %v", err)
		}
		got, ok := byOwner[l.ID]
		if !ok {
			t.Fatalf("ListByOwner missing list %s", l.ID)
		}
		if len(got.NoteIDs) != 2 || got.NoteIDs[0] != n2.ID || got.NoteIDs[1] != n1.ID {
			t.Fatalf("list order not preserved: %v", got.NoteIDs)
		}

		full, err := s.Lists().GetFull(ctx, l.ID)
		if err != nil {
			t.Fatalf("GetFull: %v", err)
		}
		if len(full.NotesInList) != 2 {
			t.Fatalf("GetFull resolved %d notes, want 2", len(full.NotesInList))
		}
		if full.NotesInList[n1.ID] == nil || full.NotesInList[n1.ID].Title != n1.Title {
			t.Fatalf("GetFull resolved wrong note for %s", n1.ID)
		}

		if _, err := s.Lists().GetFull(ctx, uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("GetFull missing list: err=%v, want ErrNotFound", err)
		}

		// A dangling reference fails the whole call.
		l.NoteIDs = append(l.NoteIDs, uuid.New().String())
		if err := s.Lists().Put(ctx, l); err != nil {
			t.Fatalf("Put dangling: %v", err)
		}
		if _, err := s.Lists().GetFull(ctx, l.ID); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("GetFull with dangling ref: err=%v, want ErrNotFound", err)
		}
	})
}
