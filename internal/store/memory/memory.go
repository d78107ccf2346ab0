// Package memory provides an in-process store.Store backed by two
// mutex-guarded maps. Owner queries are full scans, which is fine for the
// volumes a personal notes service sees.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/store"
)

// New returns an empty in-memory store.
func New() store.Store {
	s := &memStore{
		notes: notesRepo{byID: make(map[string]*model.Note)},
		lists: listsRepo{byID: make(map[string]*model.List)},
	}
	s.lists.notes = &s.notes
	return s
}

type memStore struct {
	notes notesRepo
	lists listsRepo
}

func (s *memStore) Notes() store.Notes { return &s.notes }
func (s *memStore) Lists() store.Lists { return &s.lists }

// notesRepo guards its map with a single RWMutex. Update and Archive are
// read-modify-write; the write lock is held across both steps so
// concurrent callers cannot lose updates.
type notesRepo struct {
	mu   sync.RWMutex
	byID map[string]*model.Note
}

func (r *notesRepo) Get(_ context.Context, id string) (*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: note %s", model.ErrNotFound, id)
	}
	return n.Clone(), nil
}

func (r *notesRepo) ListByOwner(_ context.Context, owner string) (map[string]*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*model.Note)
	for id, n := range r.byID {
		if n.Owner == owner {
			out[id] = n.Clone()
		}
	}
	return out, nil
}

func (r *notesRepo) Create(_ context.Context, n *model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[n.ID]; ok {
		return fmt.Errorf("%w: note %s already exists", model.ErrConflict, n.ID)
	}
	r.byID[n.ID] = n.Clone()
	return nil
}

func (r *notesRepo) Update(_ context.Context, req model.UpdateNoteRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[req.NoteID]
	if !ok {
		return fmt.Errorf("%w: note %s", model.ErrNotFound, req.NoteID)
	}
	if req.Tags != nil {
		if err := model.ValidateTagSet(*req.Tags); err != nil {
			return fmt.Errorf("updating note %s: %w", req.NoteID, err)
		}
	}
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Description != nil {
		n.Description = *req.Description
	}
	if req.Tags != nil {
		n.Tags = append([]model.Tag(nil), *req.Tags...)
	}
	n.LastUpdateTime = model.Now()
	return nil
}

func (r *notesRepo) Archive(_ context.Context, req model.ArchiveNoteRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[req.NoteID]
	if !ok {
		return fmt.Errorf("%w: note %s", model.ErrNotFound, req.NoteID)
	}
	if n.Archived() {
		return fmt.Errorf("%w: note %s", model.ErrAlreadyArchived, req.NoteID)
	}
	now := model.Now()
	n.DeleteTime = &now
	n.LastUpdateTime = now
	return nil
}

type listsRepo struct {
	mu    sync.RWMutex
	byID  map[string]*model.List
	notes *notesRepo
}

func (r *listsRepo) ListByOwner(_ context.Context, owner string) (map[string]*model.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*model.List)
	for id, l := range r.byID {
		if l.Owner == owner {
			out[id] = l.Clone()
		}
	}
	return out, nil
}

func (r *listsRepo) GetFull(ctx context.Context, id string) (*model.FullList, error) {
	r.mu.RLock()
	l, ok := r.byID[id]
	if !ok {
		r.mu.RUnlock()
		return nil, fmt.Errorf("%w: list %s", model.ErrNotFound, id)
	}
	l = l.Clone()
	r.mu.RUnlock()

	// Dangling references fail the whole call rather than thinning the
	// list silently.
	resolved := make(map[string]*model.Note, len(l.NoteIDs))
	for _, noteID := range l.NoteIDs {
		n, err := r.notes.Get(ctx, noteID)
		if err != nil {
			return nil, fmt.Errorf("resolving note %s in list %s: %w", noteID, id, err)
		}
		resolved[noteID] = n
	}
	return &model.FullList{List: *l, NotesInList: resolved}, nil
}

func (r *listsRepo) Put(_ context.Context, l *model.List) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[l.ID] = l.Clone()
	return nil
}
