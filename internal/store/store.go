package store

import (
	"context"

	"github.com/notewell/notewell/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (memory, sqlite,
// postgres). Returned values are independent copies of the stored state.
type Store interface {
	Notes() Notes
	Lists() Lists
}

// Notes is the note persistence contract.
//
// Archive enforces the already-archived invariant here, at the store
// layer, so every backend behaves identically and the service stays a
// pure delegator.
type Notes interface {
	// Get returns the note for id. model.ErrNotFound when absent,
	// model.ErrConflict when more than one record matches (a corrupted
	// unique-key invariant).
	Get(ctx context.Context, id string) (*model.Note, error)

	// ListByOwner returns every note, archived included, whose owner
	// matches. Empty map when none do.
	ListByOwner(ctx context.Context, owner string) (map[string]*model.Note, error)

	// Create persists a new note. model.ErrConflict when the id exists.
	Create(ctx context.Context, n *model.Note) error

	// Update merges only the present fields of req into the stored note
	// and refreshes LastUpdateTime. model.ErrNotFound when absent.
	Update(ctx context.Context, req model.UpdateNoteRequest) error

	// Archive sets DeleteTime and refreshes LastUpdateTime.
	// model.ErrNotFound when absent, model.ErrAlreadyArchived when
	// DeleteTime is already set.
	Archive(ctx context.Context, req model.ArchiveNoteRequest) error
}

// Lists is the list persistence contract. Relational backends may return
// model.ErrNotImplemented until a lists schema lands; they must never
// silently no-op.
type Lists interface {
	ListByOwner(ctx context.Context, owner string) (map[string]*model.List, error)

	// GetFull resolves every note the list references. A reference to a
	// missing note fails the whole call with model.ErrNotFound naming
	// the dangling id.
	GetFull(ctx context.Context, id string) (*model.FullList, error)

	// Put upserts the list wholesale, keyed by its id.
	Put(ctx context.Context, l *model.List) error
}
