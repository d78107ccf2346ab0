// Package postgres implements store.Store on PostgreSQL via pgx. Notes map
// to rows with an auto-increment primary key plus the note UUID as the
// unique lookup key; tags are a text[] of serialized tag strings.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/store"
)

// Open creates a connection pool and verifies connectivity. Connections
// are acquired per call and released by pgx, never held across requests.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres DSN is empty", model.ErrUnavailable)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", model.ErrUnavailable, err)
	}
	return pool, nil
}

// NewWithPool constructs a Postgres store over an existing pool.
func NewWithPool(pool *pgxpool.Pool) store.Store { return &pgStore{pool: pool} }

type pgStore struct{ pool *pgxpool.Pool }

func (s *pgStore) Notes() store.Notes { return &notes{pool: s.pool} }
func (s *pgStore) Lists() store.Lists { return &lists{} }

// Ping implements store.Pinger.
func (s *pgStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

type notes struct{ pool *pgxpool.Pool }

// noteRow is the persisted shape of a note. Tags stay serialized here;
// decoding happens at the row->model boundary so a bad tag fails the read
// with the note id attached.
type noteRow struct {
	uuid           string
	title          string
	owner          string
	description    string
	createTime     string
	lastUpdateTime string
	deleteTime     *string
	tags           []string
}

func (r *noteRow) toModel() (*model.Note, error) {
	tags, err := model.DecodeTags(r.tags)
	if err != nil {
		return nil, fmt.Errorf("reading note %s: %w", r.uuid, err)
	}
	return &model.Note{
		ID:             r.uuid,
		Title:          r.title,
		Owner:          r.owner,
		Description:    r.description,
		Tags:           tags,
		CreateTime:     r.createTime,
		LastUpdateTime: r.lastUpdateTime,
		DeleteTime:     r.deleteTime,
	}, nil
}

const noteColumns = `uuid, title, owner, description, create_time, last_update_time, delete_time, tags`

func (n *notes) Get(ctx context.Context, id string) (*model.Note, error) {
	rows, err := n.pool.Query(ctx, `SELECT `+noteColumns+` FROM notes WHERE uuid=$1`, id)
	if err != nil {
		return nil, fmt.Errorf("looking up note %s: %w", id, err)
	}
	defer rows.Close()

	var matches []*noteRow
	for rows.Next() {
		var r noteRow
		if err := rows.Scan(&r.uuid, &r.title, &r.owner, &r.description, &r.createTime, &r.lastUpdateTime, &r.deleteTime, &r.tags); err != nil {
			return nil, fmt.Errorf("scanning note %s: %w", id, err)
		}
		matches = append(matches, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("looking up note %s: %w", id, err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: note %s", model.ErrNotFound, id)
	case 1:
		return matches[0].toModel()
	default:
		// The uuid column carries a unique constraint; more than one row
		// means the invariant is broken and the read cannot be trusted.
		return nil, fmt.Errorf("%w: %d notes found for uuid %s", model.ErrConflict, len(matches), id)
	}
}

func (n *notes) ListByOwner(ctx context.Context, owner string) (map[string]*model.Note, error) {
	rows, err := n.pool.Query(ctx, `SELECT `+noteColumns+` FROM notes WHERE owner=$1`, owner)
	if err != nil {
		return nil, fmt.Errorf("listing notes for owner %s: %w", owner, err)
	}
	defer rows.Close()

	out := make(map[string]*model.Note)
	for rows.Next() {
		var r noteRow
		if err := rows.Scan(&r.uuid, &r.title, &r.owner, &r.description, &r.createTime, &r.lastUpdateTime, &r.deleteTime, &r.tags); err != nil {
			return nil, fmt.Errorf("listing notes for owner %s: %w", owner, err)
		}
		m, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing notes for owner %s: %w", owner, err)
	}
	return out, nil
}

func (n *notes) Create(ctx context.Context, m *model.Note) error {
	tags, err := model.EncodeTags(m.Tags)
	if err != nil {
		return fmt.Errorf("creating note %s: %w", m.ID, err)
	}
	ct, err := n.pool.Exec(ctx, `
        INSERT INTO notes (uuid, title, owner, description, create_time, last_update_time, delete_time, tags)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (uuid) DO NOTHING
    `, m.ID, m.Title, m.Owner, m.Description, m.CreateTime, m.LastUpdateTime, m.DeleteTime, tags)
	if err != nil {
		return fmt.Errorf("creating note %s: %w", m.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: note %s already exists", model.ErrConflict, m.ID)
	}
	return nil
}

// Update issues one UPDATE naming only the changed columns, the changeset
// approach: unset request fields never appear in the SQL, so they cannot
// clobber concurrent writes to other columns.
func (n *notes) Update(ctx context.Context, req model.UpdateNoteRequest) error {
	set := []string{"last_update_time=$1"}
	args := []interface{}{model.Now()}

	if req.Title != nil {
		args = append(args, *req.Title)
		set = append(set, fmt.Sprintf("title=$%d", len(args)))
	}
	if req.Description != nil {
		args = append(args, *req.Description)
		set = append(set, fmt.Sprintf("description=$%d", len(args)))
	}
	if req.Tags != nil {
		tags, err := model.EncodeTags(*req.Tags)
		if err != nil {
			return fmt.Errorf("updating note %s: %w", req.NoteID, err)
		}
		args = append(args, tags)
		set = append(set, fmt.Sprintf("tags=$%d", len(args)))
	}

	args = append(args, req.NoteID)
	q := fmt.Sprintf("UPDATE notes SET %s WHERE uuid=$%d", strings.Join(set, ", "), len(args))
	ct, err := n.pool.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("updating note %s: %w", req.NoteID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: note %s", model.ErrNotFound, req.NoteID)
	}
	return nil
}

func (n *notes) Archive(ctx context.Context, req model.ArchiveNoteRequest) error {
	now := model.Now()
	ct, err := n.pool.Exec(ctx, `
        UPDATE notes SET delete_time=$1, last_update_time=$1
        WHERE uuid=$2 AND delete_time IS NULL
    `, now, req.NoteID)
	if err != nil {
		return fmt.Errorf("archiving note %s: %w", req.NoteID, err)
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	// No row changed: either the note is gone or it was already archived.
	var exists bool
	if err := n.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM notes WHERE uuid=$1)`, req.NoteID).Scan(&exists); err != nil {
		return fmt.Errorf("archiving note %s: %w", req.NoteID, err)
	}
	if !exists {
		return fmt.Errorf("%w: note %s", model.ErrNotFound, req.NoteID)
	}
	return fmt.Errorf("%w: note %s", model.ErrAlreadyArchived, req.NoteID)
}

// lists is a clear extension point: no lists schema exists on this backend
// yet, and silently no-oping would hide that from callers.
type lists struct{}

func (*lists) ListByOwner(ctx context.Context, owner string) (map[string]*model.List, error) {
	return nil, fmt.Errorf("%w: lists on the postgres backend", model.ErrNotImplemented)
}

func (*lists) GetFull(ctx context.Context, id string) (*model.FullList, error) {
	return nil, fmt.Errorf("%w: lists on the postgres backend", model.ErrNotImplemented)
}

func (*lists) Put(ctx context.Context, l *model.List) error {
	return fmt.Errorf("%w: lists on the postgres backend", model.ErrNotImplemented)
}
