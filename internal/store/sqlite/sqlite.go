// Package sqlite implements store.Store on a local SQLite file via the
// modernc driver. It carries the same notes contract as the postgres
// backend and additionally persists lists, which makes it the default
// driver for single-machine use.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/store"
)

// NewWithDB wires a store over an existing connection (used by the
// factory and by tests running against in-memory databases).
func NewWithDB(db *sql.DB) store.Store { return &sqlStore{db: db} }

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Notes() store.Notes { return &notes{db: s.db} }
func (s *sqlStore) Lists() store.Lists { return &lists{db: s.db} }

// Ping implements store.Pinger.
func (s *sqlStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

type notes struct{ db *sql.DB }

// SQLite has no array column type, so the serialized tag strings are
// stored as one JSON array in a TEXT column.
func encodeTagColumn(tags []model.Tag) (string, error) {
	serialized, err := model.EncodeTags(tags)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(serialized)
	if err != nil {
		return "", fmt.Errorf("%w: encoding tag column: %v", model.ErrValidation, err)
	}
	return string(b), nil
}

func decodeTagColumn(noteID, col string) ([]model.Tag, error) {
	var serialized []string
	if err := json.Unmarshal([]byte(col), &serialized); err != nil {
		return nil, fmt.Errorf("%w: reading note %s: bad tag column: %v", model.ErrValidation, noteID, err)
	}
	tags, err := model.DecodeTags(serialized)
	if err != nil {
		return nil, fmt.Errorf("reading note %s: %w", noteID, err)
	}
	return tags, nil
}

const noteColumns = `Uuid, Title, Owner, Description, CreateTime, LastUpdateTime, DeleteTime, Tags`

func scanNote(rows *sql.Rows) (*model.Note, error) {
	var n model.Note
	var tagCol string
	if err := rows.Scan(&n.ID, &n.Title, &n.Owner, &n.Description, &n.CreateTime, &n.LastUpdateTime, &n.DeleteTime, &tagCol); err != nil {
		return nil, err
	}
	tags, err := decodeTagColumn(n.ID, tagCol)
	if err != nil {
		return nil, err
	}
	n.Tags = tags
	return &n, nil
}

func (r *notes) Get(ctx context.Context, id string) (*model.Note, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+noteColumns+` FROM Notes WHERE Uuid = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("looking up note %s: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	var matches []*model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("looking up note %s: %w", id, err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: note %s", model.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %d notes found for uuid %s", model.ErrConflict, len(matches), id)
	}
}

func (r *notes) ListByOwner(ctx context.Context, owner string) (map[string]*model.Note, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+noteColumns+` FROM Notes WHERE Owner = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("listing notes for owner %s: %w", owner, err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]*model.Note)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out[n.ID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing notes for owner %s: %w", owner, err)
	}
	return out, nil
}

func (r *notes) Create(ctx context.Context, n *model.Note) error {
	tagCol, err := encodeTagColumn(n.Tags)
	if err != nil {
		return fmt.Errorf("creating note %s: %w", n.ID, err)
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO Notes (Uuid, Title, Owner, Description, CreateTime, LastUpdateTime, DeleteTime, Tags)
        VALUES (?,?,?,?,?,?,?,?)
    `, n.ID, n.Title, n.Owner, n.Description, n.CreateTime, n.LastUpdateTime, n.DeleteTime, tagCol)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: note %s already exists", model.ErrConflict, n.ID)
		}
		return fmt.Errorf("creating note %s: %w", n.ID, err)
	}
	return nil
}

func (r *notes) Update(ctx context.Context, req model.UpdateNoteRequest) error {
	set := []string{"LastUpdateTime = ?"}
	args := []interface{}{model.Now()}

	if req.Title != nil {
		set = append(set, "Title = ?")
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		set = append(set, "Description = ?")
		args = append(args, *req.Description)
	}
	if req.Tags != nil {
		tagCol, err := encodeTagColumn(*req.Tags)
		if err != nil {
			return fmt.Errorf("updating note %s: %w", req.NoteID, err)
		}
		set = append(set, "Tags = ?")
		args = append(args, tagCol)
	}

	args = append(args, req.NoteID)
	res, err := r.db.ExecContext(ctx, `UPDATE Notes SET `+strings.Join(set, ", ")+` WHERE Uuid = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating note %s: %w", req.NoteID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating note %s: %w", req.NoteID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: note %s", model.ErrNotFound, req.NoteID)
	}
	return nil
}

func (r *notes) Archive(ctx context.Context, req model.ArchiveNoteRequest) error {
	now := model.Now()
	res, err := r.db.ExecContext(ctx, `
        UPDATE Notes SET DeleteTime = ?, LastUpdateTime = ?
        WHERE Uuid = ? AND DeleteTime IS NULL
    `, now, now, req.NoteID)
	if err != nil {
		return fmt.Errorf("archiving note %s: %w", req.NoteID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archiving note %s: %w", req.NoteID, err)
	}
	if affected == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM Notes WHERE Uuid = ?)`, req.NoteID).Scan(&exists); err != nil {
		return fmt.Errorf("archiving note %s: %w", req.NoteID, err)
	}
	if !exists {
		return fmt.Errorf("%w: note %s", model.ErrNotFound, req.NoteID)
	}
	return fmt.Errorf("%w: note %s", model.ErrAlreadyArchived, req.NoteID)
}

type lists struct{ db *sql.DB }

func (r *lists) ListByOwner(ctx context.Context, owner string) (map[string]*model.List, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT Uuid, Title, Owner, Description, NoteIds FROM Lists WHERE Owner = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("listing lists for owner %s: %w", owner, err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]*model.List)
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		out[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing lists for owner %s: %w", owner, err)
	}
	return out, nil
}

func scanList(rows *sql.Rows) (*model.List, error) {
	var l model.List
	var idsCol string
	if err := rows.Scan(&l.ID, &l.Title, &l.Owner, &l.Description, &idsCol); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(idsCol), &l.NoteIDs); err != nil {
		return nil, fmt.Errorf("%w: reading list %s: bad note id column: %v", model.ErrValidation, l.ID, err)
	}
	return &l, nil
}

func (r *lists) GetFull(ctx context.Context, id string) (*model.FullList, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT Uuid, Title, Owner, Description, NoteIds FROM Lists WHERE Uuid = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("looking up list %s: %w", id, err)
	}
	var l *model.List
	for rows.Next() {
		if l, err = scanList(rows); err != nil {
			_ = rows.Close()
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("looking up list %s: %w", id, err)
	}
	_ = rows.Close()
	if l == nil {
		return nil, fmt.Errorf("%w: list %s", model.ErrNotFound, id)
	}

	// A dangling reference fails the whole call.
	noteRepo := &notes{db: r.db}
	resolved := make(map[string]*model.Note, len(l.NoteIDs))
	for _, noteID := range l.NoteIDs {
		n, err := noteRepo.Get(ctx, noteID)
		if err != nil {
			return nil, fmt.Errorf("resolving note %s in list %s: %w", noteID, id, err)
		}
		resolved[noteID] = n
	}
	return &model.FullList{List: *l, NotesInList: resolved}, nil
}

func (r *lists) Put(ctx context.Context, l *model.List) error {
	idsCol, err := json.Marshal(l.NoteIDs)
	if err != nil {
		return fmt.Errorf("%w: storing list %s: %v", model.ErrValidation, l.ID, err)
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO Lists (Uuid, Title, Owner, Description, NoteIds)
        VALUES (?,?,?,?,?)
        ON CONFLICT(Uuid) DO UPDATE SET
            Title = excluded.Title,
            Owner = excluded.Owner,
            Description = excluded.Description,
            NoteIds = excluded.NoteIds
    `, l.ID, l.Title, l.Owner, l.Description, string(idsCol))
	if err != nil {
		return fmt.Errorf("storing list %s: %w", l.ID, err)
	}
	return nil
}
