package model

import (
	"strconv"
	"time"
)

// Note is a single user-authored record. Timestamps are string-encoded
// integer epoch seconds for serialization simplicity and portability
// across backends. A non-nil DeleteTime means the note is archived;
// archiving is terminal, there is no un-archive.
type Note struct {
	ID             string  `json:"noteId"`
	Title          string  `json:"title"`
	Owner          string  `json:"owner"`
	Description    string  `json:"description"`
	Tags           []Tag   `json:"tags"`
	CreateTime     string  `json:"createTime"`
	LastUpdateTime string  `json:"lastUpdateTime"`
	DeleteTime     *string `json:"deleteTime,omitempty"`
}

// Archived reports whether the note has been soft-deleted.
func (n *Note) Archived() bool { return n.DeleteTime != nil }

// Clone returns an independent copy; mutating it never touches storage.
func (n *Note) Clone() *Note {
	out := *n
	out.Tags = append([]Tag(nil), n.Tags...)
	if n.DeleteTime != nil {
		dt := *n.DeleteTime
		out.DeleteTime = &dt
	}
	return &out
}

// List is an ordered, named collection of note references. It does not own
// the notes; NoteIDs are weak references and their order is the user's
// chosen ranking.
type List struct {
	ID          string   `json:"listId"`
	Title       string   `json:"title"`
	Owner       string   `json:"owner"`
	Description string   `json:"description"`
	NoteIDs     []string `json:"notes"`
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	out := *l
	out.NoteIDs = append([]string(nil), l.NoteIDs...)
	return &out
}

// FullList is a read-only composite of a list and its resolved notes,
// built on demand and never persisted.
type FullList struct {
	List        List             `json:"list"`
	NotesInList map[string]*Note `json:"notesInList"`
}

// Now returns the current time in the stored timestamp encoding.
func Now() string { return strconv.FormatInt(time.Now().Unix(), 10) }

// CreateNoteRequest creates a new note. Tags may be omitted.
type CreateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Tags        []Tag  `json:"tags,omitempty"`
}

type CreateNoteResponse struct {
	NoteID string `json:"noteId"`
}

type GetNoteRequest struct {
	NoteID string `json:"noteId"`
}

type GetNoteResponse struct {
	Note *Note `json:"note"`
}

type GetNotesRequest struct {
	Owner string `json:"owner"`
}

type GetNotesResponse struct {
	Notes map[string]*Note `json:"notes"`
}

// UpdateNoteRequest carries a partial update: nil fields are left
// untouched by the store.
type UpdateNoteRequest struct {
	NoteID      string  `json:"noteId"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Tags        *[]Tag  `json:"tags,omitempty"`
}

type UpdateNoteResponse struct{}

type ArchiveNoteRequest struct {
	NoteID string `json:"noteId"`
}

type ArchiveNoteResponse struct{}

type GetListsRequest struct {
	Owner string `json:"owner"`
}

type GetListsResponse struct {
	Lists map[string]*List `json:"lists"`
}

type GetFullListRequest struct {
	ListID string `json:"listId"`
}

type GetFullListResponse struct {
	FullList *FullList `json:"fullList"`
}

type StoreListRequest struct {
	List *List `json:"list"`
}

type StoreListResponse struct {
	ListID string `json:"listId"`
}
