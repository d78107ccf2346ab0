package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/store"
	"github.com/notewell/notewell/internal/store/memory"
)

// --- Fakes ---

// failStore rejects every note write, for exercising error propagation.
type failStore struct {
	err error
}

func (f *failStore) Notes() store.Notes { return &failNotes{err: f.err} }
func (f *failStore) Lists() store.Lists { return &failLists{err: f.err} }

type failNotes struct{ err error }

func (f *failNotes) Get(context.Context, string) (*model.Note, error) { return nil, f.err }
func (f *failNotes) ListByOwner(context.Context, string) (map[string]*model.Note, error) {
	return nil, f.err
}
func (f *failNotes) Create(context.Context, *model.Note) error              { return f.err }
func (f *failNotes) Update(context.Context, model.UpdateNoteRequest) error  { return f.err }
func (f *failNotes) Archive(context.Context, model.ArchiveNoteRequest) error { return f.err }

type failLists struct{ err error }

func (f *failLists) ListByOwner(context.Context, string) (map[string]*model.List, error) {
	return nil, f.err
}
func (f *failLists) GetFull(context.Context, string) (*model.FullList, error) { return nil, f.err }
func (f *failLists) Put(context.Context, *model.List) error                   { return f.err }

// --- NoteService ---

func TestCreateNote_StampsIdentityAndTimestamps(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(memory.New())

	resp, err := svc.CreateNote(ctx, model.CreateNoteRequest{Title: "Foo", Description: "Bar", Owner: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.NoteID)

	got, err := svc.GetNote(ctx, model.GetNoteRequest{NoteID: resp.NoteID})
	require.NoError(t, err)
	require.Equal(t, "Foo", got.Note.Title)
	require.Equal(t, "Bar", got.Note.Description)
	require.Equal(t, "alice", got.Note.Owner)
	require.Equal(t, got.Note.CreateTime, got.Note.LastUpdateTime)
	require.NotNil(t, got.Note.Tags, "omitted tags default to an empty set")
	require.Empty(t, got.Note.Tags)
	require.Nil(t, got.Note.DeleteTime)
}

func TestCreateNote_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(memory.New())

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		resp, err := svc.CreateNote(ctx, model.CreateNoteRequest{Title: "t", Owner: "alice"})
		require.NoError(t, err)
		require.False(t, seen[resp.NoteID], "id %s assigned twice", resp.NoteID)
		seen[resp.NoteID] = true
	}
}

func TestCreateNote_RejectsDuplicateTags(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(memory.New())

	_, err := svc.CreateNote(ctx, model.CreateNoteRequest{
		Title: "t",
		Owner: "alice",
		Tags:  []model.Tag{model.NewTag(model.TagBook), model.NewTag(model.TagBook)},
	})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestCreateNote_PropagatesStoreError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	svc := NewNoteService(&failStore{err: boom})

	_, err := svc.CreateNote(ctx, model.CreateNoteRequest{Title: "t", Owner: "alice"})
	require.ErrorIs(t, err, boom)
}

// The end-to-end lifecycle: create, partial update, archive, archive again.
func TestNoteLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(memory.New())

	created, err := svc.CreateNote(ctx, model.CreateNoteRequest{Title: "Foo", Description: "Bar", Owner: "alice"})
	require.NoError(t, err)

	title := "Foo2"
	_, err = svc.UpdateNote(ctx, model.UpdateNoteRequest{NoteID: created.NoteID, Title: &title})
	require.NoError(t, err)

	got, err := svc.GetNote(ctx, model.GetNoteRequest{NoteID: created.NoteID})
	require.NoError(t, err)
	require.Equal(t, "Foo2", got.Note.Title)
	require.Equal(t, "Bar", got.Note.Description)

	_, err = svc.ArchiveNote(ctx, model.ArchiveNoteRequest{NoteID: created.NoteID})
	require.NoError(t, err)

	got, err = svc.GetNote(ctx, model.GetNoteRequest{NoteID: created.NoteID})
	require.NoError(t, err)
	require.NotNil(t, got.Note.DeleteTime)

	_, err = svc.ArchiveNote(ctx, model.ArchiveNoteRequest{NoteID: created.NoteID})
	require.ErrorIs(t, err, model.ErrAlreadyArchived)
}

func TestGetNotes_EmptyOwnerIsNotAnError(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(memory.New())

	resp, err := svc.GetNotes(ctx, model.GetNotesRequest{Owner: "bob"})
	require.NoError(t, err)
	require.Empty(t, resp.Notes)
}

// --- ListService ---

func TestStoreList_AssignsIDWhenMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewListService(memory.New())

	resp, err := svc.StoreList(ctx, model.StoreListRequest{
		List: &model.List{Title: "ranked", Owner: "alice"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ListID)

	lists, err := svc.GetLists(ctx, model.GetListsRequest{Owner: "alice"})
	require.NoError(t, err)
	require.Contains(t, lists.Lists, resp.ListID)
}

func TestStoreList_NilListRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewListService(memory.New())

	_, err := svc.StoreList(ctx, model.StoreListRequest{})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestGetFullList_ResolvesReferencedNotes(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	noteSvc := NewNoteService(s)
	listSvc := NewListService(s)

	n1, err := noteSvc.CreateNote(ctx, model.CreateNoteRequest{Title: "a", Owner: "alice"})
	require.NoError(t, err)
	n2, err := noteSvc.CreateNote(ctx, model.CreateNoteRequest{Title: "b", Owner: "alice"})
	require.NoError(t, err)

	stored, err := listSvc.StoreList(ctx, model.StoreListRequest{
		List: &model.List{Title: "ranked", Owner: "alice", NoteIDs: []string{n2.NoteID, n1.NoteID}},
	})
	require.NoError(t, err)

	full, err := listSvc.GetFullList(ctx, model.GetFullListRequest{ListID: stored.ListID})
	require.NoError(t, err)
	require.Equal(t, []string{n2.NoteID, n1.NoteID}, full.FullList.List.NoteIDs)
	require.Len(t, full.FullList.NotesInList, 2)
	require.Equal(t, "a", full.FullList.NotesInList[n1.NoteID].Title)
}

func TestListService_PropagatesNotImplemented(t *testing.T) {
	ctx := context.Background()
	svc := NewListService(&failStore{err: model.ErrNotImplemented})

	_, err := svc.GetLists(ctx, model.GetListsRequest{Owner: "alice"})
	require.ErrorIs(t, err, model.ErrNotImplemented)
}
