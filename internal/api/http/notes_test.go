package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/store/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(memory.New(), nil))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestNotesEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	// Create
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/notes", model.CreateNoteRequest{
		Title: "Foo", Description: "Bar", Owner: "alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[model.CreateNoteResponse](t, resp)
	require.NotEmpty(t, created.NoteID)

	// Get
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/notes/"+created.NoteID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[model.GetNoteResponse](t, resp)
	require.Equal(t, "Foo", got.Note.Title)
	require.Empty(t, got.Note.Tags)
	require.Nil(t, got.Note.DeleteTime)

	// Partial update
	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/notes/"+created.NoteID, map[string]string{"title": "Foo2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/notes/"+created.NoteID, nil)
	got = decode[model.GetNoteResponse](t, resp)
	require.Equal(t, "Foo2", got.Note.Title)
	require.Equal(t, "Bar", got.Note.Description)

	// Archive, then archive again
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/notes/"+created.NoteID+"/archive", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/notes/"+created.NoteID, nil)
	got = decode[model.GetNoteResponse](t, resp)
	require.NotNil(t, got.Note.DeleteTime)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/notes/"+created.NoteID+"/archive", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetNotes_EmptyOwner(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/owners/bob/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[model.GetNotesResponse](t, resp)
	require.Empty(t, got.Notes)
}

func TestCreateNote_Validation(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/notes", model.CreateNoteRequest{Description: "no title", Owner: "alice"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/notes", model.CreateNoteRequest{
		Title: "t", Owner: "alice",
		Tags: []model.Tag{{Kind: "sandwich"}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetNote_NotFoundAndBadID(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/notes/2f0c6bf4-9da0-4a3c-8e1f-000000000000", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/notes/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestListsEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/notes", model.CreateNoteRequest{Title: "a", Owner: "alice"})
	n1 := decode[model.CreateNoteResponse](t, resp)
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/notes", model.CreateNoteRequest{Title: "b", Owner: "alice"})
	n2 := decode[model.CreateNoteResponse](t, resp)

	listID := "7b9b3a63-4b0a-45da-90bc-44f0b10960a1"
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/lists/"+listID, model.List{
		Title: "ranked", Owner: "alice", Description: "best first",
		NoteIDs: []string{n2.NoteID, n1.NoteID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stored := decode[model.StoreListResponse](t, resp)
	require.Equal(t, listID, stored.ListID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/owners/alice/lists", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lists := decode[model.GetListsResponse](t, resp)
	require.Contains(t, lists.Lists, listID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/lists/"+listID+"/full", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	full := decode[model.GetFullListResponse](t, resp)
	require.Equal(t, []string{n2.NoteID, n1.NoteID}, full.FullList.List.NoteIDs)
	require.Len(t, full.FullList.NotesInList, 2)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
