// Package http is the gorilla/mux transport over the services layer.
// Handlers stay thin: decode, validate, call the service, map errors.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/notewell/notewell/internal/api/respond"
	"github.com/notewell/notewell/internal/api/validate"
	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/services"
)

// NoteHandler handles note-related HTTP requests.
type NoteHandler struct {
	svc *services.NoteService
}

func NewNoteHandler(svc *services.NoteService) *NoteHandler { return &NoteHandler{svc: svc} }

// CreateNote POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.CreateNote(req); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.svc.CreateNote(r.Context(), req)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, resp)
}

// GetNote GET /api/notes/{noteId}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["noteId"]
	if err := validate.NoteID(noteID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.svc.GetNote(r.Context(), model.GetNoteRequest{NoteID: noteID})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// GetNotes GET /api/owners/{owner}/notes
func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]
	if err := validate.NonEmpty("owner", owner); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.svc.GetNotes(r.Context(), model.GetNotesRequest{Owner: owner})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// UpdateNote PATCH /api/notes/{noteId}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	// The path parameter is authoritative for which note is updated.
	req.NoteID = mux.Vars(r)["noteId"]
	if err := validate.UpdateNote(req); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.svc.UpdateNote(r.Context(), req)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// ArchiveNote POST /api/notes/{noteId}/archive
func (h *NoteHandler) ArchiveNote(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["noteId"]
	if err := validate.NoteID(noteID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.svc.ArchiveNote(r.Context(), model.ArchiveNoteRequest{NoteID: noteID})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}
