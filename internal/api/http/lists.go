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

// ListHandler handles list-related HTTP requests.
type ListHandler struct {
	svc *services.ListService
}

func NewListHandler(svc *services.ListService) *ListHandler { return &ListHandler{svc: svc} }

// GetLists GET /api/owners/{owner}/lists
func (h *ListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]
	if err := validate.NonEmpty("owner", owner); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.svc.GetLists(r.Context(), model.GetListsRequest{Owner: owner})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// GetFullList GET /api/lists/{listId}/full
func (h *ListHandler) GetFullList(w http.ResponseWriter, r *http.Request) {
	listID := mux.Vars(r)["listId"]
	if err := validate.ListID(listID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.svc.GetFullList(r.Context(), model.GetFullListRequest{ListID: listID})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// StoreList PUT /api/lists/{listId}
func (h *ListHandler) StoreList(w http.ResponseWriter, r *http.Request) {
	var l model.List
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	l.ID = mux.Vars(r)["listId"]
	if err := validate.ListID(l.ID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.StoreList(&l); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.svc.StoreList(r.Context(), model.StoreListRequest{List: &l})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}
