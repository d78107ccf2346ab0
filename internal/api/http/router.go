package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/notewell/notewell/internal/services"
	"github.com/notewell/notewell/internal/store"
)

// NewRouter wires every handler onto a mux router over the given store.
func NewRouter(s store.Store, checker *store.HealthChecker) *mux.Router {
	noteHandler := NewNoteHandler(services.NewNoteService(s))
	listHandler := NewListHandler(services.NewListService(s))
	healthHandler := NewHealthHandler(checker)

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(muxRouteName))

	r.HandleFunc("/api/notes", noteHandler.CreateNote).Methods(http.MethodPost)
	r.HandleFunc("/api/notes/{noteId}", noteHandler.GetNote).Methods(http.MethodGet)
	r.HandleFunc("/api/notes/{noteId}", noteHandler.UpdateNote).Methods(http.MethodPatch)
	r.HandleFunc("/api/notes/{noteId}/archive", noteHandler.ArchiveNote).Methods(http.MethodPost)
	r.HandleFunc("/api/owners/{owner}/notes", noteHandler.GetNotes).Methods(http.MethodGet)

	r.HandleFunc("/api/owners/{owner}/lists", listHandler.GetLists).Methods(http.MethodGet)
	r.HandleFunc("/api/lists/{listId}/full", listHandler.GetFullList).Methods(http.MethodGet)
	r.HandleFunc("/api/lists/{listId}", listHandler.StoreList).Methods(http.MethodPut)

	r.HandleFunc("/api/health", healthHandler.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func muxRouteName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
