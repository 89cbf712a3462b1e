package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every endpoint. When a static directory is
// configured it is served for any GET that no API route claims.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	r.HandleFunc("/posts", h.ListFeed).Methods(http.MethodGet)
	r.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)

	r.HandleFunc("/hypes", h.ToggleHype).Methods(http.MethodPost)

	if h.Cfg != nil && h.Cfg.StaticDir != "" {
		r.PathPrefix("/").
			Handler(http.FileServer(http.Dir(h.Cfg.StaticDir))).
			Methods(http.MethodGet, http.MethodHead)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, msgNotFound, http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, msgMethodNotAllowed, http.StatusMethodNotAllowed)
	})

	return r
}
