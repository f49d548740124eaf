// Package stubapi is a small local imitation of the two public demo APIs, so
// the pipeline can be exercised without a network. It serves the cat-image
// and museum-object shapes plus a deliberately malformed route for showing
// decode failures.
package stubapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StubAPI is an HTTP server returning canned JSON payloads.
type StubAPI struct {
	cfg    Config
	router chi.Router
}

// NewStubAPI creates a stub API server instance.
func NewStubAPI(cfg Config) *StubAPI {
	s := &StubAPI{cfg: cfg, router: chi.NewRouter()}
	s.routes()
	return s
}

func (s *StubAPI) routes() {
	r := s.router

	// Cat-image catalog shape: array with one object.
	r.Get("/v1/images/search", func(w http.ResponseWriter, req *http.Request) {
		writeBody(w, http.StatusOK, catImageJSON)
	})

	// Museum collection shape: one object per ID.
	r.Get("/public/collection/v1/objects/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeBody(w, http.StatusOK,
			fmt.Sprintf(museumObjectJSON, chi.URLParam(req, "id")))
	})

	// Truncated JSON, for demonstrating decode failures.
	r.Get("/broken", func(w http.ResponseWriter, req *http.Request) {
		writeBody(w, http.StatusOK, `{"url": "http://x"`)
	})

	// Plain 500, for demonstrating transport failures.
	r.Get("/error", func(w http.ResponseWriter, req *http.Request) {
		writeBody(w, http.StatusInternalServerError, `{"message":"boom"}`)
	})
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// ServeHTTP implements http.Handler so tests can drive the stub directly.
func (s *StubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start starts the stub API server.
func (s *StubAPI) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	fmt.Printf("Stub API starting on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s)
}

const catImageJSON = `[{"id":"stub-cat","url":"https://localhost/static/cat.jpg","width":640,"height":480,"breeds":[{"name":"Aegean","description":"Affectionate and social, the Aegean gets along well with people."}]}]`

const museumObjectJSON = `{"objectID":%s,"title":"Wheat Field with Cypresses","artistDisplayName":"Vincent van Gogh","primaryImage":"https://localhost/static/wheat-field.jpg","department":"European Paintings"}`
