package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/mirelk/jsonlens/docs/swagger" // swagger spec registration
	"github.com/mirelk/jsonlens/internal/catalog"
	"github.com/mirelk/jsonlens/internal/logging"
	"github.com/mirelk/jsonlens/internal/pipeline"
	"github.com/mirelk/jsonlens/internal/render"
	"github.com/mirelk/jsonlens/internal/transport"

	_ "modernc.org/sqlite" // SQLite driver
)

// Server is the surrounding document's web surface: the HTTP + WebSocket API
// over one pipeline document plus the preset catalog.
type Server struct {
	cfg       Config
	runner    *pipeline.Runner
	catalog   *catalog.Catalog
	router    chi.Router
	upgrader  websocket.Upgrader
	logger    logging.Logger
	catalogDB *sql.DB
	tr        transport.Transport
}

// NewServer creates a Server with its own document, transport and catalog.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	// Make sure storage root exists
	storageRoot, err := expandPath(cfg.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("expanding storage root path: %w", err)
	}
	cfg.StorageRoot = storageRoot
	if err := os.MkdirAll(cfg.StorageRoot, 0755); err != nil {
		logger.Warn("creating storage root directory", logging.Field{Key: "path", Value: cfg.StorageRoot}, logging.Field{Key: "error", Value: err.Error()})
	}

	// Set up the preset catalog
	db, err := sql.Open("sqlite", filepath.Join(cfg.StorageRoot, "catalog.db"))
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	cat, err := catalog.NewCatalog(db, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog: %w", err)
	}

	tr := cfg.Transport
	if tr == nil {
		tr, err = transport.New(transport.Config{Backend: cfg.TransportBackend}, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("creating transport: %w", err)
		}
	}

	// The document starts on the first seeded preset.
	seed := catalog.DefaultPresets()[0]
	doc := pipeline.NewDocument(seed.Spec, seed.View, seed.Profile)
	runner := pipeline.NewRunner(doc, tr, nil, render.NewRenderer(), logger)

	r := chi.NewRouter()
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		catalog: cat,
		router:  r,
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
		catalogDB: db,
		tr:        tr,
	}

	s.routes()
	return s, nil
}

// Runner returns the underlying pipeline runner for advanced use (tests, etc.).
func (s *Server) Runner() *pipeline.Runner {
	return s.runner
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/spec", s.optionsHandler("GET, PUT"))
	r.Options("/run", s.optionsHandler("POST"))
	r.Options("/artifact", s.optionsHandler("GET"))
	r.Options("/presets", s.optionsHandler("GET, POST"))
	r.Options("/presets/{slug}", s.optionsHandler("DELETE"))
	r.Options("/presets/{slug}/load", s.optionsHandler("POST"))
	r.Options("/ws/artifact", s.optionsHandler("GET"))

	// The document page
	r.Get("/", s.handlePage)

	// Parameter store
	r.Get("/spec", s.handleGetSpec)
	r.Put("/spec", s.handleUpdateSpec)

	// Pipeline
	r.Post("/run", s.handleRun)
	r.Get("/artifact", s.handleGetArtifact)

	// Presets
	r.Get("/presets", s.handleListPresets)
	r.Post("/presets", s.handleSavePreset)
	r.Delete("/presets/{slug}", s.handleDeletePreset)
	r.Post("/presets/{slug}/load", s.handleLoadPreset)

	// WebSocket for artifact updates
	r.Get("/ws/artifact", s.handleArtifactWS)

	// Interactive API docs
	r.Get("/swagger/*", httpSwagger.Handler())
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the transport and underlying resources.
func (s *Server) Close() {
	if s.catalogDB != nil {
		s.catalogDB.Close()
	}
	if s.tr != nil {
		s.tr.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) documentState() DocumentState {
	doc := s.runner.Document()
	spec, gen := doc.Store().Snapshot()
	view, profile := doc.View()
	return DocumentState{
		Spec:       spec,
		View:       string(view),
		Profile:    profile,
		Generation: gen,
	}
}

// --- HTTP handlers ---

// Parameter store

// handleGetSpec godoc
// @Summary  Current document state
// @Produce  json
// @Success  200 {object} server.DocumentState
// @Router   /spec [get]
func (s *Server) handleGetSpec(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.documentState())
}

// handleUpdateSpec godoc
// @Summary  Edit the request parameters and re-run the pipeline
// @Accept   json
// @Produce  json
// @Param    body body server.UpdateSpecRequest true "new parameters"
// @Success  200 {object} server.DocumentState
// @Failure  400 {object} server.ErrorResponse
// @Router   /spec [put]
func (s *Server) handleUpdateSpec(w http.ResponseWriter, r *http.Request) {
	var body UpdateSpecRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	doc := s.runner.Document()
	view, profile := doc.View()
	if body.View != "" || body.Profile != "" {
		if body.Profile != "" {
			profile = body.Profile
		}
		doc.SetView(viewOrDefault(body.View, view), profile)
	}
	gen := doc.Store().Update(body.spec())

	s.logger.Info("updated request spec", logging.Field{Key: "generation", Value: gen})
	go s.runner.Run(context.Background())

	writeJSON(w, http.StatusOK, s.documentState())
}

// Pipeline

// handleRun godoc
// @Summary  Re-run the pipeline with the current parameters
// @Produce  json
// @Success  202 {object} server.DocumentState
// @Router   /run [post]
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	go s.runner.Run(context.Background())
	s.logger.Info("pipeline run requested")
	writeJSON(w, http.StatusAccepted, s.documentState())
}

// handleGetArtifact godoc
// @Summary  Current display artifact
// @Produce  json
// @Success  200 {object} render.Artifact
// @Failure  404 {object} server.ErrorResponse
// @Router   /artifact [get]
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	art := s.runner.Document().Artifact()
	if art == nil {
		writeError(w, http.StatusNotFound, "no artifact yet")
		return
	}
	writeJSON(w, http.StatusOK, art)
}

// Presets

// handleListPresets godoc
// @Summary  List saved endpoint presets
// @Produce  json
// @Success  200 {array} catalog.Preset
// @Router   /presets [get]
func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	ps, err := s.catalog.List(r.Context())
	if err != nil {
		s.logger.Warn("listing presets", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("listed presets", logging.Field{Key: "count", Value: len(ps)})
	writeJSON(w, http.StatusOK, ps)
}

// handleSavePreset godoc
// @Summary  Save an endpoint preset
// @Accept   json
// @Produce  json
// @Param    body body server.SavePresetRequest true "preset"
// @Success  201 {object} catalog.Preset
// @Failure  400 {object} server.ErrorResponse
// @Router   /presets [post]
func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	var body SavePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("decoding save preset body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	p, err := s.catalog.Save(r.Context(), catalog.Preset{
		Slug:    body.Slug,
		Name:    body.Name,
		Spec:    body.spec(),
		Profile: body.Profile,
		View:    viewOrDefault(body.View, render.ViewPretty),
	})
	if err != nil {
		s.logger.Warn("saving preset", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("saved preset", logging.Field{Key: "slug", Value: p.Slug})
	writeJSON(w, http.StatusCreated, p)
}

// handleDeletePreset godoc
// @Summary  Delete an endpoint preset
// @Produce  json
// @Param    slug path string true "preset slug"
// @Success  204
// @Failure  404 {object} server.ErrorResponse
// @Router   /presets/{slug} [delete]
func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := s.catalog.Delete(r.Context(), slug); err != nil {
		if errors.Is(err, catalog.ErrPresetNotFound) {
			writeError(w, http.StatusNotFound, "preset not found")
			return
		}
		s.logger.Warn("deleting preset", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("deleted preset", logging.Field{Key: "slug", Value: slug})
	writeJSON(w, http.StatusNoContent, nil)
}

// handleLoadPreset godoc
// @Summary  Load a preset into the document and re-run the pipeline
// @Produce  json
// @Param    slug path string true "preset slug"
// @Success  200 {object} server.DocumentState
// @Failure  404 {object} server.ErrorResponse
// @Router   /presets/{slug}/load [post]
func (s *Server) handleLoadPreset(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, err := s.catalog.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrPresetNotFound) {
			writeError(w, http.StatusNotFound, "preset not found")
			return
		}
		s.logger.Warn("loading preset", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	doc := s.runner.Document()
	doc.SetView(p.View, p.Profile)
	gen := doc.Store().Update(p.Spec)

	s.logger.Info("loaded preset", logging.Field{Key: "slug", Value: p.Slug}, logging.Field{Key: "generation", Value: gen})
	go s.runner.Run(context.Background())

	writeJSON(w, http.StatusOK, s.documentState())
}

// WebSockets

// handleArtifactWS streams every applied artifact to the page. The current
// artifact, if any, is sent first.
func (s *Server) handleArtifactWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	doc := s.runner.Document()
	ch := doc.Subscribe()
	defer doc.Unsubscribe(ch)

	if art := doc.Artifact(); art != nil {
		if err := conn.WriteJSON(art); err != nil {
			return
		}
	}

	for art := range ch {
		if err := conn.WriteJSON(art); err != nil {
			// Assume client disconnected
			return
		}
	}
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
