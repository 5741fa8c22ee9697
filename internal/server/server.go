package server

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/rainwise/web-go/internal/handler"
	"github.com/rainwise/web-go/internal/mapview"
	"github.com/rainwise/web-go/internal/models"
	"github.com/rainwise/web-go/internal/observability"
	"github.com/rainwise/web-go/internal/session"
)

//go:embed templates static
var assets embed.FS

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Finder   models.StationFinder
	Signup   handler.Submitter
	Sessions *session.Store
	Metrics  *observability.Metrics
	Tiles    mapview.TileSource
}

type Server struct {
	router     *mux.Router
	httpServer *http.Server
	pages      *pages
	deps       Deps
}

// New builds the router with every page, API route and middleware.
func New(addr string, deps Deps) (*Server, error) {
	if deps.Metrics == nil {
		deps.Metrics = observability.NewMetricsForTesting()
	}

	p, err := loadPages(assets)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	s := &Server{
		router: mux.NewRouter(),
		pages:  p,
		deps:   deps,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) routes() error {
	r := s.router
	r.Use(s.middleware()...)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/signup", s.handleSignupPage).Methods(http.MethodGet)
	r.HandleFunc("/signup", s.handleSignupForm).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodGet)
	r.HandleFunc("/map", s.handleMapPage).Methods(http.MethodGet)
	r.HandleFunc("/states", s.handleStatesPage).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/stations", s.handleStations).Methods(http.MethodGet)
	apiRouter.HandleFunc("/stations/nearest", s.handleNearest).Methods(http.MethodGet)
	apiRouter.HandleFunc("/stations/{id}", s.handleStation).Methods(http.MethodGet)
	apiRouter.HandleFunc("/states", s.handleStates).Methods(http.MethodGet)
	apiRouter.HandleFunc("/states/{name}", s.handleState).Methods(http.MethodGet)
	apiRouter.HandleFunc("/signup", s.handleSignupAPI).Methods(http.MethodPost)

	apiRouter.HandleFunc("/map/tiles", s.handleTiles).Methods(http.MethodGet)
	apiRouter.HandleFunc("/map/sessions", s.handleCreateMapSession).Methods(http.MethodPost)
	apiRouter.HandleFunc("/map/sessions/{id}", s.handleGetMapSession).Methods(http.MethodGet)
	apiRouter.HandleFunc("/map/sessions/{id}", s.handleDeleteMapSession).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/map/sessions/{id}/click", s.handleMapEvent(eventClick)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/map/sessions/{id}/drag", s.handleMapEvent(eventDrag)).Methods(http.MethodPost)

	static, err := staticHandler(assets)
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", static))

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return nil
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server starting")
	return s.httpServer.ListenAndServe()
}

// Shutdown drains connections within the context deadline, then closes every
// open map session.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.deps.Sessions != nil {
		s.deps.Sessions.Purge()
		s.deps.Metrics.MapSessions.Set(0)
	}
	return err
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
