// Package server exposes the studio: the embedded web UI, the REST API over
// the application controller, the sandboxed preview, and a websocket channel
// that tells open studio windows when to re-render.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/charle01ch/gerador-5-app/internal/app"
	"github.com/charle01ch/gerador-5-app/internal/history"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server is the appgen studio server.
type Server struct {
	cfg        Config
	ctrl       *app.Controller
	hist       *history.Store
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
}

// New creates a studio server around the given controller. The history store
// may be nil. The server registers itself as the controller's change listener
// so edits and generation results fan out to connected studio windows.
func New(cfg Config, ctrl *app.Controller, hist *history.Store) *Server {
	s := &Server{
		cfg:  cfg,
		ctrl: ctrl,
		hist: hist,
		hub:  newHub(),
	}

	ctrl.OnChange(func() { s.hub.Broadcast(stateChangedEvent) })

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware. The generation call can be slow, so the request timeout
	// stays well above the generator's own deadline.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.ServeIndex)
	r.Get("/help", s.ServeHelp)
	r.Get("/preview", s.handlePreview)
	r.Get("/export", s.handleExport)
	r.Get("/ws/studio", s.hub.handleWebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/generate", s.handleGenerate)
		r.Put("/state/html", s.handleEditHTML)
		r.Put("/state/css", s.handleEditCSS)
		r.Put("/state/tab", s.handleSetTab)
		r.Get("/history", s.handleHistory)
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("appgen studio listening on http://localhost:%d", s.cfg.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
