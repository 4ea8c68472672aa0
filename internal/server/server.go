// Package server provides the HTTP control surface for the Mudra gesture launcher.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// Status reports the live state of the gesture pipeline for overlays.
type Status interface {
	// LastCount returns the most recent finger count and whether a hand
	// is currently tracked.
	LastCount() (int, bool)
	// CooldownRemaining returns the time until the next trigger is allowed.
	CooldownRemaining() time.Duration
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Detector  detector.Detector
	Status    Status
}

// Server represents the HTTP server for the Mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		mappingHandler := api.NewMappingHandler(s.config.Store)
		s.mux.Handle("/api/mappings", mappingHandler)
		s.mux.Handle("/api/mappings/", mappingHandler)

		s.mux.Handle("/api/events", api.NewEventHandler(s.config.Store))
		s.mux.Handle("/api/settings/", api.NewSettingHandler(s.config.Store))
	}

	// Live camera preview with the status HUD.
	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewPreviewHandler(s.config.Camera, s.config.Status))
	}

	// Real-time finger counts over WebSocket.
	if s.config.Camera != nil && s.config.Detector != nil {
		s.mux.Handle("/api/fingers", NewFingersHandler(s.config.Detector, s.config.Camera, s.config.Status))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
