// Package api runs an optional local HTTP server exposing read-only game
// stats and the save-slot list. It never touches the live game state:
// the loop publishes immutable snapshots into a StateBuffer and handlers
// read from there, so the single-owner model of the engine holds.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/idle-mine-go/internal/game"
	"github.com/MJE43/idle-mine-go/internal/store"
)

// StateBuffer holds the most recently published snapshot.
type StateBuffer struct {
	mu   sync.RWMutex
	snap game.Snapshot
	ok   bool
}

// Publish replaces the buffered snapshot.
func (b *StateBuffer) Publish(s game.Snapshot) {
	b.mu.Lock()
	b.snap = s
	b.ok = true
	b.mu.Unlock()
}

// Latest returns the buffered snapshot, if one has been published.
func (b *StateBuffer) Latest() (game.Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap, b.ok
}

// Server is the local stats HTTP server, bound to loopback.
type Server struct {
	buf        *StateBuffer
	slots      *store.Store // may be nil when no save database is open
	logger     *log.Logger
	httpServer *http.Server
	startTime  time.Time
}

// NewServer creates a stats server reading from buf. slots may be nil.
func NewServer(buf *StateBuffer, slots *store.Store) *Server {
	return &Server{
		buf:       buf,
		slots:     slots,
		logger:    log.New(os.Stdout, "[API] ", log.LstdFlags),
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/saves", s.handleSaves)
	})

	return r
}

// Start binds to 127.0.0.1:port and serves in a goroutine. It returns
// once the socket is bound.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind stats server: %w", err)
	}
	s.logger.Printf("stats server listening on %s", addr)
	go func() {
		_ = s.httpServer.Serve(ln)
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.buf.Latest()
	if !ok {
		s.writeError(w, http.StatusNotFound, "no snapshot published yet")
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	if s.slots == nil {
		s.writeError(w, http.StatusNotFound, "save database not enabled")
		return
	}
	slots, err := s.slots.List(r.Context())
	if err != nil {
		s.logger.Printf("list saves failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list saves")
		return
	}
	if slots == nil {
		slots = []store.Slot{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"saves": slots})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{"error": message})
}
