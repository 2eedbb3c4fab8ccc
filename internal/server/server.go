package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/claude/paceforge/internal/plan"
	"github.com/claude/paceforge/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers. All state mutations go
// through withState, which serializes access and persists the resulting
// snapshot before replying.
type Server struct {
	mu     sync.Mutex
	state  plan.State
	db     *storage.DB
	gen    *plan.Generator
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, gen *plan.Generator, initial plan.State, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		state:  initial,
		db:     db,
		gen:    gen,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints, no auth required.
	s.router.Get("/api/v1/profile", s.handleGetProfile)
	s.router.Get("/api/v1/plan", s.handleGetPlan)
	s.router.Get("/api/v1/plan/weeks/{n}", s.handleGetWeek)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/export/{sessionID}", s.handleExportSession)
	s.router.Get("/api/v1/export", s.handleExportCompleted)
	s.router.Get("/api/v1/snapshot", s.handleGetSnapshot)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Put("/api/v1/profile", s.handlePutProfile)
		r.Post("/api/v1/plan/generate", s.handleGeneratePlan)
		r.Post("/api/v1/weeks/{n}/schedule/reset", s.handleResetSchedule)
		r.Post("/api/v1/sessions/{id}/complete", s.handleCompleteSession)
		r.Post("/api/v1/sessions/{id}/uncomplete", s.handleUncompleteSession)
		r.Post("/api/v1/sessions/{id}/swap", s.handleSwapExercises)
		r.Post("/api/v1/exercises/{id}/complete", s.handleCompleteExercise)
		r.Post("/api/v1/feedback", s.handleFeedback)
		r.Post("/api/v1/snapshot", s.handleImportSnapshot)
	})
}

// withState runs fn under the state lock. When fn reports a mutation the
// new state is persisted before it replaces the current one; a failed
// save leaves the in-memory state untouched.
func (s *Server) withState(ctx context.Context, fn func(plan.State) (plan.State, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, mutated, err := fn(s.state)
	if err != nil {
		return err
	}
	if !mutated {
		return nil
	}
	if s.db != nil {
		snap := plan.TakeSnapshot(next)
		if err := s.db.SaveSnapshot(ctx, snap); err != nil {
			return err
		}
	}
	s.state = next
	return nil
}

// snapshotState returns a read-only snapshot of the current state.
func (s *Server) snapshotState() plan.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
