package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abritton2002/loyal-few/internal/store"
)

// Server is the loyal-few HTTP API server.
type Server struct {
	db      *store.DB
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server with the given database and version string.
func New(db *store.DB, version string) *Server {
	s := &Server{
		db:      db,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/relationships", s.handleListRelationships)
		r.Post("/relationships", s.handleCreateRelationship)
		r.Get("/reminders", s.handleDueReminders)

		r.Route("/relationships/{relationshipID}", func(r chi.Router) {
			r.Get("/", s.handleGetRelationship)
			r.Patch("/", s.handleUpdateRelationship)
			r.Delete("/", s.handleDeleteRelationship)

			r.Post("/interactions", s.handleAddInteraction)
			r.Delete("/interactions/{interactionID}", s.handleDeleteInteraction)
			r.Post("/emotions", s.handleAddEmotion)
			r.Post("/goals", s.handleAddGoal)
			r.Post("/goals/{goalID}/complete", s.handleCompleteGoal)
			r.Delete("/goals/{goalID}", s.handleDeleteGoal)
			r.Post("/dates", s.handleAddDate)
			r.Delete("/dates/{dateID}", s.handleDeleteDate)
			r.Post("/milestones", s.handleAddMilestone)
			r.Post("/memories", s.handleAddMemory)
			r.Post("/memories/{memoryID}/acknowledge", s.handleAcknowledgeMemory)

			r.Get("/insights", s.handleInsights)
			r.Get("/reminder", s.handleReminder)
			r.Get("/upcoming-dates", s.handleUpcomingDates)
			r.Get("/prompts", s.handlePrompts)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}
