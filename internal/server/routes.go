package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abritton2002/loyal-few/internal/engine"
	"github.com/abritton2002/loyal-few/internal/relationship"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// loadRelationship fetches the snapshot for the {relationshipID} URL param,
// writing the error response itself when the lookup fails.
func (s *Server) loadRelationship(w http.ResponseWriter, r *http.Request) *relationship.Relationship {
	id := chi.URLParam(r, "relationshipID")
	rel, err := s.db.GetRelationship(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil
	}
	if rel == nil {
		writeError(w, http.StatusNotFound, "relationship not found")
		return nil
	}
	return rel
}

func (s *Server) handleListRelationships(w http.ResponseWriter, r *http.Request) {
	rels, err := s.db.ListRelationships()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"relationships": rels})
}

func (s *Server) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name              string                                `json:"name"`
		Tags              []relationship.Tag                    `json:"tags"`
		Notes             string                                `json:"notes"`
		ReminderFrequency int                                   `json:"reminder_frequency"`
		Preferences       relationship.CommunicationPreferences `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	rel := &relationship.Relationship{
		Name:              req.Name,
		Tags:              req.Tags,
		Notes:             req.Notes,
		ReminderFrequency: req.ReminderFrequency,
		Preferences:       req.Preferences,
	}
	if err := s.db.CreateRelationship(rel); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rel)
}

func (s *Server) handleGetRelationship(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

func (s *Server) handleUpdateRelationship(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	var req struct {
		Name              *string                                `json:"name"`
		Tags              *[]relationship.Tag                    `json:"tags"`
		Notes             *string                                `json:"notes"`
		ReminderFrequency *int                                   `json:"reminder_frequency"`
		Preferences       *relationship.CommunicationPreferences `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Name != nil {
		rel.Name = *req.Name
	}
	if req.Tags != nil {
		rel.Tags = *req.Tags
	}
	if req.Notes != nil {
		rel.Notes = *req.Notes
	}
	if req.ReminderFrequency != nil {
		rel.ReminderFrequency = *req.ReminderFrequency
	}
	if req.Preferences != nil {
		rel.Preferences = *req.Preferences
	}

	if err := s.db.UpdateRelationship(rel); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.db.GetRelationship(rel.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRelationship(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "relationshipID")
	if err := s.db.DeleteRelationship(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddInteraction(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	var i relationship.Interaction
	if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if i.Type == "" {
		i.Type = relationship.InteractionOther
	}

	if err := s.db.AddInteraction(rel.ID, &i); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, i)
}

func (s *Server) handleDeleteInteraction(w http.ResponseWriter, r *http.Request) {
	relID := chi.URLParam(r, "relationshipID")
	interactionID := chi.URLParam(r, "interactionID")
	if err := s.db.DeleteInteraction(relID, interactionID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddEmotion(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	var e relationship.EmotionEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if e.Rating == 0 {
		writeError(w, http.StatusBadRequest, "rating required")
		return
	}

	if err := s.db.AddEmotionEntry(rel.ID, &e); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	var g relationship.Goal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if g.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}

	if err := s.db.AddGoal(rel.ID, &g); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleCompleteGoal(w http.ResponseWriter, r *http.Request) {
	relID := chi.URLParam(r, "relationshipID")
	goalID := chi.URLParam(r, "goalID")
	if err := s.db.CompleteGoal(relID, goalID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	relID := chi.URLParam(r, "relationshipID")
	goalID := chi.URLParam(r, "goalID")
	if err := s.db.DeleteGoal(relID, goalID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddDate(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	var d relationship.ImportantDate
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if d.Title == "" || d.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "title and date required")
		return
	}
	if d.Type == "" {
		d.Type = relationship.DateOther
	}

	if err := s.db.AddImportantDate(rel.ID, &d); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleDeleteDate(w http.ResponseWriter, r *http.Request) {
	relID := chi.URLParam(r, "relationshipID")
	dateID := chi.URLParam(r, "dateID")
	if err := s.db.DeleteImportantDate(relID, dateID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddMilestone(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	var m relationship.Milestone
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if m.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}

	if err := s.db.AddMilestone(rel.ID, &m); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleAddMemory(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	var m relationship.SharedMemory
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if m.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}

	if err := s.db.AddSharedMemory(rel.ID, &m); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleAcknowledgeMemory(w http.ResponseWriter, r *http.Request) {
	relID := chi.URLParam(r, "relationshipID")
	memoryID := chi.URLParam(r, "memoryID")
	if err := s.db.AcknowledgeMemory(relID, memoryID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"score":             rel.ConnectionScore,
		"status":            engine.StatusFor(rel.ConnectionScore),
		"interactions":      engine.InteractionInsights(rel),
		"goals":             engine.GoalInsights(rel),
		"dates":             engine.DateInsights(rel),
		"milestones":        engine.MilestoneInsights(rel),
		"memories":          engine.MemoryInsights(rel),
		"emotions":          engine.EmotionInsights(rel.EmotionHistory),
		"emotion_trend":     engine.EmotionTrend(rel.EmotionHistory),
		"memory_engagement": engine.MemoryEngagement(rel),
		"frequency_days":    engine.InteractionFrequency(rel),
	})
}

func (s *Server) handleReminder(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"due":       engine.ShouldRemind(rel),
		"next_date": engine.NextReminderDate(rel).Format(time.RFC3339),
		"message":   engine.ReminderMessage(rel),
	})
}

func (s *Server) handleUpcomingDates(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}

	horizon := 30
	if q := r.URL.Query().Get("horizon"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid horizon")
			return
		}
		horizon = n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"dates": engine.UpcomingDates(rel, horizon),
	})
}

func (s *Server) handlePrompts(w http.ResponseWriter, r *http.Request) {
	rel := s.loadRelationship(w, r)
	if rel == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"prompts": engine.CheckInPrompts(rel),
	})
}

func (s *Server) handleDueReminders(w http.ResponseWriter, r *http.Request) {
	rels, err := s.db.ListRelationships()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type due struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Score   int    `json:"score"`
		Message string `json:"message"`
	}
	reminders := []due{}
	for i := range rels {
		if !engine.ShouldRemind(&rels[i]) {
			continue
		}
		reminders = append(reminders, due{
			ID:      rels[i].ID,
			Name:    rels[i].Name,
			Score:   rels[i].ConnectionScore,
			Message: engine.ReminderMessage(&rels[i]),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"reminders": reminders})
}
