package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abritton2002/loyal-few/internal/engine"
	"github.com/abritton2002/loyal-few/internal/relationship"
)

// CreateRelationship inserts a new relationship, assigning its ID and
// computing its initial connection score. A fresh record with no
// interactions rests at its category base score.
func (db *DB) CreateRelationship(r *relationship.Relationship) error {
	if r.Name == "" {
		return fmt.Errorf("create relationship: name required")
	}
	for _, t := range r.Tags {
		if !relationship.ValidTag(t) {
			return fmt.Errorf("create relationship: unknown tag %q", t)
		}
	}

	now := time.Now()
	r.ID = uuid.New().String()
	if r.ReminderFrequency == 0 {
		r.ReminderFrequency = defaultReminderFrequency(r.PrimaryTag())
	}
	r.ConnectionScore = engine.ConnectionScoreAt(r, now)
	r.CreatedAt = now
	r.UpdatedAt = now

	prefs, err := json.Marshal(r.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO relationships (id, name, tags, notes, connection_score, reminder_frequency, preferences, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Name, joinTags(r.Tags), r.Notes, r.ConnectionScore, r.ReminderFrequency,
		string(prefs), now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return fmt.Errorf("create relationship: %w", err)
	}
	return nil
}

// GetRelationship returns a fully hydrated relationship snapshot, or nil
// if not found.
func (db *DB) GetRelationship(id string) (*relationship.Relationship, error) {
	var r relationship.Relationship
	var tags string
	var prefs sql.NullString
	var createdAt, updatedAt int64
	err := db.QueryRow(`
		SELECT id, name, tags, notes, connection_score, reminder_frequency, preferences, created_at, updated_at
		FROM relationships WHERE id = ?
	`, id).Scan(&r.ID, &r.Name, &tags, &r.Notes, &r.ConnectionScore, &r.ReminderFrequency,
		&prefs, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get relationship: %w", err)
	}

	r.Tags = splitTags(tags)
	r.CreatedAt = time.UnixMilli(createdAt)
	r.UpdatedAt = time.UnixMilli(updatedAt)
	if prefs.Valid && prefs.String != "" {
		if err := json.Unmarshal([]byte(prefs.String), &r.Preferences); err != nil {
			return nil, fmt.Errorf("unmarshal preferences: %w", err)
		}
	}

	if err := db.hydrate(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRelationships returns all relationships, fully hydrated, ordered by
// connection score descending.
func (db *DB) ListRelationships() ([]relationship.Relationship, error) {
	rows, err := db.Query(`
		SELECT id, name, tags, notes, connection_score, reminder_frequency, preferences, created_at, updated_at
		FROM relationships ORDER BY connection_score DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	var rels []relationship.Relationship
	for rows.Next() {
		var r relationship.Relationship
		var tags string
		var prefs sql.NullString
		var createdAt, updatedAt int64
		if err := rows.Scan(&r.ID, &r.Name, &tags, &r.Notes, &r.ConnectionScore,
			&r.ReminderFrequency, &prefs, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		r.Tags = splitTags(tags)
		r.CreatedAt = time.UnixMilli(createdAt)
		r.UpdatedAt = time.UnixMilli(updatedAt)
		if prefs.Valid && prefs.String != "" {
			if err := json.Unmarshal([]byte(prefs.String), &r.Preferences); err != nil {
				return nil, fmt.Errorf("unmarshal preferences: %w", err)
			}
		}
		rels = append(rels, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range rels {
		if err := db.hydrate(&rels[i]); err != nil {
			return nil, err
		}
	}
	return rels, nil
}

// UpdateRelationship updates the user-editable fields (name, tags, notes,
// reminder frequency, preferences) and rescores, since tags change the
// category base.
func (db *DB) UpdateRelationship(r *relationship.Relationship) error {
	for _, t := range r.Tags {
		if !relationship.ValidTag(t) {
			return fmt.Errorf("update relationship: unknown tag %q", t)
		}
	}

	prefs, err := json.Marshal(r.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	now := time.Now()
	_, err = db.Exec(`
		UPDATE relationships SET name = ?, tags = ?, notes = ?, reminder_frequency = ?, preferences = ?, updated_at = ?
		WHERE id = ?
	`, r.Name, joinTags(r.Tags), r.Notes, r.ReminderFrequency, string(prefs), now.UnixMilli(), r.ID)
	if err != nil {
		return fmt.Errorf("update relationship: %w", err)
	}
	return db.rescore(r.ID)
}

// DeleteRelationship removes a relationship; child rows cascade.
func (db *DB) DeleteRelationship(id string) error {
	_, err := db.Exec("DELETE FROM relationships WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete relationship: %w", err)
	}
	return nil
}

// rescore recomputes the connection score from a fresh snapshot and
// persists it. Called after every mutation to any child collection so the
// stored score never goes stale.
func (db *DB) rescore(id string) error {
	r, err := db.GetRelationship(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("rescore: relationship %s not found", id)
	}

	score := engine.ConnectionScore(r)
	_, err = db.Exec(`
		UPDATE relationships SET connection_score = ?, updated_at = ? WHERE id = ?
	`, score, time.Now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("rescore: %w", err)
	}
	return nil
}

// RescoreAll recomputes every relationship's score and returns how many
// changed. Run at startup and daily so decay applies without mutations.
func (db *DB) RescoreAll() (int, error) {
	rows, err := db.Query("SELECT id, connection_score FROM relationships")
	if err != nil {
		return 0, fmt.Errorf("rescore all: %w", err)
	}

	type target struct {
		id    string
		score int
	}
	var targets []target
	for rows.Next() {
		var t target
		if err := rows.Scan(&t.id, &t.score); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan rescore target: %w", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	updated := 0
	for _, t := range targets {
		r, err := db.GetRelationship(t.id)
		if err != nil {
			return updated, err
		}
		if r == nil {
			continue
		}
		score := engine.ConnectionScore(r)
		if score == t.score {
			continue
		}
		if _, err := db.Exec(
			"UPDATE relationships SET connection_score = ?, updated_at = ? WHERE id = ?",
			score, time.Now().UnixMilli(), t.id,
		); err != nil {
			return updated, fmt.Errorf("rescore %s: %w", t.id, err)
		}
		updated++
	}
	return updated, nil
}

func (db *DB) hydrate(r *relationship.Relationship) error {
	var err error
	if r.Interactions, err = db.listInteractions(r.ID); err != nil {
		return err
	}
	if r.ImportantDates, err = db.listImportantDates(r.ID); err != nil {
		return err
	}
	if r.Goals, err = db.listGoals(r.ID); err != nil {
		return err
	}
	if r.Milestones, err = db.listMilestones(r.ID); err != nil {
		return err
	}
	if r.SharedMemories, err = db.listSharedMemories(r.ID); err != nil {
		return err
	}
	if r.EmotionHistory, err = db.listEmotionEntries(r.ID); err != nil {
		return err
	}
	return nil
}

// defaultReminderFrequency is the per-category check-in cadence used when
// the user has not overridden it.
func defaultReminderFrequency(t relationship.Tag) int {
	switch t {
	case relationship.TagSpouse, relationship.TagPartner:
		return 2
	case relationship.TagFamily:
		return 7
	case relationship.TagMentor, relationship.TagMentee:
		return 14
	case relationship.TagColleague, relationship.TagBusiness:
		return 21
	default:
		return 7
	}
}

func joinTags(tags []relationship.Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitTags(s string) []relationship.Tag {
	if s == "" {
		return nil
	}
	var tags []relationship.Tag
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			tags = append(tags, relationship.Tag(part))
		}
	}
	return tags
}
