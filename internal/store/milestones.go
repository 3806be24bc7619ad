package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// AddMilestone records a milestone and rescores the relationship.
func (db *DB) AddMilestone(relationshipID string, m *relationship.Milestone) error {
	m.ID = uuid.New().String()
	if m.Date.IsZero() {
		m.Date = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO milestones (id, relationship_id, title, description, date)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, relationshipID, m.Title, m.Description, m.Date.UnixMilli())
	if err != nil {
		return fmt.Errorf("add milestone: %w", err)
	}
	return db.rescore(relationshipID)
}

// DeleteMilestone removes a milestone and rescores.
func (db *DB) DeleteMilestone(relationshipID, milestoneID string) error {
	_, err := db.Exec(
		"DELETE FROM milestones WHERE id = ? AND relationship_id = ?",
		milestoneID, relationshipID,
	)
	if err != nil {
		return fmt.Errorf("delete milestone: %w", err)
	}
	return db.rescore(relationshipID)
}

func (db *DB) listMilestones(relationshipID string) ([]relationship.Milestone, error) {
	rows, err := db.Query(`
		SELECT id, title, description, date
		FROM milestones WHERE relationship_id = ? ORDER BY date
	`, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()

	var milestones []relationship.Milestone
	for rows.Next() {
		var m relationship.Milestone
		var date int64
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &date); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		m.Date = time.UnixMilli(date)
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}
