package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// AddGoal records a goal and rescores the relationship.
func (db *DB) AddGoal(relationshipID string, g *relationship.Goal) error {
	g.ID = uuid.New().String()
	if g.Progress < 0 {
		g.Progress = 0
	}
	if g.Progress > 100 {
		g.Progress = 100
	}

	_, err := db.Exec(`
		INSERT INTO goals (id, relationship_id, title, description, target_date, progress, shared, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, relationshipID, g.Title, g.Description, nullableTime(g.TargetDate),
		g.Progress, boolToInt(g.Shared), boolToInt(g.Completed))
	if err != nil {
		return fmt.Errorf("add goal: %w", err)
	}
	return db.rescore(relationshipID)
}

// CompleteGoal marks a goal done and rescores. Completing a goal never
// lowers the score.
func (db *DB) CompleteGoal(relationshipID, goalID string) error {
	res, err := db.Exec(`
		UPDATE goals SET completed = 1, progress = 100 WHERE id = ? AND relationship_id = ?
	`, goalID, relationshipID)
	if err != nil {
		return fmt.Errorf("complete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("complete goal: %s not found", goalID)
	}
	return db.rescore(relationshipID)
}

// UpdateGoalProgress sets the progress of an incomplete goal.
func (db *DB) UpdateGoalProgress(relationshipID, goalID string, progress int) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	res, err := db.Exec(`
		UPDATE goals SET progress = ? WHERE id = ? AND relationship_id = ? AND completed = 0
	`, progress, goalID, relationshipID)
	if err != nil {
		return fmt.Errorf("update goal progress: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update goal progress: %s not found or completed", goalID)
	}
	return db.rescore(relationshipID)
}

// DeleteGoal removes a goal and rescores.
func (db *DB) DeleteGoal(relationshipID, goalID string) error {
	_, err := db.Exec("DELETE FROM goals WHERE id = ? AND relationship_id = ?", goalID, relationshipID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return db.rescore(relationshipID)
}

func (db *DB) listGoals(relationshipID string) ([]relationship.Goal, error) {
	rows, err := db.Query(`
		SELECT id, title, description, target_date, progress, shared, completed
		FROM goals WHERE relationship_id = ? ORDER BY completed, target_date
	`, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []relationship.Goal
	for rows.Next() {
		var g relationship.Goal
		var target sql.NullInt64
		var shared, completed int
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &target, &g.Progress, &shared, &completed); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if target.Valid {
			g.TargetDate = time.UnixMilli(target.Int64)
		}
		g.Shared = shared != 0
		g.Completed = completed != 0
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
