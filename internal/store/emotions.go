package store

import (
	"fmt"
	"time"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// AddEmotionEntry appends to the emotion log and rescores. Ratings outside
// 1-10 are clamped rather than rejected; a zero rating is meaningless here
// and clamps to 1.
func (db *DB) AddEmotionEntry(relationshipID string, e *relationship.EmotionEntry) error {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	e.Rating = relationship.ClampRating(e.Rating)
	if e.Rating == 0 {
		e.Rating = 1
	}

	_, err := db.Exec(`
		INSERT INTO emotion_entries (relationship_id, date, rating)
		VALUES (?, ?, ?)
	`, relationshipID, e.Date.UnixMilli(), e.Rating)
	if err != nil {
		return fmt.Errorf("add emotion entry: %w", err)
	}
	return db.rescore(relationshipID)
}

func (db *DB) listEmotionEntries(relationshipID string) ([]relationship.EmotionEntry, error) {
	rows, err := db.Query(`
		SELECT date, rating
		FROM emotion_entries WHERE relationship_id = ? ORDER BY date
	`, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("list emotion entries: %w", err)
	}
	defer rows.Close()

	var entries []relationship.EmotionEntry
	for rows.Next() {
		var e relationship.EmotionEntry
		var date int64
		if err := rows.Scan(&date, &e.Rating); err != nil {
			return nil, fmt.Errorf("scan emotion entry: %w", err)
		}
		e.Date = time.UnixMilli(date)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
