package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// AddInteraction records a contact and rescores the relationship. A zero
// rating means unrated and is stored as NULL; out-of-range ratings are
// clamped rather than rejected.
func (db *DB) AddInteraction(relationshipID string, i *relationship.Interaction) error {
	i.ID = uuid.New().String()
	if i.Date.IsZero() {
		i.Date = time.Now()
	}
	i.EmotionRating = relationship.ClampRating(i.EmotionRating)

	_, err := db.Exec(`
		INSERT INTO interactions (id, relationship_id, date, type, notes, emotion_rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`, i.ID, relationshipID, i.Date.UnixMilli(), string(i.Type), i.Notes, nullableRating(i.EmotionRating))
	if err != nil {
		return fmt.Errorf("add interaction: %w", err)
	}
	return db.rescore(relationshipID)
}

// UpdateInteraction edits an existing interaction and rescores.
func (db *DB) UpdateInteraction(relationshipID string, i *relationship.Interaction) error {
	i.EmotionRating = relationship.ClampRating(i.EmotionRating)
	res, err := db.Exec(`
		UPDATE interactions SET date = ?, type = ?, notes = ?, emotion_rating = ?
		WHERE id = ? AND relationship_id = ?
	`, i.Date.UnixMilli(), string(i.Type), i.Notes, nullableRating(i.EmotionRating), i.ID, relationshipID)
	if err != nil {
		return fmt.Errorf("update interaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update interaction: %s not found", i.ID)
	}
	return db.rescore(relationshipID)
}

// DeleteInteraction removes an interaction and rescores, which also moves
// the derived last-interaction date back to the previous one.
func (db *DB) DeleteInteraction(relationshipID, interactionID string) error {
	_, err := db.Exec(
		"DELETE FROM interactions WHERE id = ? AND relationship_id = ?",
		interactionID, relationshipID,
	)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	return db.rescore(relationshipID)
}

func (db *DB) listInteractions(relationshipID string) ([]relationship.Interaction, error) {
	rows, err := db.Query(`
		SELECT id, date, type, notes, emotion_rating
		FROM interactions WHERE relationship_id = ? ORDER BY date
	`, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []relationship.Interaction
	for rows.Next() {
		var i relationship.Interaction
		var date int64
		var itype string
		var rating sql.NullInt64
		if err := rows.Scan(&i.ID, &date, &itype, &i.Notes, &rating); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		i.Date = time.UnixMilli(date)
		i.Type = relationship.InteractionType(itype)
		if rating.Valid {
			i.EmotionRating = int(rating.Int64)
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}

func nullableRating(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
