package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// AddImportantDate records a date and rescores the relationship (an
// upcoming date nudges the score).
func (db *DB) AddImportantDate(relationshipID string, d *relationship.ImportantDate) error {
	d.ID = uuid.New().String()

	_, err := db.Exec(`
		INSERT INTO important_dates (id, relationship_id, title, date, type, recurring)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.ID, relationshipID, d.Title, d.Date.UnixMilli(), string(d.Type), boolToInt(d.Recurring))
	if err != nil {
		return fmt.Errorf("add important date: %w", err)
	}
	return db.rescore(relationshipID)
}

// DeleteImportantDate removes a date and rescores.
func (db *DB) DeleteImportantDate(relationshipID, dateID string) error {
	_, err := db.Exec(
		"DELETE FROM important_dates WHERE id = ? AND relationship_id = ?",
		dateID, relationshipID,
	)
	if err != nil {
		return fmt.Errorf("delete important date: %w", err)
	}
	return db.rescore(relationshipID)
}

func (db *DB) listImportantDates(relationshipID string) ([]relationship.ImportantDate, error) {
	rows, err := db.Query(`
		SELECT id, title, date, type, recurring
		FROM important_dates WHERE relationship_id = ? ORDER BY date
	`, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("list important dates: %w", err)
	}
	defer rows.Close()

	var dates []relationship.ImportantDate
	for rows.Next() {
		var d relationship.ImportantDate
		var date int64
		var dtype string
		var recurring int
		if err := rows.Scan(&d.ID, &d.Title, &date, &dtype, &recurring); err != nil {
			return nil, fmt.Errorf("scan important date: %w", err)
		}
		d.Date = time.UnixMilli(date)
		d.Type = relationship.DateType(dtype)
		d.Recurring = recurring != 0
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
