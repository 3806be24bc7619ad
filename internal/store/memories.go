package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// AddSharedMemory records a memory and rescores the relationship.
func (db *DB) AddSharedMemory(relationshipID string, m *relationship.SharedMemory) error {
	m.ID = uuid.New().String()
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	if m.CreatedBy != relationship.CreatedByOther {
		m.CreatedBy = relationship.CreatedBySelf
	}

	_, err := db.Exec(`
		INSERT INTO shared_memories (id, relationship_id, title, description, date, created_by, acknowledged)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.ID, relationshipID, m.Title, m.Description, m.Date.UnixMilli(),
		string(m.CreatedBy), boolToInt(m.Acknowledged))
	if err != nil {
		return fmt.Errorf("add shared memory: %w", err)
	}
	return db.rescore(relationshipID)
}

// AcknowledgeMemory marks a shared memory seen and rescores.
func (db *DB) AcknowledgeMemory(relationshipID, memoryID string) error {
	res, err := db.Exec(`
		UPDATE shared_memories SET acknowledged = 1 WHERE id = ? AND relationship_id = ?
	`, memoryID, relationshipID)
	if err != nil {
		return fmt.Errorf("acknowledge memory: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("acknowledge memory: %s not found", memoryID)
	}
	return db.rescore(relationshipID)
}

// DeleteSharedMemory removes a memory and rescores.
func (db *DB) DeleteSharedMemory(relationshipID, memoryID string) error {
	_, err := db.Exec(
		"DELETE FROM shared_memories WHERE id = ? AND relationship_id = ?",
		memoryID, relationshipID,
	)
	if err != nil {
		return fmt.Errorf("delete shared memory: %w", err)
	}
	return db.rescore(relationshipID)
}

func (db *DB) listSharedMemories(relationshipID string) ([]relationship.SharedMemory, error) {
	rows, err := db.Query(`
		SELECT id, title, description, date, created_by, acknowledged
		FROM shared_memories WHERE relationship_id = ? ORDER BY date
	`, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("list shared memories: %w", err)
	}
	defer rows.Close()

	var memories []relationship.SharedMemory
	for rows.Next() {
		var m relationship.SharedMemory
		var date int64
		var createdBy string
		var acknowledged int
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &date, &createdBy, &acknowledged); err != nil {
			return nil, fmt.Errorf("scan shared memory: %w", err)
		}
		m.Date = time.UnixMilli(date)
		m.CreatedBy = relationship.Creator(createdBy)
		m.Acknowledged = acknowledged != 0
		memories = append(memories, m)
	}
	return memories, rows.Err()
}
