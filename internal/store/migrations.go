package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "relationships: aggregate roots",
		SQL: `
CREATE TABLE relationships (
    id                 TEXT PRIMARY KEY,
    name               TEXT NOT NULL,
    tags               TEXT NOT NULL,
    notes              TEXT NOT NULL DEFAULT '',
    connection_score   INTEGER NOT NULL DEFAULT 50,
    reminder_frequency INTEGER NOT NULL DEFAULT 7,
    preferences        TEXT,
    created_at         INTEGER NOT NULL,
    updated_at         INTEGER NOT NULL
);

CREATE INDEX idx_relationships_score ON relationships(connection_score DESC);
`,
	},
	{
		Version:     2,
		Description: "interactions: contact history per relationship",
		SQL: `
CREATE TABLE interactions (
    id              TEXT PRIMARY KEY,
    relationship_id TEXT NOT NULL REFERENCES relationships(id) ON DELETE CASCADE,
    date            INTEGER NOT NULL,
    type            TEXT NOT NULL CHECK (type IN ('call', 'message', 'meeting', 'gift', 'other')),
    notes           TEXT NOT NULL DEFAULT '',
    emotion_rating  INTEGER
);

CREATE INDEX idx_interactions_rel ON interactions(relationship_id, date DESC);
`,
	},
	{
		Version:     3,
		Description: "important_dates: birthdays, anniversaries, other",
		SQL: `
CREATE TABLE important_dates (
    id              TEXT PRIMARY KEY,
    relationship_id TEXT NOT NULL REFERENCES relationships(id) ON DELETE CASCADE,
    title           TEXT NOT NULL,
    date            INTEGER NOT NULL,
    type            TEXT NOT NULL CHECK (type IN ('birthday', 'anniversary', 'other')),
    recurring       INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX idx_dates_rel ON important_dates(relationship_id);
`,
	},
	{
		Version:     4,
		Description: "goals: things to do for or with this person",
		SQL: `
CREATE TABLE goals (
    id              TEXT PRIMARY KEY,
    relationship_id TEXT NOT NULL REFERENCES relationships(id) ON DELETE CASCADE,
    title           TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    target_date     INTEGER,
    progress        INTEGER NOT NULL DEFAULT 0,
    shared          INTEGER NOT NULL DEFAULT 0,
    completed       INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX idx_goals_rel ON goals(relationship_id);
`,
	},
	{
		Version:     5,
		Description: "milestones and shared_memories: historical records",
		SQL: `
CREATE TABLE milestones (
    id              TEXT PRIMARY KEY,
    relationship_id TEXT NOT NULL REFERENCES relationships(id) ON DELETE CASCADE,
    title           TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    date            INTEGER NOT NULL
);

CREATE INDEX idx_milestones_rel ON milestones(relationship_id, date DESC);

CREATE TABLE shared_memories (
    id              TEXT PRIMARY KEY,
    relationship_id TEXT NOT NULL REFERENCES relationships(id) ON DELETE CASCADE,
    title           TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    date            INTEGER NOT NULL,
    created_by      TEXT NOT NULL CHECK (created_by IN ('self', 'other')),
    acknowledged    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX idx_memories_rel ON shared_memories(relationship_id, date DESC);
`,
	},
	{
		Version:     6,
		Description: "emotion_entries: append-only emotion log",
		SQL: `
CREATE TABLE emotion_entries (
    id              INTEGER PRIMARY KEY,
    relationship_id TEXT NOT NULL REFERENCES relationships(id) ON DELETE CASCADE,
    date            INTEGER NOT NULL,
    rating          INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 10)
);

CREATE INDEX idx_emotions_rel ON emotion_entries(relationship_id, date);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
