package store

import (
	"testing"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

func createTestRelationship(t *testing.T, db *DB, name string, tags ...relationship.Tag) *relationship.Relationship {
	t.Helper()
	r := &relationship.Relationship{Name: name, Tags: tags}
	if err := db.CreateRelationship(r); err != nil {
		t.Fatalf("create relationship %q: %v", name, err)
	}
	return r
}

func TestCreateRelationship(t *testing.T) {
	db := testDB(t)
	r := createTestRelationship(t, db, "Maya", relationship.TagFriend)

	if r.ID == "" {
		t.Error("create did not assign an ID")
	}
	if r.ConnectionScore != 55 {
		t.Errorf("initial score = %d, want 55 (friend base)", r.ConnectionScore)
	}
	if r.ReminderFrequency != 7 {
		t.Errorf("reminder frequency = %d, want the friend default 7", r.ReminderFrequency)
	}

	got, err := db.GetRelationship(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("get returned nil for a created relationship")
	}
	if got.Name != "Maya" || len(got.Tags) != 1 || got.Tags[0] != relationship.TagFriend {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestCreateRelationshipDefaults(t *testing.T) {
	db := testDB(t)

	spouse := createTestRelationship(t, db, "Sam", relationship.TagSpouse)
	if spouse.ReminderFrequency != 2 {
		t.Errorf("spouse reminder frequency = %d, want 2", spouse.ReminderFrequency)
	}
	if spouse.ConnectionScore != 70 {
		t.Errorf("spouse initial score = %d, want 70", spouse.ConnectionScore)
	}

	colleague := createTestRelationship(t, db, "Dana", relationship.TagColleague)
	if colleague.ReminderFrequency != 21 {
		t.Errorf("colleague reminder frequency = %d, want 21", colleague.ReminderFrequency)
	}
}

func TestCreateRelationshipValidation(t *testing.T) {
	db := testDB(t)

	if err := db.CreateRelationship(&relationship.Relationship{}); err == nil {
		t.Error("empty name should be rejected")
	}
	bad := &relationship.Relationship{Name: "X", Tags: []relationship.Tag{"nemesis"}}
	if err := db.CreateRelationship(bad); err == nil {
		t.Error("unknown tag should be rejected")
	}
}

func TestGetRelationshipMissing(t *testing.T) {
	db := testDB(t)
	got, err := db.GetRelationship("nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != nil {
		t.Errorf("get missing = %+v, want nil", got)
	}
}

func TestListRelationshipsOrderedByScore(t *testing.T) {
	db := testDB(t)
	createTestRelationship(t, db, "Dana", relationship.TagColleague)
	createTestRelationship(t, db, "Sam", relationship.TagSpouse)

	rels, err := db.ListRelationships()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rels) != 2 {
		t.Fatalf("got %d relationships, want 2", len(rels))
	}
	if rels[0].Name != "Sam" {
		t.Errorf("first = %q, want the higher-scored Sam", rels[0].Name)
	}
}

func TestUpdateRelationshipRescores(t *testing.T) {
	db := testDB(t)
	r := createTestRelationship(t, db, "Dana", relationship.TagColleague)

	r.Tags = []relationship.Tag{relationship.TagSpouse}
	if err := db.UpdateRelationship(r); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := db.GetRelationship(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ConnectionScore != 70 {
		t.Errorf("score after retagging to spouse = %d, want 70", got.ConnectionScore)
	}
}

func TestDeleteRelationshipCascades(t *testing.T) {
	db := testDB(t)
	r := createTestRelationship(t, db, "Maya", relationship.TagFriend)
	if err := db.AddInteraction(r.ID, &relationship.Interaction{Type: relationship.InteractionCall}); err != nil {
		t.Fatalf("add interaction: %v", err)
	}

	if err := db.DeleteRelationship(r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM interactions WHERE relationship_id = ?", r.ID).Scan(&count); err != nil {
		t.Fatalf("count interactions: %v", err)
	}
	if count != 0 {
		t.Errorf("%d interactions survived the delete, want 0", count)
	}
}

func TestRescoreAll(t *testing.T) {
	db := testDB(t)
	r := createTestRelationship(t, db, "Maya", relationship.TagFriend)

	// Nothing stale yet.
	updated, err := db.RescoreAll()
	if err != nil {
		t.Fatalf("rescore all: %v", err)
	}
	if updated != 0 {
		t.Errorf("rescore all touched %d fresh relationships, want 0", updated)
	}

	// Force a stale stored score and let the sweep correct it.
	if _, err := db.Exec("UPDATE relationships SET connection_score = 1 WHERE id = ?", r.ID); err != nil {
		t.Fatalf("force stale score: %v", err)
	}
	updated, err = db.RescoreAll()
	if err != nil {
		t.Fatalf("rescore all: %v", err)
	}
	if updated != 1 {
		t.Errorf("rescore all updated %d, want 1", updated)
	}

	got, err := db.GetRelationship(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ConnectionScore != 55 {
		t.Errorf("score after sweep = %d, want 55", got.ConnectionScore)
	}
}
