package engine

import (
	"testing"
	"time"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

func TestInteractionInsightsEmpty(t *testing.T) {
	got := InteractionInsightsAt(testRel(relationship.TagFriend), testNow)
	if len(got) != 1 || got[0] != "no interactions" {
		t.Errorf("insights = %v, want [no interactions]", got)
	}
}

func TestInteractionInsightsActiveHistory(t *testing.T) {
	r := testRel(relationship.TagFriend)
	r.Interactions = []relationship.Interaction{
		{Date: daysAgo(1), Type: relationship.InteractionCall},
		{Date: daysAgo(3), Type: relationship.InteractionMessage},
		{Date: daysAgo(10), Type: relationship.InteractionMeeting},
		{Date: daysAgo(20), Type: relationship.InteractionCall},
	}
	got := InteractionInsightsAt(r, testNow)
	for _, want := range []string{"recent", "regular", "variety"} {
		if !containsTag(got, want) {
			t.Errorf("insights = %v, missing %q", got, want)
		}
	}
	if containsTag(got, "infrequent") {
		t.Errorf("insights = %v, should not be infrequent", got)
	}
}

func TestInteractionInsightsInfrequent(t *testing.T) {
	r := testRel(relationship.TagFriend)
	r.Interactions = []relationship.Interaction{
		{Date: daysAgo(20), Type: relationship.InteractionCall},
	}
	got := InteractionInsightsAt(r, testNow)
	if !containsTag(got, "infrequent") {
		t.Errorf("insights = %v, missing \"infrequent\"", got)
	}
	if containsTag(got, "recent") {
		t.Errorf("insights = %v, should not be recent", got)
	}
}

func TestInteractionFrequency(t *testing.T) {
	r := testRel(relationship.TagFriend)
	if got := InteractionFrequencyAt(r, testNow); got != 0 {
		t.Errorf("frequency with no interactions = %d, want 0", got)
	}

	r.Interactions = []relationship.Interaction{{Date: daysAgo(10), Type: relationship.InteractionCall}}
	if got := InteractionFrequencyAt(r, testNow); got != 10 {
		t.Errorf("frequency with one interaction = %d, want 10", got)
	}

	r.Interactions = []relationship.Interaction{
		{Date: daysAgo(8), Type: relationship.InteractionCall},
		{Date: daysAgo(4), Type: relationship.InteractionCall},
		{Date: daysAgo(0), Type: relationship.InteractionCall},
	}
	if got := InteractionFrequencyAt(r, testNow); got != 4 {
		t.Errorf("frequency = %d, want 4", got)
	}
}

func TestGoalInsights(t *testing.T) {
	r := testRel(relationship.TagFriend)
	if got := GoalInsightsAt(r, testNow); len(got) != 1 || got[0] != "no goals" {
		t.Fatalf("insights = %v, want [no goals]", got)
	}

	r.Goals = []relationship.Goal{
		{Title: "done", Completed: true},
		{Title: "late", TargetDate: daysAgo(5)},
		{Title: "soon", TargetDate: testNow.AddDate(0, 0, 2)},
	}
	got := GoalInsightsAt(r, testNow)
	for _, want := range []string{"completed", "overdue", "upcoming", "due soon"} {
		if !containsTag(got, want) {
			t.Errorf("insights = %v, missing %q", got, want)
		}
	}
}

func TestDateInsights(t *testing.T) {
	r := testRel(relationship.TagFriend)
	if got := DateInsightsAt(r, testNow); len(got) != 1 || got[0] != "no dates" {
		t.Fatalf("insights = %v, want [no dates]", got)
	}

	r.ImportantDates = []relationship.ImportantDate{
		{Title: "bday", Date: time.Date(1990, testNow.Month(), testNow.Day()+5, 0, 0, 0, 0, time.UTC),
			Type: relationship.DateBirthday, Recurring: true},
		{Title: "anniv", Date: time.Date(2010, testNow.Month(), testNow.Day()-3, 0, 0, 0, 0, time.UTC),
			Type: relationship.DateAnniversary, Recurring: true},
		{Title: "visit", Date: testNow.AddDate(0, 0, 12), Type: relationship.DateOther},
	}
	got := DateInsightsAt(r, testNow)
	for _, want := range []string{"upcoming", "recent", "variety"} {
		if !containsTag(got, want) {
			t.Errorf("insights = %v, missing %q", got, want)
		}
	}
}

func TestMilestoneInsights(t *testing.T) {
	r := testRel(relationship.TagFriend)
	if got := MilestoneInsightsAt(r, testNow); len(got) != 1 || got[0] != "no milestones" {
		t.Fatalf("insights = %v, want [no milestones]", got)
	}

	r.Milestones = []relationship.Milestone{
		{Title: "first met", Date: daysAgo(400)},
		{Title: "moved in", Date: daysAgo(10)},
		{Title: "trip", Date: testNow.AddDate(0, 0, 20)},
	}
	got := MilestoneInsightsAt(r, testNow)
	for _, want := range []string{"recent", "upcoming", "variety"} {
		if !containsTag(got, want) {
			t.Errorf("insights = %v, missing %q", got, want)
		}
	}
}

func TestMilestoneProgress(t *testing.T) {
	r := testRel(relationship.TagFriend)
	if got := MilestoneProgressAt(r, testNow); got != 0 {
		t.Errorf("progress with no milestones = %d, want 0", got)
	}

	r.Milestones = []relationship.Milestone{{Title: "only", Date: daysAgo(5)}}
	if got := MilestoneProgressAt(r, testNow); got != 1 {
		t.Errorf("progress with one milestone = %d, want 1", got)
	}

	// Halfway between first and last.
	r.Milestones = []relationship.Milestone{
		{Title: "start", Date: daysAgo(10)},
		{Title: "end", Date: testNow.AddDate(0, 0, 10)},
	}
	if got := MilestoneProgressAt(r, testNow); got != 50 {
		t.Errorf("progress = %d, want 50", got)
	}
}

func TestMemoryInsightsScenario(t *testing.T) {
	// Three memories: two self-created and acknowledged, one from the other
	// person still unacknowledged.
	r := testRel(relationship.TagFriend)
	r.SharedMemories = []relationship.SharedMemory{
		{Title: "beach day", Date: daysAgo(90), CreatedBy: relationship.CreatedBySelf, Acknowledged: true},
		{Title: "concert", Date: daysAgo(60), CreatedBy: relationship.CreatedBySelf, Acknowledged: true},
		{Title: "dinner", Date: daysAgo(40), CreatedBy: relationship.CreatedByOther},
	}

	got := MemoryInsightsAt(r, testNow)
	for _, want := range []string{"unacknowledged", "balanced", "variety"} {
		if !containsTag(got, want) {
			t.Errorf("insights = %v, missing %q", got, want)
		}
	}

	if got := MemoryEngagement(r); got != 66 {
		t.Errorf("engagement = %d, want 66", got)
	}
}

func TestMemoryInsightsSelfHeavy(t *testing.T) {
	r := testRel(relationship.TagFriend)
	r.SharedMemories = []relationship.SharedMemory{
		{Title: "a", Date: daysAgo(10), CreatedBy: relationship.CreatedBySelf},
		{Title: "b", Date: daysAgo(11), CreatedBy: relationship.CreatedBySelf},
		{Title: "c", Date: daysAgo(12), CreatedBy: relationship.CreatedBySelf},
		{Title: "d", Date: daysAgo(13), CreatedBy: relationship.CreatedByOther},
	}
	got := MemoryInsightsAt(r, testNow)
	if !containsTag(got, "self-heavy") {
		t.Errorf("insights = %v, missing \"self-heavy\"", got)
	}
}

func TestMemoryEngagementEmpty(t *testing.T) {
	if got := MemoryEngagement(testRel(relationship.TagFriend)); got != 0 {
		t.Errorf("engagement with no memories = %d, want 0", got)
	}
}

func TestShouldCelebrate(t *testing.T) {
	cases := []struct {
		offset int
		want   bool
	}{
		{-3, true},
		{0, true},
		{5, true},
		{-10, false},
		{10, false},
	}
	for _, tc := range cases {
		m := relationship.Milestone{Title: "anniversary", Date: testNow.AddDate(0, 0, tc.offset)}
		if got := ShouldCelebrate(m, testNow); got != tc.want {
			t.Errorf("ShouldCelebrate(offset %d) = %v, want %v", tc.offset, got, tc.want)
		}
	}
}
