package engine

import (
	"testing"
	"time"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

func recurring(month time.Month, day int) relationship.ImportantDate {
	return relationship.ImportantDate{
		Title:     "Anniversary",
		Date:      time.Date(1990, month, day, 0, 0, 0, 0, time.UTC),
		Type:      relationship.DateAnniversary,
		Recurring: true,
	}
}

func TestNextOccurrenceRecurring(t *testing.T) {
	d := recurring(time.June, 15)

	// Before the month/day this year: resolves to this year.
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if got := NextOccurrence(d, now); !got.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("NextOccurrence = %v, want 2024-06-15", got)
	}

	// After it: rolls to next year.
	now = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	if got := NextOccurrence(d, now); !got.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("NextOccurrence = %v, want 2025-06-15", got)
	}
}

func TestNextOccurrenceToday(t *testing.T) {
	// A recurring date falling on today resolves to today even late in the
	// day, because the comparison is day-granular.
	d := recurring(time.June, 15)
	now := time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)
	if got := NextOccurrence(d, now); !got.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("NextOccurrence = %v, want today", got)
	}
}

func TestNextOccurrenceNonRecurring(t *testing.T) {
	d := relationship.ImportantDate{
		Title: "Graduation",
		Date:  time.Date(2020, 5, 20, 0, 0, 0, 0, time.UTC),
		Type:  relationship.DateOther,
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := NextOccurrence(d, now); !got.Equal(d.Date) {
		t.Errorf("non-recurring NextOccurrence = %v, want stored date %v", got, d.Date)
	}
}

func TestDateWithinWindowLookBack(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	// Occurred 3 days ago this year: recently passed.
	passed := recurring(time.May, 7)
	if !DateWithinWindow(passed, now, 7, 7) {
		t.Error("date 3 days past should be within the look-back window")
	}

	// Occurred months ago this year: its next occurrence is far out, and it
	// is long past the look-back window. Not "recent" in either direction.
	old := recurring(time.January, 10)
	if DateWithinWindow(old, now, 7, 7) {
		t.Error("date 4 months past should not be within a 7-day window")
	}
}

func TestDateWithinWindowAhead(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	soon := recurring(time.May, 15)
	if !DateWithinWindow(soon, now, 7, 0) {
		t.Error("date 5 days ahead should be within a 7-day window")
	}
	far := recurring(time.July, 1)
	if DateWithinWindow(far, now, 7, 0) {
		t.Error("date 7 weeks ahead should not be within a 7-day window")
	}
}

func TestUpcomingDatesSortedAndFiltered(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := testRel(relationship.TagFriend)
	r.ImportantDates = []relationship.ImportantDate{
		recurring(time.May, 20),
		recurring(time.May, 5),
		recurring(time.December, 25), // outside the horizon
	}

	got := UpcomingDatesAt(r, 30, now)
	if len(got) != 2 {
		t.Fatalf("got %d upcoming dates, want 2", len(got))
	}
	if got[0].Date.Month() != time.May || got[0].Date.Day() != 5 {
		t.Errorf("first upcoming = %v, want May 5", got[0].Date)
	}
	if got[1].Date.Day() != 20 {
		t.Errorf("second upcoming = %v, want May 20", got[1].Date)
	}
}
