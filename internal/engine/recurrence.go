package engine

import (
	"sort"
	"time"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// The recurrence resolver is the single home for year-rollover arithmetic.
// Everything that needs "when does this date next happen" (scoring, date
// insights, reminders, check-in prompts) goes through NextOccurrence so the
// edge cases agree everywhere: comparisons are at day granularity, and a
// recurring date falling on today resolves to today, not next year.

// NextOccurrence resolves an important date against now. Non-recurring
// dates are their stored date. Recurring dates resolve to month/day in the
// current year, or the next year once that has passed.
func NextOccurrence(d relationship.ImportantDate, now time.Time) time.Time {
	if !d.Recurring {
		return d.Date
	}
	today := startOfDay(now)
	cand := time.Date(now.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, now.Location())
	if cand.Before(today) {
		cand = time.Date(now.Year()+1, d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, now.Location())
	}
	return cand
}

// rawOccurrence is the current-year occurrence without the rollover bump,
// used for "recently passed" checks. A recurring event 3 days ago this year
// and one 363 days ago are different things.
func rawOccurrence(d relationship.ImportantDate, now time.Time) time.Time {
	if !d.Recurring {
		return d.Date
	}
	return time.Date(now.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, now.Location())
}

// DateWithinWindow reports whether the date's resolved occurrence falls
// within aheadDays in the future, or its raw occurrence fell within
// behindDays in the past. Both directions are evaluated independently.
func DateWithinWindow(d relationship.ImportantDate, now time.Time, aheadDays, behindDays int) bool {
	today := startOfDay(now)

	occ := NextOccurrence(d, now)
	if !occ.Before(today) && !occ.After(today.AddDate(0, 0, aheadDays)) {
		return true
	}

	raw := rawOccurrence(d, now)
	if !raw.After(today) && !raw.Before(today.AddDate(0, 0, -behindDays)) {
		return true
	}
	return false
}

// UpcomingDates returns the relationship's important dates whose resolved
// occurrence falls within horizonDays from now, sorted soonest first.
func UpcomingDates(r *relationship.Relationship, horizonDays int) []relationship.ImportantDate {
	return UpcomingDatesAt(r, horizonDays, time.Now())
}

// UpcomingDatesAt is UpcomingDates with an explicit reference time.
func UpcomingDatesAt(r *relationship.Relationship, horizonDays int, now time.Time) []relationship.ImportantDate {
	today := startOfDay(now)
	limit := today.AddDate(0, 0, horizonDays)

	var upcoming []relationship.ImportantDate
	for _, d := range r.ImportantDates {
		occ := NextOccurrence(d, now)
		if occ.IsZero() || occ.Before(today) || occ.After(limit) {
			continue
		}
		upcoming = append(upcoming, d)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return NextOccurrence(upcoming[i], now).Before(NextOccurrence(upcoming[j], now))
	})
	return upcoming
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
