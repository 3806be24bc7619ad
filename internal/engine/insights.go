package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// Insight generators return short qualitative tags for UI copy. They never
// feed back into the score. Each generator answers independent yes/no
// conditions, so tags can co-occur; an empty collection yields a single
// "no X" tag.

// InteractionInsights tags the interaction history.
func InteractionInsights(r *relationship.Relationship) []string {
	return InteractionInsightsAt(r, time.Now())
}

// InteractionInsightsAt is InteractionInsights with an explicit reference time.
func InteractionInsightsAt(r *relationship.Relationship, now time.Time) []string {
	if len(r.Interactions) == 0 {
		return []string{"no interactions"}
	}

	var insights []string

	recent := 0
	windowed := 0
	types := map[relationship.InteractionType]bool{}
	for _, i := range r.Interactions {
		days := daysBetween(i.Date, now)
		if i.Date.After(now) {
			continue
		}
		if days <= 7 {
			recent++
		}
		if days <= recentWindowDays {
			windowed++
			types[i.Type] = true
		}
	}

	if recent > 0 {
		insights = append(insights, "recent")
	}
	if windowed >= 4 {
		insights = append(insights, "regular")
	} else {
		insights = append(insights, "infrequent")
	}
	if len(types) >= 3 {
		insights = append(insights, "variety")
	}

	return insights
}

// InteractionFrequency is the average number of days between consecutive
// interactions. One interaction reports days since it; none reports zero.
func InteractionFrequency(r *relationship.Relationship) int {
	return InteractionFrequencyAt(r, time.Now())
}

// InteractionFrequencyAt is InteractionFrequency with an explicit reference time.
func InteractionFrequencyAt(r *relationship.Relationship, now time.Time) int {
	switch len(r.Interactions) {
	case 0:
		return 0
	case 1:
		return daysBetween(r.Interactions[0].Date, now)
	}

	sorted := make([]relationship.Interaction, len(r.Interactions))
	copy(sorted, r.Interactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	total := 0
	for i := 1; i < len(sorted); i++ {
		total += daysBetween(sorted[i-1].Date, sorted[i].Date)
	}
	return total / (len(sorted) - 1)
}

// GoalInsights tags the goal list.
func GoalInsights(r *relationship.Relationship) []string {
	return GoalInsightsAt(r, time.Now())
}

// GoalInsightsAt is GoalInsights with an explicit reference time.
func GoalInsightsAt(r *relationship.Relationship, now time.Time) []string {
	if len(r.Goals) == 0 {
		return []string{"no goals"}
	}

	var completed, overdue, upcoming, dueSoon bool
	for _, g := range r.Goals {
		if g.Completed {
			completed = true
			continue
		}
		if g.TargetDate.IsZero() {
			continue
		}
		if g.TargetDate.Before(now) {
			overdue = true
		} else {
			upcoming = true
			if daysBetween(now, g.TargetDate) <= 3 {
				dueSoon = true
			}
		}
	}

	var insights []string
	if completed {
		insights = append(insights, "completed")
	}
	if overdue {
		insights = append(insights, "overdue")
	}
	if upcoming {
		insights = append(insights, "upcoming")
	}
	if dueSoon {
		insights = append(insights, "due soon")
	}
	return insights
}

// DateInsights tags the important-date list. Recurrence is resolved through
// the resolver, never re-derived here.
func DateInsights(r *relationship.Relationship) []string {
	return DateInsightsAt(r, time.Now())
}

// DateInsightsAt is DateInsights with an explicit reference time.
func DateInsightsAt(r *relationship.Relationship, now time.Time) []string {
	if len(r.ImportantDates) == 0 {
		return []string{"no dates"}
	}

	var insights []string

	if len(UpcomingDatesAt(r, recentWindowDays, now)) > 0 {
		insights = append(insights, "upcoming")
	}

	recent := false
	types := map[relationship.DateType]bool{}
	today := startOfDay(now)
	for _, d := range r.ImportantDates {
		raw := rawOccurrence(d, now)
		if !raw.After(today) && !raw.Before(today.AddDate(0, 0, -7)) {
			recent = true
		}
		types[d.Type] = true
	}
	if recent {
		insights = append(insights, "recent")
	}
	if len(types) >= 3 {
		insights = append(insights, "variety")
	}

	return insights
}

// MilestoneInsights tags the milestone list.
func MilestoneInsights(r *relationship.Relationship) []string {
	return MilestoneInsightsAt(r, time.Now())
}

// MilestoneInsightsAt is MilestoneInsights with an explicit reference time.
func MilestoneInsightsAt(r *relationship.Relationship, now time.Time) []string {
	if len(r.Milestones) == 0 {
		return []string{"no milestones"}
	}

	var recent, upcoming bool
	titles := map[string]bool{}
	for _, m := range r.Milestones {
		if m.Date.After(now) {
			upcoming = true
		} else if daysBetween(m.Date, now) <= recentWindowDays {
			recent = true
		}
		titles[strings.ToLower(m.Title)] = true
	}

	var insights []string
	if recent {
		insights = append(insights, "recent")
	}
	if upcoming {
		insights = append(insights, "upcoming")
	}
	if len(titles) > 2 {
		insights = append(insights, "variety")
	}
	return insights
}

// MilestoneProgress places now on the timeline between the first and last
// milestone, as a 0-100 percentage. A single milestone counts as barely
// started; none as zero.
func MilestoneProgress(r *relationship.Relationship) int {
	return MilestoneProgressAt(r, time.Now())
}

// MilestoneProgressAt is MilestoneProgress with an explicit reference time.
func MilestoneProgressAt(r *relationship.Relationship, now time.Time) int {
	switch len(r.Milestones) {
	case 0:
		return 0
	case 1:
		return 1
	}

	sorted := make([]relationship.Milestone, len(r.Milestones))
	copy(sorted, r.Milestones)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	total := sorted[len(sorted)-1].Date.Sub(sorted[0].Date)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(sorted[0].Date)
	progress := float64(elapsed) / float64(total)
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	return int(progress * 100)
}

// MemoryInsights tags the shared-memory list, including who contributes.
func MemoryInsights(r *relationship.Relationship) []string {
	return MemoryInsightsAt(r, time.Now())
}

// MemoryInsightsAt is MemoryInsights with an explicit reference time.
func MemoryInsightsAt(r *relationship.Relationship, now time.Time) []string {
	if len(r.SharedMemories) == 0 {
		return []string{"no memories"}
	}

	var recent, unacknowledged bool
	var self, other int
	titles := map[string]bool{}
	for _, m := range r.SharedMemories {
		if !m.Date.After(now) && daysBetween(m.Date, now) <= recentWindowDays {
			recent = true
		}
		if !m.Acknowledged {
			unacknowledged = true
		}
		titles[strings.ToLower(m.Title)] = true
		switch m.CreatedBy {
		case relationship.CreatedBySelf:
			self++
		case relationship.CreatedByOther:
			other++
		}
	}

	var insights []string
	if recent {
		insights = append(insights, "recent")
	}
	if unacknowledged {
		insights = append(insights, "unacknowledged")
	}
	if len(titles) > 2 {
		insights = append(insights, "variety")
	}

	// Contribution balance only means something once both sides have
	// recorded at least one memory.
	if self > 0 && other > 0 {
		ratio := float64(self) / float64(other)
		switch {
		case ratio > 2:
			insights = append(insights, "self-heavy")
		case ratio < 0.5:
			insights = append(insights, "other-heavy")
		default:
			insights = append(insights, "balanced")
		}
	}

	return insights
}

// MemoryEngagement is the percentage of shared memories that have been
// acknowledged, floored. Zero when there are no memories.
func MemoryEngagement(r *relationship.Relationship) int {
	if len(r.SharedMemories) == 0 {
		return 0
	}
	acknowledged := 0
	for _, m := range r.SharedMemories {
		if m.Acknowledged {
			acknowledged++
		}
	}
	return acknowledged * 100 / len(r.SharedMemories)
}

// ShouldCelebrate reports whether a milestone is close enough, in either
// direction, to be worth surfacing.
func ShouldCelebrate(m relationship.Milestone, now time.Time) bool {
	var days int
	if m.Date.After(now) {
		days = daysBetween(now, m.Date)
	} else {
		days = daysBetween(m.Date, now)
	}
	return days <= 7
}
