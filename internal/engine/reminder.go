package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// ShouldRemind reports whether the relationship is due for a check-in.
func ShouldRemind(r *relationship.Relationship) bool {
	return ShouldRemindAt(r, time.Now())
}

// ShouldRemindAt is ShouldRemind with an explicit reference time. A
// relationship with no interactions is always due. The boundary is
// inclusive: exactly reminderFrequency days since the last interaction
// counts as due. A non-positive frequency means "due immediately".
func ShouldRemindAt(r *relationship.Relationship, now time.Time) bool {
	last := r.LastInteraction()
	if last.IsZero() {
		return true
	}
	if r.ReminderFrequency <= 0 {
		return true
	}
	return daysBetween(last, now) >= r.ReminderFrequency
}

// NextReminderDate is the last interaction plus the reminder frequency.
func NextReminderDate(r *relationship.Relationship) time.Time {
	return NextReminderDateAt(r, time.Now())
}

// NextReminderDateAt is NextReminderDate with an explicit reference time.
// With no interactions, or a non-positive frequency, the reminder is due
// now.
func NextReminderDateAt(r *relationship.Relationship, now time.Time) time.Time {
	last := r.LastInteraction()
	if last.IsZero() || r.ReminderFrequency <= 0 {
		return now
	}
	return last.AddDate(0, 0, r.ReminderFrequency)
}

// ReminderMessage composes the check-in nudge: how long it has been, which
// kind of relationship this is, the current score, and an encouragement
// keyed to the score band.
func ReminderMessage(r *relationship.Relationship) string {
	return ReminderMessageAt(r, time.Now())
}

// ReminderMessageAt is ReminderMessage with an explicit reference time.
func ReminderMessageAt(r *relationship.Relationship, now time.Time) string {
	last := r.LastInteraction()

	var elapsed string
	if last.IsZero() {
		elapsed = fmt.Sprintf("No interactions with %s recorded yet", r.Name)
	} else {
		switch days := daysBetween(last, now); days {
		case 0:
			elapsed = fmt.Sprintf("Your last interaction with %s was today", r.Name)
		case 1:
			elapsed = fmt.Sprintf("Your last interaction with %s was yesterday", r.Name)
		default:
			elapsed = fmt.Sprintf("Your last interaction with %s was %d days ago", r.Name, days)
		}
	}

	category := strings.ToLower(string(r.PrimaryTag()))
	score := r.ConnectionScore

	var encouragement string
	switch {
	case score >= 80:
		encouragement = fmt.Sprintf("Your %s connection is strong. Keep it up.", category)
	case score >= 60:
		encouragement = fmt.Sprintf("Your %s connection is good.", category)
	default:
		encouragement = fmt.Sprintf("Your %s connection needs strengthening. Reach out soon.", category)
	}

	return fmt.Sprintf("%s. Connection score: %d. %s", elapsed, score, encouragement)
}
