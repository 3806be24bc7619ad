package engine

import (
	"math"
	"time"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// categoryPolicy holds the per-category scoring knobs. Closer categories
// start higher and decay faster: they are expected to need more frequent
// contact.
type categoryPolicy struct {
	base   float64
	perDay float64 // decay rate per elapsed day since last interaction
}

// tagPriority resolves the effective category when a relationship carries
// several tags. First match wins.
var tagPriority = []relationship.Tag{
	relationship.TagSpouse,
	relationship.TagPartner,
	relationship.TagFamily,
	relationship.TagMentor,
	relationship.TagMentee,
	relationship.TagFriend,
	relationship.TagColleague,
	relationship.TagBusiness,
}

var categoryPolicies = map[relationship.Tag]categoryPolicy{
	relationship.TagSpouse:    {base: 70, perDay: 0.8},
	relationship.TagPartner:   {base: 70, perDay: 0.8},
	relationship.TagFamily:    {base: 65, perDay: 0.6},
	relationship.TagMentor:    {base: 60, perDay: 0.5},
	relationship.TagMentee:    {base: 60, perDay: 0.5},
	relationship.TagFriend:    {base: 55, perDay: 0.4},
	relationship.TagColleague: {base: 50, perDay: 0.3},
	relationship.TagBusiness:  {base: 50, perDay: 0.3},
}

var defaultPolicy = categoryPolicy{base: 50, perDay: 0.4}

const (
	recentWindowDays = 30

	maxDecayPenalty = 30.0
	staleAfterDays  = 60
	stalePerDay     = 0.5
	maxStalePenalty = 15.0

	recentBoostPer = 3.0
	maxRecentBoost = 15.0

	emotionMidpoint   = 5.0
	emotionScale      = 2.0
	emotionCloseBonus = 1.5
	minEmotionDelta   = -10.0
	maxEmotionDelta   = 15.0

	goalBoostPer = 2.0
	maxGoalBoost = 10.0

	memoryFreshBoost    = 3.0
	milestoneFreshBoost = 3.0
	upcomingDateBoost   = 5.0
)

func policyFor(tags []relationship.Tag) categoryPolicy {
	for _, want := range tagPriority {
		for _, t := range tags {
			if t == want {
				return categoryPolicies[want]
			}
		}
	}
	return defaultPolicy
}

// ConnectionScore computes the 0-100 connection score for a relationship
// snapshot as of now.
func ConnectionScore(r *relationship.Relationship) int {
	return ConnectionScoreAt(r, time.Now())
}

// ConnectionScoreAt is ConnectionScore with an explicit reference time.
//
// The model: category base, then recency decay, then bounded boosts for
// recent activity, emotional tone, completed goals, fresh memories and
// milestones, and upcoming important dates. A relationship with no
// interactions rests at exactly its category base.
func ConnectionScoreAt(r *relationship.Relationship, now time.Time) int {
	pol := policyFor(r.Tags)

	if len(r.Interactions) == 0 {
		return int(math.Round(pol.base))
	}

	score := pol.base

	// Recency decay. Capped so one long gap cannot zero the score on its
	// own, but gaps past the stale threshold bite harder.
	days := daysBetween(r.LastInteraction(), now)
	penalty := math.Min(float64(days)*pol.perDay, maxDecayPenalty)
	if days > staleAfterDays {
		penalty += math.Min(float64(days-staleAfterDays)*stalePerDay, maxStalePenalty)
	}
	score -= penalty

	// Recent-activity boost, diminishing via the cap.
	var recent, rated int
	var ratingSum float64
	for _, i := range r.Interactions {
		if daysBetween(i.Date, now) > recentWindowDays {
			continue
		}
		recent++
		if i.EmotionRating != 0 {
			rated++
			ratingSum += float64(relationship.ClampRating(i.EmotionRating))
		}
	}
	score += math.Min(float64(recent)*recentBoostPer, maxRecentBoost)

	// Emotional adjustment from rated interactions in the window. Tone
	// matters more for the closest categories.
	if rated > 0 {
		delta := (ratingSum/float64(rated) - emotionMidpoint) * emotionScale
		if r.HasTag(relationship.TagSpouse) || r.HasTag(relationship.TagPartner) {
			delta *= emotionCloseBonus
		}
		score += clampFloat(delta, minEmotionDelta, maxEmotionDelta)
	}

	// Completed goals only ever help.
	completed := 0
	for _, g := range r.Goals {
		if g.Completed {
			completed++
		}
	}
	score += math.Min(float64(completed)*goalBoostPer, maxGoalBoost)

	if anyMemoryWithin(r.SharedMemories, now, recentWindowDays) {
		score += memoryFreshBoost
	}
	if anyMilestoneWithin(r.Milestones, now, recentWindowDays) {
		score += milestoneFreshBoost
	}

	if len(UpcomingDatesAt(r, recentWindowDays, now)) > 0 {
		score += upcomingDateBoost
	}

	return int(math.Round(clampFloat(score, 0, 100)))
}

// ScoreStatus is the qualitative band for a connection score, with the
// color token the UI renders it in.
type ScoreStatus struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatusFor maps a score to its band. Bands are half-open with an
// inclusive lower bound.
func StatusFor(score int) ScoreStatus {
	switch {
	case score >= 90:
		return ScoreStatus{Label: "Excellent", Color: "#10B981"}
	case score >= 75:
		return ScoreStatus{Label: "Strong", Color: "#3B82F6"}
	case score >= 60:
		return ScoreStatus{Label: "Good", Color: "#60A5FA"}
	case score >= 45:
		return ScoreStatus{Label: "Needs attention", Color: "#F59E0B"}
	case score >= 30:
		return ScoreStatus{Label: "Weakening", Color: "#F97316"}
	default:
		return ScoreStatus{Label: "Critical", Color: "#EF4444"}
	}
}

func anyMemoryWithin(mems []relationship.SharedMemory, now time.Time, days int) bool {
	for _, m := range mems {
		if !m.Date.After(now) && daysBetween(m.Date, now) <= days {
			return true
		}
	}
	return false
}

func anyMilestoneWithin(ms []relationship.Milestone, now time.Time, days int) bool {
	for _, m := range ms {
		if !m.Date.After(now) && daysBetween(m.Date, now) <= days {
			return true
		}
	}
	return false
}

// daysBetween returns whole days from t to now, never negative. Callers
// check for a zero t ("never") themselves before asking for a gap.
func daysBetween(t, now time.Time) int {
	if t.IsZero() || t.After(now) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
