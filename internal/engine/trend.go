package engine

import (
	"math"
	"sort"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// EmotionTrend computes the least-squares slope of rating against sequence
// position for a time-ordered emotion log. Positive means improving,
// negative declining. Fewer than two points is no trend.
//
// Position, not elapsed time, is the independent variable: ratings are not
// evenly spaced and a long quiet stretch should not exaggerate the slope.
func EmotionTrend(history []relationship.EmotionEntry) float64 {
	if len(history) < 2 {
		return 0
	}

	sorted := make([]relationship.EmotionEntry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	n := float64(len(sorted))
	var sumX, sumY, sumXY, sumX2 float64
	for i, e := range sorted {
		x := float64(i)
		y := float64(relationship.ClampRating(e.Rating))
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// Emotion insight thresholds.
const (
	trendImproving   = 0.5
	trendDeclining   = -0.5
	positiveAvg      = 8.0
	volatileStdDev   = 2.0
	minTrendSamples  = 3
	recentSampleSize = 3
)

// EmotionInsights classifies an emotion log into qualitative tags. With
// fewer than three points the only answer is "insufficient data".
func EmotionInsights(history []relationship.EmotionEntry) []string {
	if len(history) < minTrendSamples {
		return []string{"insufficient data"}
	}

	var sum float64
	for _, e := range history {
		sum += float64(relationship.ClampRating(e.Rating))
	}
	avg := sum / float64(len(history))

	var variance float64
	for _, e := range history {
		d := float64(relationship.ClampRating(e.Rating)) - avg
		variance += d * d
	}
	stdDev := math.Sqrt(variance / float64(len(history)))

	var insights []string
	switch trend := EmotionTrend(history); {
	case trend > trendImproving:
		insights = append(insights, "improving")
	case trend < trendDeclining:
		insights = append(insights, "declining")
	default:
		insights = append(insights, "stable")
	}

	if avg >= positiveAvg {
		insights = append(insights, "consistently positive")
	}
	if stdDev > volatileStdDev {
		insights = append(insights, "volatile")
	}

	// Compare the latest few ratings against the overall average to catch
	// short-term swings the slope smooths over.
	sorted := make([]relationship.EmotionEntry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	recent := sorted[len(sorted)-recentSampleSize:]
	var recentSum float64
	for _, e := range recent {
		recentSum += float64(relationship.ClampRating(e.Rating))
	}
	recentAvg := recentSum / float64(len(recent))
	if recentAvg > avg+1 {
		insights = append(insights, "recent upturn")
	} else if recentAvg < avg-1 {
		insights = append(insights, "recent dip")
	}

	return insights
}
