package engine

import (
	"testing"
	"time"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

func emotionLog(ratings ...int) []relationship.EmotionEntry {
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]relationship.EmotionEntry, len(ratings))
	for i, rating := range ratings {
		entries[i] = relationship.EmotionEntry{
			Date:   start.AddDate(0, 0, i),
			Rating: rating,
		}
	}
	return entries
}

func TestEmotionTrendDirection(t *testing.T) {
	if got := EmotionTrend(emotionLog(5, 7, 8)); got <= 0 {
		t.Errorf("rising log trend = %v, want > 0", got)
	}
	if got := EmotionTrend(emotionLog(8, 6, 5)); got >= 0 {
		t.Errorf("falling log trend = %v, want < 0", got)
	}
	if got := EmotionTrend(emotionLog(7, 7, 7)); got != 0 {
		t.Errorf("flat log trend = %v, want 0", got)
	}
}

func TestEmotionTrendTooFewPoints(t *testing.T) {
	if got := EmotionTrend(nil); got != 0 {
		t.Errorf("empty log trend = %v, want 0", got)
	}
	if got := EmotionTrend(emotionLog(9)); got != 0 {
		t.Errorf("single-point trend = %v, want 0", got)
	}
}

func TestEmotionTrendSortsByDate(t *testing.T) {
	// Entries arrive unordered; the slope follows chronology, not slice
	// order.
	entries := emotionLog(5, 7, 8)
	entries[0], entries[2] = entries[2], entries[0]
	if got := EmotionTrend(entries); got <= 0 {
		t.Errorf("trend over shuffled rising log = %v, want > 0", got)
	}
}

func TestEmotionInsightsInsufficientData(t *testing.T) {
	for _, log := range [][]relationship.EmotionEntry{nil, emotionLog(7), emotionLog(7, 8)} {
		got := EmotionInsights(log)
		if len(got) != 1 || got[0] != "insufficient data" {
			t.Errorf("EmotionInsights(%d points) = %v, want [insufficient data]", len(log), got)
		}
	}
}

func TestEmotionInsightsClassification(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    string
	}{
		{"improving", []int{4, 6, 8}, "improving"},
		{"declining", []int{8, 6, 4}, "declining"},
		{"stable", []int{6, 6, 6}, "stable"},
		{"consistently positive", []int{8, 8, 9}, "consistently positive"},
		{"volatile", []int{2, 9, 2, 9}, "volatile"},
	}
	for _, tc := range cases {
		got := EmotionInsights(emotionLog(tc.ratings...))
		if !containsTag(got, tc.want) {
			t.Errorf("%s: EmotionInsights(%v) = %v, missing %q", tc.name, tc.ratings, got, tc.want)
		}
	}
}

func TestEmotionInsightsRecentDip(t *testing.T) {
	got := EmotionInsights(emotionLog(8, 8, 8, 8, 8, 8, 3, 3, 3))
	if !containsTag(got, "recent dip") {
		t.Errorf("EmotionInsights = %v, missing \"recent dip\"", got)
	}
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
