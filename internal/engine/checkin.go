package engine

import (
	"fmt"
	"time"

	"github.com/abritton2002/loyal-few/internal/relationship"
)

// Prompt is a suggested check-in question, typed so the UI can group them.
type Prompt struct {
	Text string `json:"text"`
	Kind string `json:"kind"` // general, specific, emotional, goal
}

// CheckInPrompts generates personalized check-in prompts from the
// relationship's current state: score band, contact recency, recent
// emotional tone, upcoming dates, and open goals.
func CheckInPrompts(r *relationship.Relationship) []Prompt {
	return CheckInPromptsAt(r, time.Now())
}

// CheckInPromptsAt is CheckInPrompts with an explicit reference time.
func CheckInPromptsAt(r *relationship.Relationship, now time.Time) []Prompt {
	var prompts []Prompt

	if r.ConnectionScore < 40 {
		prompts = append(prompts, Prompt{
			Text: fmt.Sprintf("Your connection with %s needs attention. What's one small way you can reach out today?", r.Name),
			Kind: "specific",
		})
	} else if r.ConnectionScore > 80 {
		prompts = append(prompts, Prompt{
			Text: fmt.Sprintf("You're doing great staying connected with %s. What's something you appreciate about this relationship?", r.Name),
			Kind: "emotional",
		})
	}

	if last := r.LastInteraction(); !last.IsZero() {
		days := daysBetween(last, now)
		if days > 14 {
			prompts = append(prompts, Prompt{
				Text: fmt.Sprintf("It's been %d days since you connected with %s. Want to schedule a catch-up?", days, r.Name),
				Kind: "specific",
			})
		} else if days < 3 {
			prompts = append(prompts, Prompt{
				Text: fmt.Sprintf("You recently connected with %s. How did that interaction make you feel?", r.Name),
				Kind: "emotional",
			})
		}
	}

	// Tone of the last few emotion log entries.
	if avg, ok := recentEmotionAverage(r.EmotionHistory); ok {
		if avg < 5 {
			prompts = append(prompts, Prompt{
				Text: fmt.Sprintf("Your recent interactions with %s have been challenging. What's one thing you can do to improve the connection?", r.Name),
				Kind: "emotional",
			})
		} else if avg > 8 {
			prompts = append(prompts, Prompt{
				Text: fmt.Sprintf("Your connection with %s is thriving. What's working well?", r.Name),
				Kind: "emotional",
			})
		}
	}

	if upcoming := UpcomingDatesAt(r, recentWindowDays, now); len(upcoming) > 0 {
		prompts = append(prompts, Prompt{
			Text: fmt.Sprintf("%s is coming up for %s. How do you want to mark it?", upcoming[0].Title, r.Name),
			Kind: "specific",
		})
	}

	for _, g := range r.Goals {
		if !g.Completed {
			prompts = append(prompts, Prompt{
				Text: fmt.Sprintf("You set a goal with %s: %q. What's the next step?", r.Name, g.Title),
				Kind: "goal",
			})
			break
		}
	}

	if len(prompts) == 0 {
		prompts = append(prompts, Prompt{
			Text: fmt.Sprintf("When did you last check in with %s?", r.Name),
			Kind: "general",
		})
	}

	return prompts
}

func recentEmotionAverage(history []relationship.EmotionEntry) (float64, bool) {
	if len(history) == 0 {
		return 0, false
	}
	recent := history
	if len(recent) > recentSampleSize {
		recent = recent[len(recent)-recentSampleSize:]
	}
	var sum float64
	for _, e := range recent {
		sum += float64(relationship.ClampRating(e.Rating))
	}
	return sum / float64(len(recent)), true
}
