package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abritton2002/loyal-few/internal/engine"
	"github.com/abritton2002/loyal-few/internal/relationship"
	"github.com/abritton2002/loyal-few/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show <name or id>",
	Short: "Show one relationship's score, insights, and reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rel, err := findRelationship(db, args[0])
	if err != nil {
		return err
	}

	status := engine.StatusFor(rel.ConnectionScore)
	fmt.Printf("%s (%s)\n", rel.Name, rel.PrimaryTag())
	fmt.Printf("  score: %d (%s)\n", rel.ConnectionScore, status.Label)

	if last := rel.LastInteraction(); !last.IsZero() {
		fmt.Printf("  last contact: %s\n", last.Format("2006-01-02"))
	} else {
		fmt.Println("  last contact: never")
	}

	printTags := func(label string, tags []string) {
		fmt.Printf("  %s: %s\n", label, strings.Join(tags, ", "))
	}
	printTags("interactions", engine.InteractionInsights(rel))
	printTags("goals", engine.GoalInsights(rel))
	printTags("dates", engine.DateInsights(rel))
	printTags("milestones", engine.MilestoneInsights(rel))
	printTags("memories", engine.MemoryInsights(rel))
	printTags("emotions", engine.EmotionInsights(rel.EmotionHistory))

	if upcoming := engine.UpcomingDates(rel, 30); len(upcoming) > 0 {
		fmt.Println("  coming up:")
		for _, d := range upcoming {
			fmt.Printf("    %s (%s)\n", d.Title, d.Type)
		}
	}

	if engine.ShouldRemind(rel) {
		fmt.Printf("\n%s\n", engine.ReminderMessage(rel))
	}
	return nil
}

// findRelationship looks up by exact ID first, then case-insensitive name
// prefix.
func findRelationship(db *store.DB, key string) (*relationship.Relationship, error) {
	if rel, err := db.GetRelationship(key); err != nil {
		return nil, err
	} else if rel != nil {
		return rel, nil
	}

	rels, err := db.ListRelationships()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(key)
	for i := range rels {
		if strings.HasPrefix(strings.ToLower(rels[i].Name), needle) {
			return &rels[i], nil
		}
	}
	return nil, fmt.Errorf("no relationship matching %q", key)
}
