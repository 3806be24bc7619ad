package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abritton2002/loyal-few/internal/engine"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show relationships that are due for a check-in",
	RunE:  runRemind,
}

func runRemind(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rels, err := db.ListRelationships()
	if err != nil {
		return fmt.Errorf("list relationships: %w", err)
	}

	due := 0
	for i := range rels {
		if !engine.ShouldRemind(&rels[i]) {
			continue
		}
		due++
		fmt.Println(engine.ReminderMessage(&rels[i]))
	}
	if due == 0 {
		fmt.Println("all caught up")
	}
	return nil
}
