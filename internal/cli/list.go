package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abritton2002/loyal-few/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List relationships by connection score",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rels, err := db.ListRelationships()
	if err != nil {
		return fmt.Errorf("list relationships: %w", err)
	}
	if len(rels) == 0 {
		fmt.Println("no relationships yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tSTATUS\tNAME\tCATEGORY\tLAST CONTACT")
	for i := range rels {
		r := &rels[i]
		status := engine.StatusFor(r.ConnectionScore)

		lastContact := "never"
		if last := r.LastInteraction(); !last.IsZero() {
			lastContact = last.Format("2006-01-02")
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.ConnectionScore, status.Label, r.Name, r.PrimaryTag(), lastContact)
	}
	return w.Flush()
}
