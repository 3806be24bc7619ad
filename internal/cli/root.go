package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abritton2002/loyal-few/internal/config"
	"github.com/abritton2002/loyal-few/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "loyalfew",
	Short: "Track the relationships that matter",
	Long:  "Loyal Few keeps score of your closest relationships: who you've talked to, who needs attention, and which dates are coming up. Single Go binary, local SQLite.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(remindCmd)
}

// openDB resolves the database path from config and opens it.
func openDB() (*store.DB, error) {
	cfg := config.LoadOrDefault()

	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	return store.Open(dbPath)
}
