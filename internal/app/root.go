package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath string

	// RootCmd is the root command for gamedex
	RootCmd = &cobra.Command{
		Use:   "gamedex",
		Short: "Incremental game catalog discovery and snapshot sync",
		Long: `gamedex scrapes a game listing site, reconciles what it finds against a
persistent catalog, and maintains two JSON artifacts: a full catalog
snapshot and a feed of newly discovered titles.

The first sync seeds the catalog baseline; every sync after that reports
only the titles that were not known before.

Quick Start:
  1. gamedex sync          # seed the catalog (first run)
  2. gamedex sync          # later runs report new arrivals
  3. gamedex runs          # review run history

Examples:
  # Sync against the default listing site
  gamedex sync

  # Sync from a saved page instead of the network
  gamedex sync --input page.html

  # Check catalog state
  gamedex status

  # Rewrite the catalog snapshot without fetching
  gamedex export`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := getDBPath()
			fmt.Println("gamedex: incremental game catalog discovery")
			fmt.Println()
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				fmt.Println("Run 'gamedex sync' to seed the catalog.")
			} else {
				fmt.Println("Tip: Run 'gamedex status' to check catalog state.")
				fmt.Println("     Run 'gamedex runs' to review sync history.")
			}
			fmt.Println("Run 'gamedex --help' for all commands.")
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.gamedex/gamedex.db)")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
