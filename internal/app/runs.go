package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamedex-project/gamedex/internal/output"
	"github.com/gamedex-project/gamedex/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show sync run history",
	Long: `Display the recorded sync runs, newest first.

Each row shows when the run started, how many candidates it observed, and
how many of them were new arrivals.`,
	Example: `  # Show the last 10 runs
  gamedex runs

  # Show everything
  gamedex runs --limit 0`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 10, "maximum runs to show (0 for all)")

	RootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	dbPath, err := getDBPath()
	if err != nil {
		return err
	}

	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	runs, err := st.ListRuns(runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	newCounts := make(map[int64]int, len(runs))
	for _, run := range runs {
		n, err := st.CountNewInRun(run.ID)
		if err != nil {
			return fmt.Errorf("failed to count new games for run %d: %w", run.ID, err)
		}
		newCounts[run.ID] = n
	}

	fmt.Print(output.RenderRunTable(runs, newCounts))
	return nil
}
