package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gamedex-project/gamedex/internal/config"
	"github.com/gamedex-project/gamedex/internal/output"
	"github.com/gamedex-project/gamedex/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog state and the most recent run",
	Long: `Display the current state of the gamedex catalog.

Shows:
  • Database location and size
  • Number of games in the catalog
  • The most recent run and what it found`,
	Example: `  # Check status
  gamedex status`,
	RunE: runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	dbPath, err := getDBPath()
	if err != nil {
		return err
	}

	fi, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("gamedex is not set up yet. Run 'gamedex sync' to seed the catalog.")
			return nil
		}
		return fmt.Errorf("failed to stat database: %w", err)
	}

	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	gameCount, err := st.CountGames()
	if err != nil {
		return fmt.Errorf("failed to count games: %w", err)
	}

	latest, err := st.LatestRun()
	if err != nil {
		return fmt.Errorf("failed to read latest run: %w", err)
	}

	fmt.Printf("Database:  %s (%d KB)\n", dbPath, fi.Size()/1024)
	fmt.Printf("Games:     %d\n", gameCount)

	if latest == nil {
		fmt.Println("Last run:  never")
		return nil
	}

	newCount, err := st.CountNewInRun(latest.ID)
	if err != nil {
		return fmt.Errorf("failed to count new games: %w", err)
	}
	fmt.Printf("Last run:  #%d, %s (%d observed, %d new)\n",
		latest.ID, output.RelativeTime(latest.StartedAt), latest.ObservedCount, newCount)

	printArtifactFreshness()
	return nil
}

// printArtifactFreshness reports the default artifacts when they exist in the
// working directory. Artifacts written elsewhere via --out-dir are not
// tracked; the database does not record where they went.
func printArtifactFreshness() {
	defaults := config.Default()
	for _, path := range []string{defaults.CatalogPath, defaults.FeedPath} {
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		fmt.Printf("Artifact:  %s (updated %s)\n", path, output.RelativeTime(fi.ModTime()))
	}
}
