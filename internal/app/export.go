package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gamedex-project/gamedex/internal/config"
	"github.com/gamedex-project/gamedex/internal/snapshot"
	"github.com/gamedex-project/gamedex/internal/store"
)

var exportOutDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Rewrite the catalog snapshot from the database",
	Long: `Rewrite the full catalog snapshot from the database without fetching.

Useful after moving the artifacts or when the snapshot file was lost. The
new-arrivals feed is not touched; it only grows during syncs.`,
	Example: `  # Rewrite All.Games.json in the current directory
  gamedex export

  # Write it somewhere else
  gamedex export --out-dir /srv/gamedex`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOutDir, "out-dir", ".", "directory for the catalog snapshot")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	defaults := config.Default()
	catalogPath := filepath.Join(exportOutDir, defaults.CatalogPath)
	feedPath := filepath.Join(exportOutDir, defaults.FeedPath)

	projector := snapshot.New(st, catalogPath, feedPath, newLogger(false))
	count, err := projector.WriteCatalog()
	if err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	fmt.Printf("Wrote %d games to %s\n", count, catalogPath)
	return nil
}
