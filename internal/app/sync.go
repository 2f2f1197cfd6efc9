package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gamedex-project/gamedex/internal/catalog"
	"github.com/gamedex-project/gamedex/internal/config"
	"github.com/gamedex-project/gamedex/internal/extract"
	"github.com/gamedex-project/gamedex/internal/fetch"
	"github.com/gamedex-project/gamedex/internal/output"
	"github.com/gamedex-project/gamedex/internal/snapshot"
	"github.com/gamedex-project/gamedex/internal/store"
)

var (
	syncURL         string
	syncInput       string
	syncOutDir      string
	syncTimeout     time.Duration
	syncMetricsAddr string
	syncQuiet       bool
	syncVerbose     bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the listing page and reconcile it against the catalog",
	Long: `Fetch the game listing page, extract candidate titles, and reconcile them
against the persistent catalog.

The first sync seeds the baseline: every title is recorded but none are
reported as new. Subsequent syncs rewrite the catalog snapshot and prepend
any newly discovered titles to the new-arrivals feed. A sync that finds no
candidates records the run but leaves both artifacts untouched.

With --input the page is read from a file instead of the network, which is
useful for replaying saved pages or testing.`,
	Example: `  # Sync against the default listing site
  gamedex sync

  # Replay a saved page
  gamedex sync --input page.html

  # Write artifacts somewhere else
  gamedex sync --out-dir /srv/gamedex

  # Expose Prometheus metrics during the run
  gamedex sync --metrics-addr :9190`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncURL, "url", "", "listing page URL (default: built-in source)")
	syncCmd.Flags().StringVar(&syncInput, "input", "", "read page markup from a file instead of fetching")
	syncCmd.Flags().StringVar(&syncOutDir, "out-dir", ".", "directory for the JSON artifacts")
	syncCmd.Flags().DurationVar(&syncTimeout, "timeout", 0, "page fetch timeout (default: 15s)")
	syncCmd.Flags().StringVar(&syncMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	syncCmd.Flags().BoolVarP(&syncQuiet, "quiet", "q", false, "suppress the summary output")
	syncCmd.Flags().BoolVarP(&syncVerbose, "verbose", "v", false, "enable debug logging")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if syncURL != "" {
		cfg.SourceURL = syncURL
	}
	if syncTimeout > 0 {
		cfg.Timeout = syncTimeout
	}
	cfg.MetricsAddr = syncMetricsAddr
	cfg.Verbose = syncVerbose
	cfg.CatalogPath = filepath.Join(syncOutDir, cfg.CatalogPath)
	cfg.FeedPath = filepath.Join(syncOutDir, cfg.FeedPath)

	var err error
	cfg.DBPath, err = getDBPath()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := newLogger(cfg.Verbose)

	lock, err := acquireRunLock(cfg.DBPath)
	if err != nil {
		return err
	}
	defer lock.release()

	st, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	metrics := fetch.NewMetrics()
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Warn("metrics server stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
		log.Info("serving metrics", "addr", cfg.MetricsAddr)
	}

	markup, err := loadMarkup(cmd, cfg, metrics)
	if err != nil {
		return err
	}

	extractor, err := extract.New(cfg.Origin, cfg.Marker)
	if err != nil {
		return err
	}
	entries, err := extractor.Extract(markup)
	if err != nil {
		return fmt.Errorf("failed to extract candidates: %w", err)
	}
	metrics.AddCandidates(len(entries))
	log.Debug("candidates extracted", "count", len(entries))

	synchronizer := catalog.NewSynchronizer(st, nil)
	res, err := synchronizer.Synchronize(entries)
	if err != nil {
		return fmt.Errorf("failed to synchronize: %w", err)
	}
	metrics.IncRuns()
	metrics.AddNewGames(len(res.NewEntries))

	projector := snapshot.New(st, cfg.CatalogPath, cfg.FeedPath, log)
	if err := projector.Project(res); err != nil {
		return fmt.Errorf("failed to write artifacts: %w", err)
	}

	if !syncQuiet {
		printSyncSummary(res, cfg)
	}
	return nil
}

// loadMarkup returns the listing page markup from --input or the network.
func loadMarkup(cmd *cobra.Command, cfg config.Config, metrics *fetch.Metrics) (string, error) {
	if syncInput != "" {
		data, err := os.ReadFile(syncInput)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	fetcher, err := fetch.New(cfg.SourceURL, cfg.UserAgent, cfg.Timeout, metrics)
	if err != nil {
		return "", err
	}

	spinner := output.NewSpinner("Fetching listing page")
	spinner.Start()
	markup, err := fetcher.FetchPage(cmd.Context(), cfg.SourceURL)
	spinner.Stop()
	if err != nil {
		return "", err
	}
	return markup, nil
}

func printSyncSummary(res *catalog.Result, cfg config.Config) {
	switch {
	case res.Observed == 0:
		fmt.Printf("Run %d observed no candidates; artifacts left untouched.\n", res.RunID)
	case res.FirstRun:
		fmt.Printf("First run: seeded catalog with %d games.\n", res.Observed)
		fmt.Printf("Catalog written to %s\n", cfg.CatalogPath)
	case len(res.NewEntries) == 0:
		fmt.Printf("Run %d: %d games observed, nothing new.\n", res.RunID, res.Observed)
	default:
		fmt.Printf("Run %d: %d games observed, %d new:\n", res.RunID, res.Observed, len(res.NewEntries))
		for _, e := range res.NewEntries {
			fmt.Printf("  + %s\n", e.Name)
		}
		fmt.Printf("Feed written to %s\n", cfg.FeedPath)
	}
}
