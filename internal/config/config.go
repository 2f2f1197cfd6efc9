// Package config carries the settings for a sync run. Defaults target the
// upstream listing site; flags override per invocation.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the fully resolved configuration for one sync invocation.
type Config struct {
	// SourceURL is the listing page to fetch.
	SourceURL string
	// Origin rebases relative detail links found in the markup.
	Origin string
	// Marker is the href substring identifying detail links.
	Marker string

	// DBPath is the catalog database file.
	DBPath string
	// CatalogPath receives the full catalog snapshot.
	CatalogPath string
	// FeedPath receives the new-arrivals feed.
	FeedPath string

	// UserAgent sent with page fetches.
	UserAgent string
	// Timeout bounds a single page fetch.
	Timeout time.Duration

	// MetricsAddr, when non-empty, serves Prometheus metrics during the run.
	MetricsAddr string
	// Verbose enables debug logging.
	Verbose bool
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		SourceURL:   "https://steamrip.com/games-list-page/",
		Origin:      "https://steamrip.com",
		Marker:      "-free-download",
		DBPath:      "gamedex.db",
		CatalogPath: "All.Games.json",
		FeedPath:    "New.Games.json",
		UserAgent:   "gamedex/1.0 (+https://github.com/gamedex-project/gamedex)",
		Timeout:     15 * time.Second,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	src, err := url.Parse(c.SourceURL)
	if err != nil || src.Host == "" {
		return fmt.Errorf("invalid source url %q", c.SourceURL)
	}
	origin, err := url.Parse(c.Origin)
	if err != nil || origin.Host == "" {
		return fmt.Errorf("invalid origin %q", c.Origin)
	}
	if c.Marker == "" {
		return fmt.Errorf("marker cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.CatalogPath == "" || c.FeedPath == "" {
		return fmt.Errorf("artifact paths cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
