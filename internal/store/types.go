package store

import "time"

// Game is one catalog entry. A game is created the first time its URL is
// observed and is never deleted; FirstSeen is immutable, LastSeen is
// refreshed on every run that observes the URL again.
type Game struct {
	ID        int64
	Name      string
	URL       string
	FirstSeen time.Time
	LastSeen  time.Time
}

// Run records one execution of the discovery pipeline.
type Run struct {
	ID            int64
	StartedAt     time.Time
	ObservedCount int
}

// RunGame links a run to an observed game. IsNew is true only when the game
// row was created during that run and the catalog was non-empty beforehand.
type RunGame struct {
	ID    int64
	RunID int64
	Name  string
	URL   string
	IsNew bool
}
