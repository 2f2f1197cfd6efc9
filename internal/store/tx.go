package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Tx wraps the writes of a single synchronization run. Either Commit makes
// the run record, the game upserts and the per-run observations visible
// together, or Rollback discards all of them. A runs row must never exist
// without its run_games rows.
type Tx struct {
	tx *sql.Tx
}

// Begin starts a run transaction.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Commit makes the run's writes visible.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// Rollback discards the run's writes. Safe to call after Commit; the
// resulting sql.ErrTxDone is swallowed so it can be deferred unconditionally.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("failed to roll back run: %w", err)
	}
	return nil
}

// CountGames returns the number of catalog entries as seen by this
// transaction. Used for first-run detection before any writes happen.
func (t *Tx) CountGames() (int, error) {
	var count int
	err := t.tx.QueryRow("SELECT COUNT(*) FROM games").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}

// CreateRun inserts the run record and returns its ID.
func (t *Tx) CreateRun(startedAt time.Time, observedCount int) (int64, error) {
	result, err := t.tx.Exec(
		"INSERT INTO runs (started_at, observed_count) VALUES (?, ?)",
		startedAt.Format(time.RFC3339),
		observedCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return id, nil
}

// FindGame retrieves a catalog entry by URL. Returns (nil, nil) when absent.
func (t *Tx) FindGame(url string) (*Game, error) {
	row := t.tx.QueryRow(`
		SELECT id, name, url, first_seen, last_seen
		FROM games
		WHERE url = ?
	`, url)

	var game Game
	var firstSeen, lastSeen string

	err := row.Scan(&game.ID, &game.Name, &game.URL, &firstSeen, &lastSeen)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find game %s: %w", url, err)
	}

	game.FirstSeen, err = time.Parse(time.RFC3339, firstSeen)
	if err != nil {
		return nil, fmt.Errorf("failed to parse first_seen for %s: %w", url, err)
	}
	game.LastSeen, err = time.Parse(time.RFC3339, lastSeen)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last_seen for %s: %w", url, err)
	}

	return &game, nil
}

// InsertGame creates a catalog entry with first_seen = last_seen = seenAt.
func (t *Tx) InsertGame(name, url string, seenAt time.Time) error {
	ts := seenAt.Format(time.RFC3339)
	_, err := t.tx.Exec(
		"INSERT INTO games (name, url, first_seen, last_seen) VALUES (?, ?, ?, ?)",
		name, url, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game %s: %w", url, err)
	}
	return nil
}

// TouchGame refreshes last_seen for an existing entry. The stored name is
// deliberately left alone: the display name is sticky after first capture
// even when the page shows different anchor text later.
func (t *Tx) TouchGame(url string, seenAt time.Time) error {
	_, err := t.tx.Exec(
		"UPDATE games SET last_seen = ? WHERE url = ?",
		seenAt.Format(time.RFC3339), url,
	)
	if err != nil {
		return fmt.Errorf("failed to touch game %s: %w", url, err)
	}
	return nil
}

// InsertRunGame records one observation for the run.
func (t *Tx) InsertRunGame(runID int64, name, url string, isNew bool) error {
	_, err := t.tx.Exec(
		"INSERT INTO run_games (run_id, name, url, is_new) VALUES (?, ?, ?, ?)",
		runID, name, url, isNew,
	)
	if err != nil {
		return fmt.Errorf("failed to record observation %s for run %d: %w", url, runID, err)
	}
	return nil
}
