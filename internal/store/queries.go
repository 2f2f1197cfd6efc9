package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Read-side operations. All writes to games, runs and run_games go through
// a Tx (see tx.go) so one run's effect on the store is all-or-nothing.

// CountGames returns the number of distinct catalog entries.
func (s *Store) CountGames() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM games").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}

// AllGames returns every catalog entry. Ordering is left to the caller; the
// snapshot projector applies its own deterministic sort.
func (s *Store) AllGames() ([]*Game, error) {
	rows, err := s.db.Query(`
		SELECT id, name, url, first_seen, last_seen
		FROM games
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id int64) (*Run, error) {
	var run Run
	var startedAt string

	err := s.db.QueryRow(`
		SELECT id, started_at, observed_count
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &startedAt, &run.ObservedCount)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}

	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at for run %d: %w", id, err)
	}

	return &run, nil
}

// LatestRun returns the most recent run, or nil if none has been recorded.
func (s *Store) LatestRun() (*Run, error) {
	var run Run
	var startedAt string

	err := s.db.QueryRow(`
		SELECT id, started_at, observed_count
		FROM runs
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&run.ID, &startedAt, &run.ObservedCount)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}

	return &run, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	query := `
		SELECT id, started_at, observed_count
		FROM runs
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var startedAt string

		if err := rows.Scan(&run.ID, &startedAt, &run.ObservedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at for run %d: %w", run.ID, err)
		}

		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// RunGames returns the observations recorded for a run, in insertion order.
func (s *Store) RunGames(runID int64) ([]*RunGame, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, name, url, is_new
		FROM run_games
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get games for run %d: %w", runID, err)
	}
	defer rows.Close()

	var observations []*RunGame
	for rows.Next() {
		var rg RunGame
		if err := rows.Scan(&rg.ID, &rg.RunID, &rg.Name, &rg.URL, &rg.IsNew); err != nil {
			return nil, fmt.Errorf("failed to scan run game row: %w", err)
		}
		observations = append(observations, &rg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run games: %w", err)
	}

	return observations, nil
}

// CountNewInRun returns how many observations in a run were flagged as new.
func (s *Store) CountNewInRun(runID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM run_games WHERE run_id = ? AND is_new = 1", runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count new games for run %d: %w", runID, err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*Game, error) {
	var game Game
	var firstSeen, lastSeen string

	if err := row.Scan(&game.ID, &game.Name, &game.URL, &firstSeen, &lastSeen); err != nil {
		return nil, fmt.Errorf("failed to scan game row: %w", err)
	}

	var err error
	game.FirstSeen, err = time.Parse(time.RFC3339, firstSeen)
	if err != nil {
		return nil, fmt.Errorf("failed to parse first_seen for %s: %w", game.URL, err)
	}
	game.LastSeen, err = time.Parse(time.RFC3339, lastSeen)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last_seen for %s: %w", game.URL, err)
	}

	return &game, nil
}
