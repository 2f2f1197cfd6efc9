package catalog

import (
	"fmt"
	"strings"

	"github.com/gamedex-project/gamedex/internal/store"
)

// Synchronizer is the single writer path into the catalog store. One call to
// Synchronize is one run: it decides first-run status, reconciles each
// candidate against the catalog, and commits every write as a unit.
type Synchronizer struct {
	store *store.Store
	clock Clock
}

// NewSynchronizer creates a Synchronizer. A nil clock defaults to SystemClock.
func NewSynchronizer(st *store.Store, clock Clock) *Synchronizer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Synchronizer{store: st, clock: clock}
}

// Synchronize reconciles a candidate batch against the catalog.
//
// The catalog count is read before any write: an empty catalog marks a first
// run, and first-run candidates are never flagged as new; deltas only make
// sense once a baseline exists. Candidates are processed in input order;
// existing entries get their last_seen refreshed, unknown entries are
// created. All writes commit together or not at all.
func (s *Synchronizer) Synchronize(entries []Entry) (*Result, error) {
	now := s.clock.Now()

	tx, err := s.store.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	preCount, err := tx.CountGames()
	if err != nil {
		return nil, err
	}
	firstRun := preCount == 0

	runID, err := tx.CreateRun(now, len(entries))
	if err != nil {
		return nil, err
	}

	var newEntries []Entry
	for _, entry := range entries {
		url := strings.TrimRight(entry.URL, "/")
		if url == "" {
			continue
		}

		existing, err := tx.FindGame(url)
		if err != nil {
			return nil, err
		}

		if existing != nil {
			if err := tx.TouchGame(url, now); err != nil {
				return nil, err
			}
			if err := tx.InsertRunGame(runID, entry.Name, url, false); err != nil {
				return nil, err
			}
			continue
		}

		if err := tx.InsertGame(entry.Name, url, now); err != nil {
			return nil, err
		}
		isNew := !firstRun
		if err := tx.InsertRunGame(runID, entry.Name, url, isNew); err != nil {
			return nil, err
		}
		if isNew {
			newEntries = append(newEntries, Entry{Name: entry.Name, URL: url})
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("synchronize run %d: %w", runID, err)
	}

	return &Result{
		RunID:      runID,
		FirstRun:   firstRun,
		Observed:   len(entries),
		NewEntries: newEntries,
	}, nil
}
