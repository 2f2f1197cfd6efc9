package snapshot

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gamedex-project/gamedex/internal/catalog"
	"github.com/gamedex-project/gamedex/internal/store"
)

// Projector writes the two JSON artifacts from the catalog store.
type Projector struct {
	store       *store.Store
	catalogPath string
	feedPath    string
	log         *slog.Logger
}

// New creates a Projector writing the catalog snapshot to catalogPath and the
// new-arrivals feed to feedPath. A nil logger defaults to slog.Default().
func New(st *store.Store, catalogPath, feedPath string, log *slog.Logger) *Projector {
	if log == nil {
		log = slog.Default()
	}
	return &Projector{
		store:       st,
		catalogPath: catalogPath,
		feedPath:    feedPath,
		log:         log,
	}
}

// Project applies a run's outcome to the artifacts.
//
// A run that observed nothing touches neither file, so a scrape that came
// back empty cannot wipe a previously good snapshot. A first run writes
// the catalog but never the feed; the baseline has no deltas to announce.
// A run with no new arrivals leaves both files alone. Only a run that
// discovered something rewrites the catalog and prepends to the feed.
func (p *Projector) Project(res *catalog.Result) error {
	if res.Observed == 0 {
		p.log.Info("no candidates observed, artifacts left untouched", "run", res.RunID)
		return nil
	}

	if !res.FirstRun && len(res.NewEntries) == 0 {
		p.log.Info("nothing new, artifacts left untouched", "run", res.RunID)
		return nil
	}

	count, err := p.WriteCatalog()
	if err != nil {
		return err
	}
	p.log.Info("catalog snapshot written", "path", p.catalogPath, "games", count)

	if res.FirstRun {
		p.log.Info("first run, feed not created", "run", res.RunID)
		return nil
	}

	added, err := p.MergeFeed(res.NewEntries)
	if err != nil {
		return err
	}
	p.log.Info("feed updated", "path", p.feedPath, "added", added)
	return nil
}

// WriteCatalog renders the entire catalog to the snapshot file, sorted
// case-insensitively by name with URL as the tiebreak. Returns the number of
// entries written.
func (p *Projector) WriteCatalog() (int, error) {
	games, err := p.store.AllGames()
	if err != nil {
		return 0, err
	}

	entries := make([]catalog.Entry, 0, len(games))
	for _, g := range games {
		entries = append(entries, catalog.Entry{Name: g.Name, URL: g.URL})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a != b {
			return a < b
		}
		return entries[i].URL < entries[j].URL
	})

	data, err := marshalEntries(entries)
	if err != nil {
		return 0, err
	}
	if err := writeFileAtomic(p.catalogPath, data); err != nil {
		return 0, fmt.Errorf("write catalog snapshot: %w", err)
	}
	return len(entries), nil
}
