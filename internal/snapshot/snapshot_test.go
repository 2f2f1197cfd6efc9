package snapshot

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex-project/gamedex/internal/catalog"
	"github.com/gamedex-project/gamedex/internal/store"
)

func newTestProjector(t *testing.T) (*store.Store, *Projector, string, string) {
	t.Helper()

	s, err := store.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.CreateSchema())

	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "All.Games.json")
	feedPath := filepath.Join(dir, "New.Games.json")

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	p := New(s, catalogPath, feedPath, log)
	return s, p, catalogPath, feedPath
}

func seedGames(t *testing.T, s *store.Store, entries ...catalog.Entry) {
	t.Helper()

	seenAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tx, err := s.Begin()
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, tx.InsertGame(e.Name, e.URL, seenAt))
	}
	require.NoError(t, tx.Commit())
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteCatalogSorted(t *testing.T) {
	s, p, catalogPath, _ := newTestProjector(t)
	seedGames(t, s,
		catalog.Entry{Name: "hades", URL: "https://example.com/hades"},
		catalog.Entry{Name: "Celeste", URL: "https://example.com/celeste"},
		catalog.Entry{Name: "Bastion", URL: "https://example.com/bastion-remaster"},
		catalog.Entry{Name: "Bastion", URL: "https://example.com/bastion"},
	)

	count, err := p.WriteCatalog()
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	data, err := os.ReadFile(catalogPath)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "catalog_sorted", data)
}

func TestWriteCatalogEmpty(t *testing.T) {
	_, p, catalogPath, _ := newTestProjector(t)

	count, err := p.WriteCatalog()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	data, err := os.ReadFile(catalogPath)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "catalog_empty", data)
}

func TestProjectZeroObservedTouchesNothing(t *testing.T) {
	_, p, catalogPath, feedPath := newTestProjector(t)

	err := p.Project(&catalog.Result{RunID: 1, Observed: 0})
	require.NoError(t, err)

	_, err = os.Stat(catalogPath)
	assert.True(t, os.IsNotExist(err), "catalog must not be created")
	_, err = os.Stat(feedPath)
	assert.True(t, os.IsNotExist(err), "feed must not be created")
}

func TestProjectFirstRunSkipsFeed(t *testing.T) {
	s, p, catalogPath, feedPath := newTestProjector(t)
	seedGames(t, s, catalog.Entry{Name: "Hades", URL: "https://example.com/hades"})

	err := p.Project(&catalog.Result{RunID: 1, FirstRun: true, Observed: 1})
	require.NoError(t, err)

	_, err = os.Stat(catalogPath)
	assert.NoError(t, err, "catalog must be written on first run")
	_, err = os.Stat(feedPath)
	assert.True(t, os.IsNotExist(err), "feed must not be created on first run")
}

func TestProjectNewArrivals(t *testing.T) {
	s, p, _, feedPath := newTestProjector(t)
	seedGames(t, s,
		catalog.Entry{Name: "Hades", URL: "https://example.com/hades"},
		catalog.Entry{Name: "Tunic", URL: "https://example.com/tunic"},
	)

	err := p.Project(&catalog.Result{
		RunID:    2,
		Observed: 2,
		NewEntries: []catalog.Entry{
			{Name: "Tunic", URL: "https://example.com/tunic"},
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(feedPath)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "feed_first_arrival", data)
}

func TestProjectNothingNewLeavesArtifactsAlone(t *testing.T) {
	s, p, catalogPath, feedPath := newTestProjector(t)
	seedGames(t, s, catalog.Entry{Name: "Hades", URL: "https://example.com/hades"})

	err := p.Project(&catalog.Result{RunID: 2, Observed: 1})
	require.NoError(t, err)

	_, err = os.Stat(catalogPath)
	assert.True(t, os.IsNotExist(err), "catalog must not be rewritten when nothing is new")
	_, err = os.Stat(feedPath)
	assert.True(t, os.IsNotExist(err), "feed must not be created when nothing is new")
}

func TestMergeFeedPrependsNewestFirst(t *testing.T) {
	_, p, _, feedPath := newTestProjector(t)

	_, err := p.MergeFeed([]catalog.Entry{
		{Name: "Celeste", URL: "https://example.com/celeste"},
	})
	require.NoError(t, err)

	added, err := p.MergeFeed([]catalog.Entry{
		{Name: "Tunic", URL: "https://example.com/tunic"},
		{Name: "Hades", URL: "https://example.com/hades"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	data, err := os.ReadFile(feedPath)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "feed_prepend", data)
}

func TestMergeFeedIdempotent(t *testing.T) {
	_, p, _, feedPath := newTestProjector(t)
	entries := []catalog.Entry{{Name: "Hades", URL: "https://example.com/hades"}}

	added, err := p.MergeFeed(entries)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	before, err := os.ReadFile(feedPath)
	require.NoError(t, err)

	added, err = p.MergeFeed(entries)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	after, err := os.ReadFile(feedPath)
	require.NoError(t, err)
	assert.Equal(t, before, after, "replaying the same entries must not change the feed")
}

func TestMergeFeedRecoversFromCorruptFile(t *testing.T) {
	_, p, _, feedPath := newTestProjector(t)
	require.NoError(t, os.WriteFile(feedPath, []byte("{not json"), 0644))

	added, err := p.MergeFeed([]catalog.Entry{
		{Name: "Hades", URL: "https://example.com/hades"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	data, err := os.ReadFile(feedPath)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "feed_recovered", data)
}
