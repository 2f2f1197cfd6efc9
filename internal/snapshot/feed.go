package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gamedex-project/gamedex/internal/catalog"
)

// loadFeed reads the current feed history. A missing file is a normal state
// (first feed write) and returns nil silently. An unreadable or corrupt file
// is logged and treated as empty so a damaged feed heals on the next write
// instead of blocking the run.
func (p *Projector) loadFeed() []catalog.Entry {
	data, err := os.ReadFile(p.feedPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			p.log.Warn("feed unreadable, starting fresh", "path", p.feedPath, "error", err)
		}
		return nil
	}

	var history []catalog.Entry
	if err := json.Unmarshal(data, &history); err != nil {
		p.log.Warn("feed corrupt, starting fresh", "path", p.feedPath, "error", err)
		return nil
	}
	return history
}

// MergeFeed prepends newEntries to the feed, newest first. Entries whose URL
// is already present in the history are skipped, so replaying the same run
// leaves the feed unchanged. Returns the number of entries actually added;
// when zero the file is not rewritten.
func (p *Projector) MergeFeed(newEntries []catalog.Entry) (int, error) {
	history := p.loadFeed()

	known := make(map[string]struct{}, len(history))
	for _, e := range history {
		known[e.URL] = struct{}{}
	}

	var fresh []catalog.Entry
	for _, e := range newEntries {
		if _, dup := known[e.URL]; dup {
			continue
		}
		known[e.URL] = struct{}{}
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	merged := append(fresh, history...)
	data, err := marshalEntries(merged)
	if err != nil {
		return 0, err
	}
	if err := writeFileAtomic(p.feedPath, data); err != nil {
		return 0, fmt.Errorf("write feed: %w", err)
	}
	return len(fresh), nil
}
