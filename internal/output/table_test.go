package output

import (
	"strings"
	"testing"
	"time"

	"github.com/gamedex-project/gamedex/internal/store"
)

func TestRenderRunTableEmpty(t *testing.T) {
	result := RenderRunTable(nil, nil)
	if !strings.Contains(result, "No runs recorded") {
		t.Errorf("expected empty-state message, got %q", result)
	}
}

func TestRenderRunTable(t *testing.T) {
	runs := []*store.Run{
		{ID: 2, StartedAt: time.Now().Add(-time.Hour), ObservedCount: 12},
		{ID: 1, StartedAt: time.Now().Add(-25 * time.Hour), ObservedCount: 10},
	}
	newCounts := map[int64]int{2: 2}

	result := RenderRunTable(runs, newCounts)

	if !strings.Contains(result, "ID") || !strings.Contains(result, "Observed") {
		t.Error("expected table header")
	}
	if !strings.Contains(result, "1 hour ago") {
		t.Errorf("expected relative start time, got %q", result)
	}
	if !strings.Contains(result, "12") {
		t.Error("expected observed count in output")
	}

	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("expected header, separator and 2 rows, got %d lines", len(lines))
	}
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, "never"},
		{"just now", time.Now(), "just now"},
		{"minutes", time.Now().Add(-5 * time.Minute), "5 minutes ago"},
		{"one hour", time.Now().Add(-90 * time.Minute), "1 hour ago"},
		{"days", time.Now().Add(-49 * time.Hour), "2 days ago"},
		{"weeks", time.Now().Add(-8 * 24 * time.Hour), "1 week ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(tt.t); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := truncate("a very long package name", 10); got != "a very ..." {
		t.Errorf("expected truncation with ellipsis, got %q", got)
	}
	if len(truncate("abcdef", 3)) != 3 {
		t.Error("expected hard cut at tiny widths")
	}
}
