// Package output provides terminal output utilities for gamedex: run history
// tables, spinners for long fetches, and human-readable time formatting.
// Table rendering uses ASCII characters and ANSI color codes.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/gamedex-project/gamedex/internal/store"
)

// ANSI color codes for run-table display
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderRunTable renders the run history, newest first. newCounts maps run ID
// to the number of new arrivals that run discovered; runs absent from the map
// render as zero.
func RenderRunTable(runs []*store.Run, newCounts map[int64]int) string {
	if len(runs) == 0 {
		return "No runs recorded yet. Run 'gamedex sync' first.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-22s %-10s %s\n",
		"ID", "Started", "Observed", "New"))
	sb.WriteString(strings.Repeat("─", 52))
	sb.WriteString("\n")

	for _, run := range runs {
		started := RelativeTime(run.StartedAt)
		newCount := newCounts[run.ID]

		newStr := fmt.Sprintf("%d", newCount)
		if newCount > 0 {
			newStr = colorize(colorGreen, newStr)
		} else {
			newStr = colorize(colorGray, newStr)
		}

		sb.WriteString(fmt.Sprintf("%-5d %-22s %-10d %s\n",
			run.ID,
			truncate(started, 22),
			run.ObservedCount,
			newStr))
	}

	return sb.String()
}

// RelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
