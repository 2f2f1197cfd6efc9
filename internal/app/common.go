package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

// getDataDir returns ~/.gamedex, creating it if needed. Holds the database
// and the default artifact files.
func getDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dataDir := filepath.Join(home, ".gamedex")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create gamedex directory: %w", err)
	}

	return dataDir, nil
}

// getDBPath returns the database path, using the --db flag value or the
// default under the data directory.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	dataDir, err := getDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "gamedex.db"), nil
}

// newLogger builds the process logger: human-readable text on a terminal,
// JSON when output is piped. verbose lowers the level to debug.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// runLock is an exclusive advisory lock held for the duration of a sync.
// One writer at a time keeps the database and the artifacts consistent.
type runLock struct {
	path string
}

// acquireRunLock creates a lock file beside the database. A second sync
// against the same database fails fast instead of interleaving writes.
func acquireRunLock(dbPath string) (*runLock, error) {
	path := dbPath + ".lock"
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("another sync appears to be running (lock file %s exists); remove it if the previous run crashed", path)
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	fmt.Fprintf(f, "%d\n", os.Getpid())
	f.Close()
	return &runLock{path: path}, nil
}

// release removes the lock file.
func (l *runLock) release() {
	os.Remove(l.path)
}
