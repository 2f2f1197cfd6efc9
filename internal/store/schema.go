package store

const schema = `
CREATE TABLE IF NOT EXISTS games (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    url TEXT NOT NULL UNIQUE,
    first_seen TIMESTAMP NOT NULL,
    last_seen TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    observed_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_games (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    name TEXT,
    url TEXT NOT NULL,
    is_new BOOLEAN NOT NULL DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_games_url ON games(url);
CREATE INDEX IF NOT EXISTS idx_run_games_run ON run_games(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
