package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS runs (
    run_id         TEXT PRIMARY KEY,
    source_path    TEXT NOT NULL DEFAULT '',
    your_name      TEXT NOT NULL,
    their_name     TEXT NOT NULL,
    messages       INTEGER NOT NULL DEFAULT 0,
    your_messages  INTEGER NOT NULL DEFAULT 0,
    their_messages INTEGER NOT NULL DEFAULT 0,
    sessions       INTEGER NOT NULL DEFAULT 0,
    first_at       TEXT NOT NULL DEFAULT '',
    last_at        TEXT NOT NULL DEFAULT '',
    final          REAL NOT NULL,
    percent        INTEGER NOT NULL,
    level          TEXT NOT NULL,
    language       TEXT NOT NULL DEFAULT '',
    created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scores (
    run_id       TEXT NOT NULL,
    key          TEXT NOT NULL,
    label        TEXT NOT NULL,
    score        REAL NOT NULL,
    weight       REAL NOT NULL,
    contribution REAL NOT NULL,
    PRIMARY KEY (run_id, key)
);

CREATE TABLE IF NOT EXISTS messages (
    run_id      TEXT NOT NULL,
    seq         INTEGER NOT NULL,
    line_number INTEGER NOT NULL DEFAULT 0,
    ts          TEXT NOT NULL,
    sender      TEXT NOT NULL,
    role        TEXT NOT NULL,
    text        TEXT NOT NULL,
    PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS sessions (
    run_id      TEXT NOT NULL,
    seq         INTEGER NOT NULL,
    opener      TEXT NOT NULL,
    started_at  TEXT NOT NULL,
    start_seq   INTEGER NOT NULL,
    end_seq     INTEGER NOT NULL,
    line_number INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// schemaVersion is bumped whenever a table changes shape.
const schemaVersion = "1"

// DB is a write-only export target. Nothing in this tool reads runs back.
type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("write schema version: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

func (d *DB) RunCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

func (d *DB) MessageCount(runID string) (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages WHERE run_id = ?", runID).Scan(&n)
	return n, err
}

func (d *DB) SchemaVersion() (string, error) {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	return ver, err
}
