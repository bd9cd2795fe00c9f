// Package history records export runs in a local SQLite database so past
// exports can be listed and inspected.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at  TEXT NOT NULL,
    scene_path  TEXT NOT NULL,
    output_path TEXT NOT NULL DEFAULT '',
    splines     INTEGER NOT NULL DEFAULT 0,
    keyframes   INTEGER NOT NULL DEFAULT 0,
    status      TEXT NOT NULL,
    message     TEXT NOT NULL DEFAULT '',
    duration_ms INTEGER NOT NULL DEFAULT 0
);
`

// Statuses recorded for a run.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

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

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

type Run struct {
	ID         int64
	StartedAt  time.Time
	ScenePath  string
	OutputPath string
	Splines    int
	Keyframes  int
	Status     string
	Message    string
	Duration   time.Duration
}

// Record inserts one completed run.
func (d *DB) Record(r Run) error {
	_, err := d.db.Exec(
		`INSERT INTO runs (started_at, scene_path, output_path, splines, keyframes, status, message, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.Format(time.RFC3339),
		r.ScenePath,
		r.OutputPath,
		r.Splines,
		r.Keyframes,
		r.Status,
		r.Message,
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first. limit <= 0 means no limit.
func (d *DB) Recent(limit int) ([]Run, error) {
	q := "SELECT id, started_at, scene_path, output_path, splines, keyframes, status, message, duration_ms FROM runs ORDER BY id DESC"
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		var durMs int64
		if err := rows.Scan(&r.ID, &started, &r.ScenePath, &r.OutputPath, &r.Splines, &r.Keyframes, &r.Status, &r.Message, &durMs); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.Duration = time.Duration(durMs) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunCount reports the number of recorded runs.
func (d *DB) RunCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}
