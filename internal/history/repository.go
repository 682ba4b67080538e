package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
    id          TEXT PRIMARY KEY,
    url         TEXT NOT NULL,
    format      TEXT NOT NULL,
    status      TEXT NOT NULL,
    output_path TEXT,
    error       TEXT,
    started_at  DATETIME NOT NULL,
    finished_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_finished ON extractions(finished_at);
`

// Repository implements domain.Journal using SQLite.
type Repository struct {
	db *sql.DB
}

// New creates a SQLite-backed journal, initializing the schema if needed.
func New(dbPath string) (*Repository, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Record inserts one row for a finished job.
func (r *Repository) Record(ctx context.Context, res domain.Result) error {
	finished := time.Now()
	started := finished.Add(-res.Duration)

	errText := ""
	if res.Err != nil {
		errText = res.Err.Error()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extractions (id, url, format, status, output_path, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Job.ID, res.Job.URL, res.Job.Format, res.Status(), res.OutputPath, errText, started, finished,
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url, format, status, COALESCE(output_path, ''), COALESCE(error, ''), started_at, finished_at
		 FROM extractions ORDER BY finished_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var format, status string
		if err := rows.Scan(&e.ID, &e.URL, &format, &status, &e.OutputPath, &e.Error, &e.StartedAt, &e.FinishedAt); err != nil {
			return nil, err
		}
		e.Format = domain.Format(format)
		e.Status = domain.Status(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
