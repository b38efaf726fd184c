// Package store provides a SQLite-backed cut journal.
//
// Entries are kept in a single table. An autoincrement sequence column
// records append order, so List returns entries exactly as they were
// appended regardless of their timestamps or ids.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/piwi3910/ReelCut/internal/cutlog"
	"github.com/piwi3910/ReelCut/internal/model"
)

var _ cutlog.Store = (*SQLiteJournal)(nil)

// SQLiteJournal implements cutlog.Store on top of SQLite.
type SQLiteJournal struct {
	db *sql.DB
}

// OpenSQLite opens or creates a journal database at the given path.
// Creates parent directories if they don't exist.
func OpenSQLite(path string) (*SQLiteJournal, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return newJournal(db)
}

// NewSQLiteInMemory creates an in-memory journal (useful for testing).
func NewSQLiteInMemory() (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}
	return newJournal(db)
}

func newJournal(db *sql.DB) (*SQLiteJournal, error) {
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	j := &SQLiteJournal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

func (j *SQLiteJournal) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS cut_log (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			batch_id TEXT NOT NULL,
			name TEXT NOT NULL,
			length REAL NOT NULL,
			reel_id INTEGER NOT NULL,
			start_index REAL NOT NULL,
			end_index REAL NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_cut_log_batch
		ON cut_log(batch_id);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Append writes all entries in one transaction. Either every entry is
// stored or none is.
func (j *SQLiteJournal) Append(ctx context.Context, entries []model.CutLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cut_log (id, batch_id, name, length, reel_id, start_index, end_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.BatchID, e.Name, e.Length, e.ReelID, e.StartIndex, e.EndIndex,
			e.Timestamp.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("failed to insert cut %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cuts: %w", err)
	}
	return nil
}

// List returns every entry in append order.
func (j *SQLiteJournal) List(ctx context.Context) ([]model.CutLogEntry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, batch_id, name, length, reel_id, start_index, end_index, created_at
		FROM cut_log
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cut log: %w", err)
	}
	defer rows.Close()

	entries := []model.CutLogEntry{}
	for rows.Next() {
		var (
			e  model.CutLogEntry
			ts string
		)
		if err := rows.Scan(&e.ID, &e.BatchID, &e.Name, &e.Length, &e.ReelID, &e.StartIndex, &e.EndIndex, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan cut log row: %w", err)
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("cut %s: bad timestamp %q: %w", e.ID, ts, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cut log: %w", err)
	}
	return entries, nil
}

// Clear deletes every entry.
func (j *SQLiteJournal) Clear(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, `DELETE FROM cut_log`); err != nil {
		return fmt.Errorf("failed to clear cut log: %w", err)
	}
	return nil
}

// Count returns the number of stored entries.
func (j *SQLiteJournal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cut_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cut log: %w", err)
	}
	return n, nil
}
