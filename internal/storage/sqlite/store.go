// Package sqlite is the single-user local entry store used by the healthctl CLI.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vcscsvcscs/healthguide/pkg/model"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no entry exists for a date
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	date TEXT PRIMARY KEY,
	metrics TEXT NOT NULL,
	score TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS prescribed_medications (
	name TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);
`

// Store keeps entries keyed by calendar day in a SQLite file
type Store struct {
	db *sql.DB
}

// Open creates the database file and schema when missing
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveEntry upserts the entry of its date
func (s *Store) SaveEntry(ctx context.Context, entry *model.HealthEntry) error {
	metrics, err := json.Marshal(entry.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	score, err := json.Marshal(entry.Score)
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}

	entry.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO entries (date, metrics, score, updated_at) VALUES (?, ?, ?, ?)`,
		entry.Date, string(metrics), string(score), entry.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save entry %s: %w", entry.Date, err)
	}

	return nil
}

// GetEntry returns the entry of a date
func (s *Store) GetEntry(ctx context.Context, date string) (*model.HealthEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT date, metrics, score, updated_at FROM entries WHERE date = ?`, date)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry %s: %w", date, err)
	}

	return entry, nil
}

// LoadEntries returns every entry keyed by date
func (s *Store) LoadEntries(ctx context.Context) (map[string]model.HealthEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, metrics, score, updated_at FROM entries ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]model.HealthEntry)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries[entry.Date] = *entry
	}

	return entries, rows.Err()
}

// ListPrescribed returns the prescribed medication names in insertion order
func (s *Store) ListPrescribed(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM prescribed_medications ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescribed medications: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// AddPrescribed appends a name, reporting false when it was already present
func (s *Store) AddPrescribed(ctx context.Context, name string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO prescribed_medications (name, position)
		 VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM prescribed_medications))`, name)
	if err != nil {
		return false, fmt.Errorf("failed to add prescribed medication: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RemovePrescribed deletes a name
func (s *Store) RemovePrescribed(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM prescribed_medications WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to remove prescribed medication: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("prescribed medication %q: %w", name, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*model.HealthEntry, error) {
	var (
		entry          model.HealthEntry
		metrics, score string
		updatedAt      string
	)
	if err := row.Scan(&entry.Date, &metrics, &score, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(metrics), &entry.Metrics); err != nil {
		return nil, fmt.Errorf("failed to decode metrics of %s: %w", entry.Date, err)
	}
	if err := json.Unmarshal([]byte(score), &entry.Score); err != nil {
		return nil, fmt.Errorf("failed to decode score of %s: %w", entry.Date, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		entry.UpdatedAt = t
	}

	return &entry, nil
}
