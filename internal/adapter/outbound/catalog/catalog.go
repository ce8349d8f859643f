// Package catalog keeps a local SQLite snapshot of the portal's
// institutions and training courses. The registration flow searches it
// for the course selection, and the browse commands fall back to it
// when the portal is unreachable.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/trainhub/trainhub/internal/adapter/outbound/portal"
)

// Store is the local catalog database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) the catalog database at path and
// runs migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate catalog db: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS institutions (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS trainings (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			institution_id INTEGER NOT NULL,
			institution_name TEXT NOT NULL DEFAULT '',
			ncs_type TEXT NOT NULL DEFAULT '',
			ncs_type_description TEXT NOT NULL DEFAULT '',
			period TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_trainings_institution ON trainings(institution_id);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// Replace swaps the cached catalog for a fresh snapshot in one
// transaction and records the refresh time.
func (s *Store) Replace(ctx context.Context, institutions []portal.Institution, trainings []portal.Training) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog refresh: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM institutions`); err != nil {
		return fmt.Errorf("clear institutions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trainings`); err != nil {
		return fmt.Errorf("clear trainings: %w", err)
	}

	for _, inst := range institutions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO institutions (id, name, address, phone) VALUES (?, ?, ?, ?)`,
			inst.ID, inst.Name, inst.Address, inst.Phone)
		if err != nil {
			return fmt.Errorf("insert institution %d: %w", inst.ID, err)
		}
	}

	for _, tr := range trainings {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO trainings
			 (id, name, institution_id, institution_name, ncs_type, ncs_type_description,
			  period, start_date, end_date, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tr.ID, tr.Name, tr.InstitutionID, tr.InstitutionName, tr.NCSType,
			tr.NCSTypeDescription, tr.Period, tr.StartDate, tr.EndDate, tr.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert training %d: %w", tr.ID, err)
		}
	}

	refreshedAt := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('refreshed_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, refreshedAt)
	if err != nil {
		return fmt.Errorf("record refresh time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog refresh: %w", err)
	}

	s.logger.Debug("catalog refreshed",
		"institutions", len(institutions), "trainings", len(trainings))
	return nil
}

// Institutions lists the cached institutions ordered by name.
func (s *Store) Institutions(ctx context.Context) ([]portal.Institution, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, address, phone FROM institutions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query institutions: %w", err)
	}
	defer rows.Close()

	var out []portal.Institution
	for rows.Next() {
		var inst portal.Institution
		if err := rows.Scan(&inst.ID, &inst.Name, &inst.Address, &inst.Phone); err != nil {
			return nil, fmt.Errorf("scan institution: %w", err)
		}
		out = append(out, inst)
	}
	return out, rows.Err()
}

// Trainings lists the cached training courses ordered by name.
func (s *Store) Trainings(ctx context.Context) ([]portal.Training, error) {
	return s.queryTrainings(ctx,
		`SELECT id, name, institution_id, institution_name, ncs_type, ncs_type_description,
		        period, start_date, end_date, created_at
		 FROM trainings ORDER BY name`)
}

// SearchTrainings lists cached courses whose name, institution, or NCS
// category matches the keyword (case-insensitive substring).
func (s *Store) SearchTrainings(ctx context.Context, keyword string) ([]portal.Training, error) {
	pattern := "%" + keyword + "%"
	return s.queryTrainings(ctx,
		`SELECT id, name, institution_id, institution_name, ncs_type, ncs_type_description,
		        period, start_date, end_date, created_at
		 FROM trainings
		 WHERE name LIKE ? COLLATE NOCASE
		    OR institution_name LIKE ? COLLATE NOCASE
		    OR ncs_type_description LIKE ? COLLATE NOCASE
		 ORDER BY name`,
		pattern, pattern, pattern)
}

// Training fetches one cached course by ID.
func (s *Store) Training(ctx context.Context, id int64) (*portal.Training, error) {
	trainings, err := s.queryTrainings(ctx,
		`SELECT id, name, institution_id, institution_name, ncs_type, ncs_type_description,
		        period, start_date, end_date, created_at
		 FROM trainings WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(trainings) == 0 {
		return nil, sql.ErrNoRows
	}
	return &trainings[0], nil
}

func (s *Store) queryTrainings(ctx context.Context, query string, args ...any) ([]portal.Training, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trainings: %w", err)
	}
	defer rows.Close()

	var out []portal.Training
	for rows.Next() {
		var tr portal.Training
		err := rows.Scan(&tr.ID, &tr.Name, &tr.InstitutionID, &tr.InstitutionName,
			&tr.NCSType, &tr.NCSTypeDescription, &tr.Period, &tr.StartDate,
			&tr.EndDate, &tr.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan training: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// RefreshedAt returns when the catalog was last refreshed from the
// portal, or false if it never was.
func (s *Store) RefreshedAt(ctx context.Context) (time.Time, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = 'refreshed_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query refresh time: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse refresh time: %w", err)
	}
	return ts, true, nil
}
