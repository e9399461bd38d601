// Package archive keeps a scrape history in SQLite. Each admissible record
// from every scrape cycle is stored, which gives the pipeline two things the
// snapshot queue cannot: a repeat-booking check at queue-build time and a
// browsable history after the queue has been overwritten.
package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"rosterpost/internal/extract"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases must be deleted or rebuilt.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by a different
// version of the schema.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Entry is one archived record.
type Entry struct {
	ID          int64
	FullName    string
	Charge      string
	Bail        string
	BailAmount  float64
	MugshotFile string
	Priority    int
	ScrapedAt   time.Time
}

// Store manages the scrape-history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the archive database at path, creating it and its schema
// when absent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete the archive database to rebuild)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// RecordCycle stores every record from one scrape cycle under a shared
// timestamp. Parsed bail amount and priority are derived here so history
// queries never re-run extraction.
func (s *Store) RecordCycle(ctx context.Context, scrapedAt time.Time, records []extract.Record) error {
	if len(records) == 0 {
		return nil
	}
	timestamp := scrapedAt.UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, record := range records {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO scrape_records (
                full_name, charge, bail, bail_amount, mugshot_file, priority, scraped_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			record.FullName,
			record.Charge,
			record.Bail,
			extract.ParseBailAmount(record.Bail),
			record.MugshotRef,
			extract.Priority(record),
			timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert archive record %q: %w", record.FullName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive tx: %w", err)
	}
	return nil
}

// RecentlySeen reports whether a name was archived at or after cutoff.
// Names compare case-insensitively.
func (s *Store) RecentlySeen(ctx context.Context, fullName string, cutoff time.Time) (bool, error) {
	var count int
	err := s.db.QueryRowContext(
		ctx,
		"SELECT COUNT(1) FROM scrape_records WHERE full_name = ? COLLATE NOCASE AND scraped_at >= ?",
		fullName,
		cutoff.UTC().Format(time.RFC3339Nano),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query recently seen: %w", err)
	}
	return count > 0, nil
}

// History returns the most recently archived entries, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, full_name, charge, bail, bail_amount, mugshot_file, priority, scraped_at
         FROM scrape_records ORDER BY scraped_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var charge, bail, mugshot sql.NullString
		var scrapedAt string
		if err := rows.Scan(&entry.ID, &entry.FullName, &charge, &bail, &entry.BailAmount, &mugshot, &entry.Priority, &scrapedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entry.Charge = charge.String
		entry.Bail = bail.String
		entry.MugshotFile = mugshot.String
		parsed, err := time.Parse(time.RFC3339Nano, scrapedAt)
		if err != nil {
			return nil, fmt.Errorf("parse archived timestamp %q: %w", scrapedAt, err)
		}
		entry.ScrapedAt = parsed
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}
