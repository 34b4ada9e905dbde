// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides account/company/calibration/product persistence with automatic schema creation

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS accounts (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			username      TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			mobile        TEXT,
			role          TEXT NOT NULL DEFAULT 'user',
			company_id    TEXT,
			created_at    TEXT NOT NULL,

			CHECK (role IN ('user', 'admin'))
		);

		CREATE INDEX IF NOT EXISTS idx_accounts_email ON accounts(email);
		CREATE INDEX IF NOT EXISTS idx_accounts_company ON accounts(company_id);

		CREATE TABLE IF NOT EXISTS companies (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			address    TEXT,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS calibrations (
			id            TEXT PRIMARY KEY,
			company_id    TEXT NOT NULL,
			instrument    TEXT NOT NULL,
			serial_number TEXT NOT NULL,
			calibrated_at TEXT NOT NULL,
			due_at        TEXT NOT NULL,
			result        TEXT NOT NULL,
			notes         TEXT,
			created_at    TEXT NOT NULL,

			FOREIGN KEY (company_id) REFERENCES companies(id)
		);

		CREATE INDEX IF NOT EXISTS idx_calibrations_company ON calibrations(company_id);
		CREATE INDEX IF NOT EXISTS idx_calibrations_due ON calibrations(due_at);

		CREATE TABLE IF NOT EXISTS products (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			description    TEXT,
			attachment_key TEXT,
			created_at     TEXT NOT NULL
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

// Close closes the underlying database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	// SQLite returns "UNIQUE constraint failed" in the error message
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") || strings.Contains(err.Error(), "unique constraint"))
}
