// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	sqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ankadev/tripnest/internal/models"
	"github.com/ankadev/tripnest/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
//
// The pragmas ride on the DSN so they apply to every pooled connection, not
// just the one that happens to run an Exec at startup. busy_timeout matters
// because provisioning is invoked from concurrent page loads and the writes
// of simultaneous requests must queue instead of failing with SQLITE_BUSY.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := "file:" + dbPath +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip, generating an ID if not set.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	fillID(&trip.ID)
	if trip.CreatedAt == 0 {
		trip.CreatedAt = nowUnix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO trips (id, name, created_at) VALUES (?, ?, ?)",
		trip.ID, trip.Name, trip.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

// TripExists reports whether a trip row exists.
func (s *SQLiteStore) TripExists(ctx context.Context, tripID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM trips WHERE id = ?", tripID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check trip existence: %w", err)
	}
	return true, nil
}

// fillID assigns a fresh UUID when the caller did not supply one.
func fillID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

func nowUnix() int64 {
	return time.Now().Unix()
}

// isUniqueViolation reports whether err is a SQLite uniqueness constraint
// failure (UNIQUE index or primary key).
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		code := serr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
