package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/benmeehan/location-base/internal/models"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS locations (
  id        INTEGER PRIMARY KEY AUTOINCREMENT,
  latitude  TEXT NOT NULL,
  longitude TEXT NOT NULL
);`

// ErrEmptyCoordinate is returned by Insert when a coordinate string is empty.
var ErrEmptyCoordinate = errors.New("coordinate must not be empty")

// SQLiteStore implements RecordStore on an embedded SQLite database.
// It owns a single connection and serializes every statement through mu.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

var _ RecordStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path. The schema is not created here;
// call EnsureSchema once at startup.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database location the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// EnsureSchema creates the locations table if it does not exist.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// Insert appends a new record and returns its id.
func (s *SQLiteStore) Insert(ctx context.Context, latitude, longitude string) (int64, error) {
	if latitude == "" || longitude == "" {
		return 0, ErrEmptyCoordinate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (latitude, longitude) VALUES (?, ?)`, latitude, longitude)
	if err != nil {
		return 0, fmt.Errorf("failed to insert location: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// SelectAll reads the whole table ordered by id.
func (s *SQLiteStore) SelectAll(ctx context.Context) ([]models.LocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, latitude, longitude FROM locations ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	records := []models.LocationRecord{}
	for rows.Next() {
		var r models.LocationRecord
		if err := rows.Scan(&r.ID, &r.Latitude, &r.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locations: %w", err)
	}
	return records, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
