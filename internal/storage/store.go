package storage

import (
	"context"

	"github.com/benmeehan/location-base/internal/models"
)

// RecordStore is the durable, append-only table of captured locations.
type RecordStore interface {
	// EnsureSchema creates the locations table if it is absent. Safe to call repeatedly.
	EnsureSchema(ctx context.Context) error
	// Insert appends a record and returns the id assigned by the store.
	Insert(ctx context.Context, latitude, longitude string) (int64, error)
	// SelectAll returns every record in insertion (id ascending) order.
	SelectAll(ctx context.Context) ([]models.LocationRecord, error)
	Close() error
}
