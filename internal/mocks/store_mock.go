package mocks

import (
	"context"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore is a mock implementation of the storage.RecordStore interface
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRecordStore) Insert(ctx context.Context, latitude, longitude string) (int64, error) {
	args := m.Called(ctx, latitude, longitude)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordStore) SelectAll(ctx context.Context) ([]models.LocationRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.LocationRecord)
	return records, args.Error(1)
}

func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
