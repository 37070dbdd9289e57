package mocks

import (
	"context"

	"github.com/benmeehan/location-base/pkg/location"
	"github.com/stretchr/testify/mock"
)

// MockSource is a mock implementation of the location.Source interface
type MockSource struct {
	mock.Mock
}

func (m *MockSource) RequestPermission(ctx context.Context) (location.PermissionStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(location.PermissionStatus), args.Error(1)
}

func (m *MockSource) GetCurrentFix(ctx context.Context) (location.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).(location.Location), args.Error(1)
}

func (m *MockSource) Close() error {
	args := m.Called()
	return args.Error(0)
}
