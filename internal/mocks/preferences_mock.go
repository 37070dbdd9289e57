package mocks

import "github.com/stretchr/testify/mock"

// MockPreferences is a mock implementation of the preferences.Store interface
type MockPreferences struct {
	mock.Mock
}

func (m *MockPreferences) Get(key string) (string, bool, error) {
	args := m.Called(key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockPreferences) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}
