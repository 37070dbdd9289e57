package preferences

import (
	"errors"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/benmeehan/location-base/internal/mocks"
	"github.com/benmeehan/location-base/pkg/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileStore_GetMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"), file.NewFileService())

	v, ok, err := s.Get("@darkMode")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s := NewFileStore(path, file.NewFileService())
	require.NoError(t, s.Set("@darkMode", "true"))
	require.NoError(t, s.Set("@locationPermission", "granted"))
	assert.Equal(t, path, s.Path())

	reopened := NewFileStore(path, file.NewFileService())
	v, ok, err := reopened.Get("@darkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	v, ok, err = reopened.Get("@locationPermission")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "granted", v)
}

func TestFileStore_WriteFailureRestoresPreviousValue(t *testing.T) {
	files := new(mocks.MockFileOperations)
	files.On("IsFileExists", "prefs.json").Return(false, nil).Once()
	files.On("WriteJsonFile", "prefs.json", mock.Anything).Return(nil).Once()
	files.On("WriteJsonFile", "prefs.json", mock.Anything).Return(errors.New("read-only file system")).Once()

	s := NewFileStore("prefs.json", files)
	require.NoError(t, s.Set("@darkMode", "false"))

	err := s.Set("@darkMode", "true")
	assert.ErrorContains(t, err, "read-only file system")

	v, ok, err := s.Get("@darkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)
	files.AssertExpectations(t)
}

func TestFileStore_WriteFailureDropsNewKey(t *testing.T) {
	files := new(mocks.MockFileOperations)
	files.On("IsFileExists", "prefs.json").Return(false, nil).Once()
	files.On("WriteJsonFile", "prefs.json", mock.Anything).Return(errors.New("boom")).Once()

	s := NewFileStore("prefs.json", files)
	assert.Error(t, s.Set("@darkMode", "true"))

	_, ok, err := s.Get("@darkMode")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptFile(t *testing.T) {
	files := new(mocks.MockFileOperations)
	files.On("IsFileExists", "prefs.json").Return(true, nil)
	files.On("ReadJsonFile", "prefs.json", mock.Anything).Return(errors.New("invalid character"))

	s := NewFileStore("prefs.json", files)

	_, _, err := s.Get("@darkMode")
	assert.ErrorContains(t, err, "failed to read preferences file")
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestFyneStore(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := NewFyneStore(a.Preferences())

	_, ok, err := s.Get("@darkMode")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("@darkMode", "true"))
	v, ok, err := s.Get("@darkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}
