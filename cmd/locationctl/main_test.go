package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, permission string) string {
	t.Helper()
	dir := t.TempDir()
	body := fmt.Sprintf(`
logging:
  level: disabled
storage:
  database_path: %q
preferences:
  file: %q
location:
  provider: static
  permission: %s
  static:
    latitude: 1.0
    longitude: 2.0
`, filepath.Join(dir, "locations.db"), filepath.Join(dir, "preferences.json"), permission)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_CaptureAndList(t *testing.T) {
	config := writeTestConfig(t, "granted")

	out, err := run(t, "", "--config", config, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No locations recorded yet.")

	out, err = run(t, "", "--config", config, "capture")
	require.NoError(t, err)
	assert.Contains(t, out, "Captured Location 1")
	assert.Contains(t, out, "Latitude: 1 | Longitude: 2")

	_, err = run(t, "", "--config", config, "capture")
	require.NoError(t, err)

	out, err = run(t, "", "--config", config, "list", "--json")
	require.NoError(t, err)

	var records []models.LocationRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Equal(t, []models.LocationRecord{
		{ID: 1, Latitude: "1", Longitude: "2"},
		{ID: 2, Latitude: "1", Longitude: "2"},
	}, records)
}

func TestCLI_CaptureDenied(t *testing.T) {
	config := writeTestConfig(t, "denied")

	_, err := run(t, "", "--config", config, "capture")
	assert.EqualError(t, err, "permission denied to access location")

	out, err := run(t, "", "--config", config, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No locations recorded yet.")
}

func TestCLI_CapturePrompt(t *testing.T) {
	config := writeTestConfig(t, "prompt")

	_, err := run(t, "n\n", "--config", config, "capture")
	assert.Error(t, err)

	out, err := run(t, "y\n", "--config", config, "capture")
	require.NoError(t, err)
	assert.Contains(t, out, "Captured Location 1")

	// the grant is remembered, no answer needed
	out, err = run(t, "", "--config", config, "capture")
	require.NoError(t, err)
	assert.Contains(t, out, "Captured Location 2")
}

func TestCLI_Theme(t *testing.T) {
	config := writeTestConfig(t, "granted")

	out, err := run(t, "", "--config", config, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, err = run(t, "", "--config", config, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, err = run(t, "", "--config", config, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)
}

func TestCLI_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("location:\n  provider: nowhere\n"), 0600))

	_, err := run(t, "", "--config", path, "list")
	assert.ErrorContains(t, err, "unknown location provider")
}
