package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/benmeehan/location-base/pkg/file"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, "My Location BASE", config.App.Name)
	assert.Equal(t, ProviderStatic, config.Location.Provider)
	assert.Equal(t, PermissionPrompt, config.Location.Permission)
	assert.Equal(t, 30*time.Second, config.Location.FixTimeout)
	assert.Equal(t, 1, config.UI.CaptureWorkers)
	assert.Equal(t, "locations.db", filepath.Base(config.Storage.DatabasePath))
	assert.Equal(t, "preferences.json", filepath.Base(config.Preferences.File))
}

func TestLoadConfig_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
app:
  name: Field Notes
logging:
  level: debug
  pretty: true
storage:
  database_path: /tmp/field.db
location:
  provider: sensor
  permission: granted
  fix_timeout: 5s
  gps_device_port: /dev/ttyACM0
  gps_baud_rate: 4800
ui:
  capture_workers: 2
`)

	config, err := LoadConfig(path, file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, "Field Notes", config.App.Name)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.True(t, config.Logging.Pretty)
	assert.Equal(t, "/tmp/field.db", config.Storage.DatabasePath)
	assert.Equal(t, ProviderSensor, config.Location.Provider)
	assert.Equal(t, PermissionGranted, config.Location.Permission)
	assert.Equal(t, 5*time.Second, config.Location.FixTimeout)
	assert.Equal(t, "/dev/ttyACM0", config.Location.GPSDevicePort)
	assert.Equal(t, 4800, config.Location.GPSDeviceBaudRate)
	assert.Equal(t, 2, config.UI.CaptureWorkers)
}

func TestLoadConfig_ZeroFixTimeoutDisablesBound(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "location:\n  fix_timeout: 0s\n"), file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), config.Location.FixTimeout)
}

func TestLoadConfig_AbsentFixTimeoutUsesDefault(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "location:\n  provider: static\n"), file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, DefaultFixTimeout, config.Location.FixTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"provider":   "location:\n  provider: carrier-pigeon\n",
		"permission": "location:\n  permission: sometimes\n",
		"maps key":   "location:\n  provider: google\n",
		"timeout":    "location:\n  fix_timeout: -1s\n",
		"yaml":       "location: [\n",
	}

	for name, body := range tests {
		_, err := LoadConfig(writeConfig(t, body), file.NewFileService())
		assert.Error(t, err, name)
	}
}

func TestDefaultConfig_Validates(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, "warn", false)
	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)

	fallback := NewLogger(&buf, "chatty", false)
	assert.Equal(t, zerolog.InfoLevel, fallback.GetLevel())
}

func TestSliceToSet(t *testing.T) {
	set := sliceToSet([]string{"a", "b", "a"})
	assert.Len(t, set, 2)
	assert.Contains(t, set, "a")
	assert.Contains(t, set, "b")
}

func TestWorkerPool_RunsJobsInOrderWithOneWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewWorkerPool(1)

	var mu sync.Mutex
	var order []int
	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Submit(func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, i)
		}))
	}
	pool.Shutdown()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestWorkerPool_SubmitAfterShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewWorkerPool(0)
	pool.Shutdown()
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), ErrPoolClosed)
}
