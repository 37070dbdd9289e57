package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/benmeehan/location-base/pkg/file"
)

// Location provider names accepted in location.provider.
const (
	ProviderStatic = "static"
	ProviderSensor = "sensor"
	ProviderGoogle = "google"
)

// Permission policies accepted in location.permission.
const (
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
	PermissionPrompt  = "prompt"
)

// Config represents the structure of the configuration file.
type Config struct {
	App struct {
		Name string `yaml:"name"` // Window and app bar title
		ID   string `yaml:"id"`   // Reverse-DNS application id, scopes Fyne preferences
	} `yaml:"app"`

	Logging struct {
		Level  string `yaml:"level"`  // zerolog level name
		Pretty bool   `yaml:"pretty"` // Human readable console output instead of JSON
	} `yaml:"logging"`

	Storage struct {
		DatabasePath string `yaml:"database_path"` // SQLite file holding captured locations
	} `yaml:"storage"`

	Preferences struct {
		File string `yaml:"file"` // JSON file for preferences outside the GUI
	} `yaml:"preferences"`

	Location struct {
		Provider   string        `yaml:"provider"`    // static, sensor or google
		Permission string        `yaml:"permission"`  // granted, denied or prompt
		FixTimeout time.Duration `yaml:"fix_timeout"` // Upper bound for one fix, 0 waits forever
		Static     struct {
			Latitude  float64 `yaml:"latitude"`
			Longitude float64 `yaml:"longitude"`
		} `yaml:"static"`
		GPSDevicePort     string `yaml:"gps_device_port"` // UNIX Port where the GPS sensor is mounted
		GPSDeviceBaudRate int    `yaml:"gps_baud_rate"`   // The Baud rate for GPS sensor
		MapsAPIKey        string `yaml:"maps_api_key"`    // Google maps API Key
		ModemIndex        int    `yaml:"modem_index"`     // ModemManager modem used for cell tower lookup
	} `yaml:"location"`

	UI struct {
		CaptureWorkers int `yaml:"capture_workers"` // Concurrent captures dispatched from the UI
	} `yaml:"ui"`
}

// DefaultFixTimeout bounds a fix when the config does not set fix_timeout.
const DefaultFixTimeout = 30 * time.Second

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	config := newConfig()
	config.applyDefaults()
	return config
}

// newConfig presets fields whose zero value is a meaningful setting, so only an absent key
// picks up the default.
func newConfig() *Config {
	var config Config
	config.Location.FixTimeout = DefaultFixTimeout
	return &config
}

// LoadConfig loads the YAML configuration from the specified file.
// A missing file yields the defaults. It returns a pointer to the Config struct and an error if loading fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	config := newConfig()

	exists, err := fileClient.IsFileExists(filename)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := fileClient.ReadYamlFile(filename, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "My Location BASE"
	}
	if c.App.ID == "" {
		c.App.ID = "io.github.benmeehan.locationbase"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = defaultDataPath("locations.db")
	}
	if c.Preferences.File == "" {
		c.Preferences.File = defaultDataPath("preferences.json")
	}
	if c.Location.Provider == "" {
		c.Location.Provider = ProviderStatic
	}
	if c.Location.Permission == "" {
		c.Location.Permission = PermissionPrompt
	}
	if c.Location.GPSDevicePort == "" {
		c.Location.GPSDevicePort = "/dev/ttyUSB0"
	}
	if c.Location.GPSDeviceBaudRate == 0 {
		c.Location.GPSDeviceBaudRate = 9600
	}
	if c.UI.CaptureWorkers <= 0 {
		c.UI.CaptureWorkers = 1
	}
}

// Validate checks enum fields and provider specific requirements.
func (c *Config) Validate() error {
	providers := sliceToSet([]string{ProviderStatic, ProviderSensor, ProviderGoogle})
	if _, ok := providers[c.Location.Provider]; !ok {
		return fmt.Errorf("unknown location provider %q", c.Location.Provider)
	}

	permissions := sliceToSet([]string{PermissionGranted, PermissionDenied, PermissionPrompt})
	if _, ok := permissions[c.Location.Permission]; !ok {
		return fmt.Errorf("unknown location permission policy %q", c.Location.Permission)
	}

	if c.Location.Provider == ProviderGoogle && c.Location.MapsAPIKey == "" {
		return fmt.Errorf("location provider %q requires maps_api_key", ProviderGoogle)
	}
	if c.Location.FixTimeout < 0 {
		return fmt.Errorf("fix_timeout must not be negative, got %s", c.Location.FixTimeout)
	}
	return nil
}

// defaultDataPath places name in the user's config directory, or the working directory when
// that is unknown.
func defaultDataPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "locationbase", name)
}

// sliceToSet converts a slice of any comparable type to a set represented by a map[T]struct{}.
func sliceToSet[T comparable](slice []T) map[T]struct{} {
	set := make(map[T]struct{}, len(slice))
	for _, item := range slice {
		set[item] = struct{}{}
	}
	return set
}
