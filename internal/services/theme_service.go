package services

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/benmeehan/location-base/pkg/preferences"
	"github.com/rs/zerolog"
)

// DarkModeKey is the preference holding the persisted theme choice.
const DarkModeKey = "@darkMode"

// ThemeService holds the light/dark choice and persists it in the preference store.
type ThemeService struct {
	prefs  preferences.Store
	logger zerolog.Logger

	mu       sync.RWMutex
	dark     bool
	running  bool
	onChange []func(bool)
}

// NewThemeService creates a ThemeService. The mode is light until Start loads the stored value.
func NewThemeService(prefs preferences.Store, logger zerolog.Logger) *ThemeService {
	return &ThemeService{prefs: prefs, logger: logger}
}

// Start loads the persisted mode. Only the exact value "true" selects dark mode.
func (t *ThemeService) Start() error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		t.logger.Warn().Msg("ThemeService is already running")
		return errors.New("theme service is already running")
	}
	t.running = true
	t.mu.Unlock()

	value, ok, err := t.prefs.Get(DarkModeKey)
	if err != nil {
		// a broken preference file should not keep the app from starting
		t.logger.Error().Err(err).Msg("Failed to load dark mode preference, using light mode")
		return nil
	}

	dark := ok && value == "true"
	t.apply(dark)

	t.logger.Info().Bool("dark_mode", dark).Msg("ThemeService started")
	return nil
}

// Stop marks the service as stopped. The preference is written on every change, so there is
// nothing to flush.
func (t *ThemeService) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		t.logger.Warn().Msg("ThemeService is not running")
		return errors.New("theme service is not running")
	}
	t.running = false
	t.logger.Info().Msg("ThemeService stopped")
	return nil
}

// DarkMode reports the current mode.
func (t *ThemeService) DarkMode() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// Toggle flips the mode and persists it, returning the new mode.
func (t *ThemeService) Toggle() (bool, error) {
	t.mu.RLock()
	dark := !t.dark
	t.mu.RUnlock()

	return dark, t.SetDarkMode(dark)
}

// SetDarkMode switches to the given mode and persists it. The in-memory mode changes even if
// the write fails; the write error is returned.
func (t *ThemeService) SetDarkMode(dark bool) error {
	t.apply(dark)

	if err := t.prefs.Set(DarkModeKey, strconv.FormatBool(dark)); err != nil {
		t.logger.Error().Err(err).Bool("dark_mode", dark).Msg("Failed to persist dark mode preference")
		return fmt.Errorf("failed to persist dark mode: %w", err)
	}

	t.logger.Debug().Bool("dark_mode", dark).Msg("Dark mode preference saved")
	return nil
}

// OnChange registers fn to be called with the new mode after every change.
func (t *ThemeService) OnChange(fn func(bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = append(t.onChange, fn)
}

func (t *ThemeService) apply(dark bool) {
	t.mu.Lock()
	changed := t.dark != dark
	t.dark = dark
	listeners := slices.Clone(t.onChange)
	t.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(dark)
		}
	}
}
