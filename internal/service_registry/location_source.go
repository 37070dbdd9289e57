package service_registry

import (
	"fmt"

	"github.com/benmeehan/location-base/internal/utils"
	"github.com/benmeehan/location-base/pkg/location"
	"github.com/benmeehan/location-base/pkg/preferences"
	"github.com/rs/zerolog"
)

// NewProvider builds the location provider selected by config.
func NewProvider(config *utils.Config, logger zerolog.Logger) (location.Provider, error) {
	switch config.Location.Provider {
	case utils.ProviderStatic:
		return location.NewStaticProvider(config.Location.Static.Latitude, config.Location.Static.Longitude), nil
	case utils.ProviderSensor:
		return location.NewDeviceSensorProvider(config.Location.GPSDevicePort, config.Location.GPSDeviceBaudRate), nil
	case utils.ProviderGoogle:
		provider, err := location.NewGoogleGeolocationProvider(config.Location.MapsAPIKey, config.Location.ModemIndex, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Geolocation provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown location provider %q", config.Location.Provider)
	}
}

// NewAuthorizer builds the permission policy selected by config. For the prompt policy, prompt
// asks the user and a grant is remembered in prefs.
func NewAuthorizer(config *utils.Config, prompt location.Authorizer, prefs preferences.Store) (location.Authorizer, error) {
	switch config.Location.Permission {
	case utils.PermissionGranted:
		return location.StaticAuthorizer{Status: location.PermissionGranted}, nil
	case utils.PermissionDenied:
		return location.StaticAuthorizer{Status: location.PermissionDenied}, nil
	case utils.PermissionPrompt:
		if prompt == nil {
			return nil, fmt.Errorf("permission policy %q needs an interactive authorizer", utils.PermissionPrompt)
		}
		return location.NewRememberingAuthorizer(prompt, prefs), nil
	default:
		return nil, fmt.Errorf("unknown location permission policy %q", config.Location.Permission)
	}
}
