package service_registry

import (
	"errors"
	"fmt"

	"github.com/benmeehan/location-base/internal/services"
	"github.com/benmeehan/location-base/internal/storage"
	"github.com/benmeehan/location-base/internal/utils"
	"github.com/benmeehan/location-base/pkg/location"
	"github.com/benmeehan/location-base/pkg/preferences"
	"github.com/rs/zerolog"
)

// Service is the lifecycle every registered service implements.
type Service interface {
	Start() error
	Stop() error
}

// ServiceRegistry manages the lifecycle of various services in the system.
type ServiceRegistry struct {
	services    map[string]Service // Stores registered services
	serviceKeys []string           // Maintains order of service registration
	store       storage.RecordStore
	prefs       preferences.Store
	Logger      zerolog.Logger

	recorder *services.LocationRecorder
	theme    *services.ThemeService
}

// NewServiceRegistry initializes a new service registry with dependencies.
func NewServiceRegistry(store storage.RecordStore, prefs preferences.Store, logger zerolog.Logger) *ServiceRegistry {
	return &ServiceRegistry{
		services: make(map[string]Service),
		store:    store,
		prefs:    prefs,
		Logger:   logger,
	}
}

// RegisterService adds a new service to the registry.
func (sr *ServiceRegistry) RegisterService(name string, svc Service) {
	if _, exists := sr.services[name]; exists {
		sr.Logger.Warn().Msgf("Service %s is already registered", name)
		return
	}
	sr.services[name] = svc
	sr.serviceKeys = append(sr.serviceKeys, name)
	sr.Logger.Info().Msgf("Registered service: %s", name)
}

// StartServices initiates all registered services in order.
// If a service fails to start, it stops already started services.
func (sr *ServiceRegistry) StartServices() error {
	startedServices := []string{}

	for _, name := range sr.serviceKeys {
		svc := sr.services[name]
		sr.Logger.Info().Msgf("Starting service: %s", name)
		if err := svc.Start(); err != nil {
			sr.Logger.Error().Err(err).Msgf("Failed to start service: %s", name)

			// Stop already started services before returning
			sr.Logger.Warn().Msg("Stopping already started services due to startup failure...")
			for i := len(startedServices) - 1; i >= 0; i-- {
				_ = sr.services[startedServices[i]].Stop()
			}
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		startedServices = append(startedServices, name)
	}

	return nil
}

// StopServices stops all services in reverse order.
func (sr *ServiceRegistry) StopServices() error {
	var stopErrors []error
	for i := len(sr.serviceKeys) - 1; i >= 0; i-- {
		name := sr.serviceKeys[i]
		if err := sr.services[name].Stop(); err != nil {
			stopErrors = append(stopErrors, fmt.Errorf("failed to stop %s: %w", name, err))
		}
	}
	if len(stopErrors) > 0 {
		for _, e := range stopErrors {
			sr.Logger.Error().Err(e).Msg("Service stop failure")
		}
		return errors.Join(stopErrors...)
	}
	return nil
}

// RegisterServices builds the theme and recorder services from configuration. prompt is the
// interactive authorizer used when the permission policy is "prompt"; it may be nil otherwise.
func (sr *ServiceRegistry) RegisterServices(config *utils.Config, prompt location.Authorizer) error {
	// Ordered service definitions with inline constructors
	servicesInOrder := []struct {
		name        string
		constructor func() (Service, error)
	}{
		{
			name: "theme",
			constructor: func() (Service, error) {
				sr.theme = services.NewThemeService(sr.prefs, sr.Logger.With().Str("service", "theme").Logger())
				return sr.theme, nil
			},
		},
		{
			name: "recorder",
			constructor: func() (Service, error) {
				logger := sr.Logger.With().Str("service", "recorder").Logger()

				provider, err := NewProvider(config, logger)
				if err != nil {
					return nil, err
				}
				authorizer, err := NewAuthorizer(config, prompt, sr.prefs)
				if err != nil {
					return nil, err
				}

				sr.recorder = services.NewLocationRecorder(
					location.NewGatedSource(authorizer, provider),
					sr.store,
					config.Location.FixTimeout,
					logger,
				)
				return sr.recorder, nil
			},
		},
	}

	// Register services in the predefined order
	registeredServices := []string{}
	for _, svc := range servicesInOrder {
		serviceInstance, err := svc.constructor()
		if err != nil {
			sr.Logger.Error().Err(err).Msgf("Failed to create %s service", svc.name)
			return err
		}
		sr.RegisterService(svc.name, serviceInstance)
		registeredServices = append(registeredServices, svc.name)
	}

	sr.Logger.Info().Msgf("Registered services in order: %v", registeredServices)
	return nil
}

// Recorder returns the location recorder built by RegisterServices.
func (sr *ServiceRegistry) Recorder() *services.LocationRecorder {
	return sr.recorder
}

// Theme returns the theme service built by RegisterServices.
func (sr *ServiceRegistry) Theme() *services.ThemeService {
	return sr.theme
}
