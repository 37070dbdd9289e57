package main

import (
	"fmt"

	"github.com/benmeehan/location-base/internal/service_registry"
	"github.com/benmeehan/location-base/internal/storage"
	"github.com/benmeehan/location-base/internal/utils"
	"github.com/benmeehan/location-base/pkg/file"
	"github.com/benmeehan/location-base/pkg/location"
	"github.com/benmeehan/location-base/pkg/preferences"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "locationctl",
		Short:        "Capture and list device locations from the command line",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to the configuration file")

	root.AddCommand(
		newCaptureCmd(&configPath),
		newListCmd(&configPath),
		newThemeCmd(&configPath),
	)
	return root
}

// session holds the services a single command runs against.
type session struct {
	config   *utils.Config
	logger   zerolog.Logger
	store    *storage.SQLiteStore
	registry *service_registry.ServiceRegistry
}

func openSession(cmd *cobra.Command, configPath string) (*session, error) {
	fileClient := file.NewFileService()

	config, err := utils.LoadConfig(configPath, fileClient)
	if err != nil {
		return nil, err
	}

	logger := utils.NewLogger(cmd.ErrOrStderr(), config.Logging.Level, config.Logging.Pretty)

	store, err := storage.NewSQLiteStore(config.Storage.DatabasePath)
	if err != nil {
		return nil, err
	}

	prefs := preferences.NewFileStore(config.Preferences.File, fileClient)
	registry := service_registry.NewServiceRegistry(store, prefs, logger)

	prompt := location.NewPromptAuthorizer(cmd.InOrStdin(), cmd.ErrOrStderr())
	if err := registry.RegisterServices(config, prompt); err != nil {
		store.Close()
		return nil, err
	}
	if err := registry.StartServices(); err != nil {
		store.Close()
		return nil, err
	}

	return &session{config: config, logger: logger, store: store, registry: registry}, nil
}

func (s *session) Close() error {
	stopErr := s.registry.StopServices()
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return stopErr
}
