package main

import (
	"context"
	"flag"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/benmeehan/location-base/internal/service_registry"
	"github.com/benmeehan/location-base/internal/storage"
	"github.com/benmeehan/location-base/internal/ui"
	"github.com/benmeehan/location-base/internal/utils"
	"github.com/benmeehan/location-base/pkg/file"
	"github.com/benmeehan/location-base/pkg/preferences"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	// Load configuration from file
	config, err := utils.LoadConfig(*configPath, file.NewFileService())
	if err != nil {
		bootLogger := utils.NewLogger(os.Stderr, "info", true)
		bootLogger.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
	}

	log := utils.NewLogger(os.Stderr, config.Logging.Level, config.Logging.Pretty)

	fyneApp := app.NewWithID(config.App.ID)
	window := fyneApp.NewWindow(config.App.Name)
	window.Resize(fyne.NewSize(420, 720))

	// Open the record store; the registry creates the schema on start
	store, err := storage.NewSQLiteStore(config.Storage.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", config.Storage.DatabasePath).Msg("Failed to open location database")
	}
	defer store.Close()

	serviceRegistry := service_registry.NewServiceRegistry(store, preferences.NewFyneStore(fyneApp.Preferences()), log)
	if err := serviceRegistry.RegisterServices(config, ui.NewDialogAuthorizer(window)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register services")
	}
	if err := serviceRegistry.StartServices(); err != nil {
		log.Error().Err(err).Msg("Failed to start services")
		store.Close()
		os.Exit(1)
	}
	log.Info().Str("database", store.Path()).Msg("All services started successfully")

	// Cancelled when the window closes so a capture waiting on a dialog cannot block shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := utils.NewWorkerPool(config.UI.CaptureWorkers)

	view := ui.NewMainView(ctx, fyneApp, window, config.App.Name, serviceRegistry.Recorder(), serviceRegistry.Theme(), pool, log)
	window.SetContent(view.Content())
	window.ShowAndRun()

	log.Info().Msg("Shutting down gracefully...")
	cancel()
	pool.Shutdown()
	if err := serviceRegistry.StopServices(); err != nil {
		log.Error().Err(err).Msg("Some services did not stop cleanly")
	}
}
