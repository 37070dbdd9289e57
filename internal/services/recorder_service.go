package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/benmeehan/location-base/internal/storage"
	"github.com/benmeehan/location-base/pkg/location"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocationRecorder captures single fixes on request, appends them to the record store and
// keeps a cached copy of the full record set for display. The cache is only ever replaced by
// LoadLocations.
type LocationRecorder struct {
	// Configuration fields
	fixTimeout time.Duration

	// Dependencies
	source location.Source
	store  storage.RecordStore
	logger zerolog.Logger

	// Internal state management
	loadMu    sync.Mutex // serializes SelectAll with publishing its result
	mu        sync.RWMutex
	records   []models.LocationRecord
	inFlight  int
	running   bool
	onRecords []func([]models.LocationRecord)
	onBusy    []func(bool)
}

// NewLocationRecorder creates a LocationRecorder. A positive fixTimeout bounds each sensor read.
func NewLocationRecorder(source location.Source, store storage.RecordStore, fixTimeout time.Duration,
	logger zerolog.Logger) *LocationRecorder {
	return &LocationRecorder{
		fixTimeout: fixTimeout,
		source:     source,
		store:      store,
		logger:     logger,
		records:    []models.LocationRecord{},
	}
}

// Start ensures the schema exists and loads the stored records.
func (r *LocationRecorder) Start() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		r.logger.Warn().Msg("LocationRecorder is already running")
		return errors.New("location recorder is already running")
	}
	r.running = true
	r.mu.Unlock()

	ctx := context.Background()
	if err := r.store.EnsureSchema(ctx); err != nil {
		r.setRunning(false)
		r.logger.Error().Err(err).Msg("Failed to create locations schema")
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	if _, err := r.LoadLocations(ctx); err != nil {
		r.setRunning(false)
		return err
	}

	r.logger.Info().Int("records", len(r.Locations())).Msg("LocationRecorder started")
	return nil
}

// Stop releases the location source.
func (r *LocationRecorder) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		r.logger.Warn().Msg("LocationRecorder is not running")
		return errors.New("location recorder is not running")
	}
	r.running = false
	r.mu.Unlock()

	if err := r.source.Close(); err != nil {
		r.logger.Error().Err(err).Msg("Failed to close location source")
		return err
	}

	r.logger.Info().Msg("LocationRecorder stopped")
	return nil
}

// CaptureLocation asks for permission, reads one fix, appends it to the store and reloads the
// record set. Failures are classified as ErrPermissionDenied, ErrSensorFailure or
// ErrStorageFailure; on any failure the cached list is left untouched.
func (r *LocationRecorder) CaptureLocation(ctx context.Context) ([]models.LocationRecord, error) {
	_, records, err := r.CaptureRecord(ctx)
	return records, err
}

// CaptureRecord is CaptureLocation that also returns the record it stored.
func (r *LocationRecorder) CaptureRecord(ctx context.Context) (models.LocationRecord, []models.LocationRecord, error) {
	logger := r.logger.With().Str("capture_id", uuid.NewString()).Logger()

	r.beginWork()
	defer r.endWork()

	status, err := r.source.RequestPermission(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Location permission request failed")
		return models.LocationRecord{}, nil, fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	if status != location.PermissionGranted {
		logger.Info().Str("status", string(status)).Msg("Location permission denied")
		return models.LocationRecord{}, nil, ErrPermissionDenied
	}

	fixCtx := ctx
	if r.fixTimeout > 0 {
		var cancel context.CancelFunc
		fixCtx, cancel = context.WithTimeout(ctx, r.fixTimeout)
		defer cancel()
	}

	fix, err := r.source.GetCurrentFix(fixCtx)
	if err != nil {
		logger.Error().Err(err).Dur("timeout", r.fixTimeout).Msg("Failed to get current location fix")
		return models.LocationRecord{}, nil, fmt.Errorf("%w: %w", ErrSensorFailure, err)
	}

	latitude := formatCoordinate(fix.Latitude)
	longitude := formatCoordinate(fix.Longitude)

	id, err := r.store.Insert(ctx, latitude, longitude)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to store location")
		return models.LocationRecord{}, nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	logger.Info().
		Int64("id", id).
		Str("latitude", latitude).
		Str("longitude", longitude).
		Msg("Location captured")

	record := models.LocationRecord{ID: id, Latitude: latitude, Longitude: longitude}
	records, err := r.LoadLocations(ctx)
	if err != nil {
		return models.LocationRecord{}, nil, err
	}
	return record, records, nil
}

// LoadLocations reads every stored record and publishes it as the new cached list. Loads run
// one at a time, so a slower earlier read can never replace a newer list. Listeners are called
// in publication order and must not call back into LoadLocations.
func (r *LocationRecorder) LoadLocations(ctx context.Context) ([]models.LocationRecord, error) {
	r.beginWork()
	defer r.endWork()

	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	records, err := r.store.SelectAll(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to load locations")
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	r.mu.Lock()
	r.records = records
	listeners := slices.Clone(r.onRecords)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(slices.Clone(records))
	}

	r.logger.Debug().Int("records", len(records)).Msg("Locations loaded")
	return slices.Clone(records), nil
}

// Locations returns a copy of the cached record set.
func (r *LocationRecorder) Locations() []models.LocationRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.records)
}

// Busy reports whether a capture or load is in progress.
func (r *LocationRecorder) Busy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inFlight > 0
}

// OnRecordsChanged registers fn to receive every newly loaded record set.
func (r *LocationRecorder) OnRecordsChanged(fn func([]models.LocationRecord)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRecords = append(r.onRecords, fn)
}

// OnBusyChanged registers fn to be told when the recorder goes busy or idle.
func (r *LocationRecorder) OnBusyChanged(fn func(bool)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onBusy = append(r.onBusy, fn)
}

func (r *LocationRecorder) setRunning(running bool) {
	r.mu.Lock()
	r.running = running
	r.mu.Unlock()
}

func (r *LocationRecorder) beginWork() {
	r.mu.Lock()
	r.inFlight++
	notify := r.inFlight == 1
	listeners := slices.Clone(r.onBusy)
	r.mu.Unlock()

	if notify {
		for _, fn := range listeners {
			fn(true)
		}
	}
}

func (r *LocationRecorder) endWork() {
	r.mu.Lock()
	r.inFlight--
	notify := r.inFlight == 0
	listeners := slices.Clone(r.onBusy)
	r.mu.Unlock()

	if notify {
		for _, fn := range listeners {
			fn(false)
		}
	}
}

// formatCoordinate renders v with the fewest digits that parse back to the same float64.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
