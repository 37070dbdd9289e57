package location

import "context"

// StaticProvider always reports the same coordinates. Useful on hosts without a positioning
// device and in tests.
type StaticProvider struct {
	location Location
}

// NewStaticProvider creates a provider that returns the given coordinates.
func NewStaticProvider(latitude, longitude float64) *StaticProvider {
	return &StaticProvider{location: Location{Latitude: latitude, Longitude: longitude}}
}

// GetLocation returns the configured coordinates unless ctx is already done.
func (s *StaticProvider) GetLocation(ctx context.Context) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}
	return s.location, nil
}

// Close is a no-op.
func (s *StaticProvider) Close() error {
	return nil
}
