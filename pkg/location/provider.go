package location

import "context"

// Provider interface defines the methods for location providers
type Provider interface {
	// GetLocation blocks until a single fix is available or ctx is done.
	GetLocation(ctx context.Context) (Location, error)
	Close() error
}
