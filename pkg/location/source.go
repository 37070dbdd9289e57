package location

import (
	"context"
	"errors"
	"sync"
)

// ErrPermissionNotGranted is returned by GatedSource.GetCurrentFix when no granted
// RequestPermission is waiting for its fix.
var ErrPermissionNotGranted = errors.New("location permission has not been granted")

// Source is a permission-gated supplier of single fixes.
type Source interface {
	RequestPermission(ctx context.Context) (PermissionStatus, error)
	GetCurrentFix(ctx context.Context) (Location, error)
	Close() error
}

// GatedSource only lets fixes through from provider after authorizer granted access. Every
// granted RequestPermission allows exactly one GetCurrentFix, so concurrent callers never see
// each other's answers.
type GatedSource struct {
	authorizer Authorizer
	provider   Provider

	mu      sync.Mutex
	pending int // granted requests whose fix has not been taken yet
}

var _ Source = (*GatedSource)(nil)

// NewGatedSource composes an authorizer and a provider.
func NewGatedSource(authorizer Authorizer, provider Provider) *GatedSource {
	return &GatedSource{authorizer: authorizer, provider: provider}
}

// RequestPermission asks the authorizer. A grant entitles the caller to one GetCurrentFix.
func (g *GatedSource) RequestPermission(ctx context.Context) (PermissionStatus, error) {
	status, err := g.authorizer.RequestPermission(ctx)
	if err != nil {
		return PermissionDenied, err
	}

	if status == PermissionGranted {
		g.mu.Lock()
		g.pending++
		g.mu.Unlock()
	}
	return status, nil
}

// GetCurrentFix takes one outstanding grant and requests a fix from the provider.
func (g *GatedSource) GetCurrentFix(ctx context.Context) (Location, error) {
	g.mu.Lock()
	if g.pending == 0 {
		g.mu.Unlock()
		return Location{}, ErrPermissionNotGranted
	}
	g.pending--
	g.mu.Unlock()

	return g.provider.GetLocation(ctx)
}

// Close releases the provider.
func (g *GatedSource) Close() error {
	return g.provider.Close()
}
