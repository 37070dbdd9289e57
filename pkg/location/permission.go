package location

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// PermissionStatus is the outcome of a location permission request.
type PermissionStatus string

const (
	PermissionGranted PermissionStatus = "granted"
	PermissionDenied  PermissionStatus = "denied"
)

// PermissionKey is the preference under which a granted permission is remembered.
const PermissionKey = "@locationPermission"

// Authorizer asks whether the device location may be read.
type Authorizer interface {
	RequestPermission(ctx context.Context) (PermissionStatus, error)
}

// ParsePermissionStatus maps a config value onto a PermissionStatus.
func ParsePermissionStatus(s string) (PermissionStatus, error) {
	switch PermissionStatus(strings.ToLower(strings.TrimSpace(s))) {
	case PermissionGranted:
		return PermissionGranted, nil
	case PermissionDenied:
		return PermissionDenied, nil
	}
	return "", fmt.Errorf("unknown permission status %q", s)
}

// StaticAuthorizer answers every request with the same status.
type StaticAuthorizer struct {
	Status PermissionStatus
}

// RequestPermission returns the configured status.
func (a StaticAuthorizer) RequestPermission(ctx context.Context) (PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDenied, err
	}
	return a.Status, nil
}

// PromptAuthorizer asks the user on a terminal. Anything but an explicit yes is a denial.
type PromptAuthorizer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptAuthorizer creates an authorizer reading answers from in and writing the question to out.
func NewPromptAuthorizer(in io.Reader, out io.Writer) *PromptAuthorizer {
	return &PromptAuthorizer{in: bufio.NewReader(in), out: out}
}

// RequestPermission prints the question and waits for one line of input.
func (p *PromptAuthorizer) RequestPermission(ctx context.Context) (PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDenied, err
	}

	if _, err := fmt.Fprint(p.out, "Allow access to this device's location? [y/N]: "); err != nil {
		return PermissionDenied, err
	}

	answer, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return PermissionDenied, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return PermissionGranted, nil
	default:
		return PermissionDenied, nil
	}
}

// KeyValueStore is the subset of a preference store the RememberingAuthorizer needs.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// RememberingAuthorizer records a grant in prefs so the user is asked only until they accept.
// Denials are not remembered.
type RememberingAuthorizer struct {
	next  Authorizer
	prefs KeyValueStore
}

// NewRememberingAuthorizer wraps next with a persisted grant.
func NewRememberingAuthorizer(next Authorizer, prefs KeyValueStore) *RememberingAuthorizer {
	return &RememberingAuthorizer{next: next, prefs: prefs}
}

// RequestPermission consults the stored grant before asking the wrapped authorizer.
func (r *RememberingAuthorizer) RequestPermission(ctx context.Context) (PermissionStatus, error) {
	value, ok, err := r.prefs.Get(PermissionKey)
	if err != nil {
		return PermissionDenied, fmt.Errorf("failed to read stored permission: %w", err)
	}
	if ok && PermissionStatus(value) == PermissionGranted {
		return PermissionGranted, nil
	}

	status, err := r.next.RequestPermission(ctx)
	if err != nil {
		return PermissionDenied, err
	}
	if status == PermissionGranted {
		if err := r.prefs.Set(PermissionKey, string(PermissionGranted)); err != nil {
			return status, fmt.Errorf("failed to store permission: %w", err)
		}
	}
	return status, nil
}
