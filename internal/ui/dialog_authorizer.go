package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/benmeehan/location-base/pkg/location"
)

// DialogAuthorizer asks for location access with a confirm dialog on the given window.
type DialogAuthorizer struct {
	window fyne.Window
}

var _ location.Authorizer = (*DialogAuthorizer)(nil)

// NewDialogAuthorizer creates an authorizer that prompts on window.
func NewDialogAuthorizer(window fyne.Window) *DialogAuthorizer {
	return &DialogAuthorizer{window: window}
}

// RequestPermission shows the dialog and waits for an answer. It must not be called from the
// UI goroutine.
func (d *DialogAuthorizer) RequestPermission(ctx context.Context) (location.PermissionStatus, error) {
	answer := make(chan bool, 1)

	fyne.Do(func() {
		dialog.ShowConfirm(
			"Location access",
			"Allow this app to read the device location?",
			func(ok bool) { answer <- ok },
			d.window,
		)
	})

	select {
	case ok := <-answer:
		if ok {
			return location.PermissionGranted, nil
		}
		return location.PermissionDenied, nil
	case <-ctx.Done():
		return location.PermissionDenied, ctx.Err()
	}
}
