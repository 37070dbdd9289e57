package preferences

import "fyne.io/fyne/v2"

// FyneStore adapts the application preferences of a Fyne app. Fyne does not distinguish
// a missing key from an empty value, so an empty string reads as absent.
type FyneStore struct {
	prefs fyne.Preferences
}

var _ Store = (*FyneStore)(nil)

// NewFyneStore wraps prefs, usually fyne.App.Preferences().
func NewFyneStore(prefs fyne.Preferences) *FyneStore {
	return &FyneStore{prefs: prefs}
}

// Get returns the value stored under key and whether it was present.
func (f *FyneStore) Get(key string) (string, bool, error) {
	v := f.prefs.String(key)
	return v, v != "", nil
}

// Set stores value under key.
func (f *FyneStore) Set(key, value string) error {
	f.prefs.SetString(key, value)
	return nil
}
