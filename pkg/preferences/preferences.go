package preferences

// Store is a small persistent string key-value store for user preferences.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}
