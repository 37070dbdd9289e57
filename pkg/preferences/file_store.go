package preferences

import (
	"fmt"
	"sync"

	"github.com/benmeehan/location-base/pkg/file"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// FileStore keeps preferences in a JSON object on disk. Reads are served from an in-memory
// copy loaded on first use; every Set rewrites the whole file atomically.
type FileStore struct {
	path  string
	files file.FileOperations
	cache cmap.ConcurrentMap[string, string]

	mu     sync.Mutex // guards loaded and serializes writes
	loaded bool
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the JSON file at path. The file need not exist yet.
func NewFileStore(path string, files file.FileOperations) *FileStore {
	return &FileStore{
		path:  path,
		files: files,
		cache: cmap.New[string](),
	}
}

func (s *FileStore) ensureLoadedLocked() error {
	if s.loaded {
		return nil
	}

	exists, err := s.files.IsFileExists(s.path)
	if err != nil {
		return fmt.Errorf("failed to stat preferences file: %w", err)
	}
	if exists {
		values := map[string]string{}
		if err := s.files.ReadJsonFile(s.path, &values); err != nil {
			return fmt.Errorf("failed to read preferences file: %w", err)
		}
		s.cache.MSet(values)
	}

	s.loaded = true
	return nil
}

// Get returns the stored value for key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	err := s.ensureLoadedLocked()
	s.mu.Unlock()
	if err != nil {
		return "", false, err
	}

	v, ok := s.cache.Get(key)
	return v, ok, nil
}

// Set stores value under key and persists the whole set. On a failed write the previous
// value is restored.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}

	prev, had := s.cache.Get(key)
	s.cache.Set(key, value)

	if err := s.files.WriteJsonFile(s.path, s.cache.Items()); err != nil {
		if had {
			s.cache.Set(key, prev)
		} else {
			s.cache.Remove(key)
		}
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}
