package cartstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MemStorage is an in-memory Storage, mainly for tests.
type MemStorage struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewMemStorage creates an empty MemStorage.
func NewMemStorage() *MemStorage {
	return &MemStorage{data: make(map[string][]byte)}
}

// Load returns the blob stored under key, if any.
func (m *MemStorage) Load(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	return data, ok, nil
}

// Save stores the blob under key.
func (m *MemStorage) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[key] = stored
	return nil
}

// FileStorage persists blobs as files under a directory, one file per key.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the directory if needed and returns a FileStorage
// rooted there.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(key string) string {
	// Keys are dotted namespaces, not paths.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(f.dir, safe+".json")
}

// Load reads the blob stored under key, if any.
func (f *FileStorage) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Save writes the blob under key.
func (f *FileStorage) Save(key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o644)
}
