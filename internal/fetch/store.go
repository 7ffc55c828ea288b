// Package fetch provides cached, rate-limited HTTP access to the upstream APIs.
//
// Raw response bodies are stored in a key-value Store addressed by an MD5
// hash of the request URL. Identical URLs always map to the identical key,
// so a response fetched once is never fetched again. Entries have no TTL;
// past draw results never change, so a cache entry is permanent until
// manually deleted. Callers fetching data that is still changing (the
// current year) must bypass the cache explicitly.
package fetch

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
)

// CacheKey returns the store key for a request URL.
func CacheKey(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Store is a key-value store for raw response bodies.
type Store interface {
	// Get returns the stored payload for key, or false if absent.
	Get(key string) ([]byte, bool)

	// Put persists the payload under key.
	Put(key string, data []byte) error
}

// DirStore keeps one <key>.json file per entry under a single directory.
// The directory is created on first write.
type DirStore struct {
	dir       string
	writeLock sync.Mutex
}

// NewDirStore creates a filesystem-backed store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Path returns the filesystem path for the given key.
func (s *DirStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the stored payload for key, or false if absent.
func (s *DirStore) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put persists the payload atomically using temp file + rename.
func (s *DirStore) Put(key string, data []byte) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	path := s.Path(key)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// MemoryStore is an in-memory store for testing.
type MemoryStore struct {
	entries map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Get returns the stored payload for key, or false if absent.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true
}

// Put persists the payload under key.
func (s *MemoryStore) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.entries[key] = cp
	return nil
}

// Seed adds a payload for a URL directly (for testing).
func (s *MemoryStore) Seed(url string, data []byte) {
	s.Put(CacheKey(url), data)
}

// Len returns the number of stored entries (for testing).
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
