package dotenv

import (
	"os"
	"sync"
)

// Store is a string-keyed mapping the loader writes into. Implementations
// must make SetIfAbsent atomic: the presence check and the insert happen
// together or not at all.
type Store interface {
	Get(key string) (string, bool)
	Has(key string) bool
	// SetIfAbsent stores value under key unless key is present.
	// It reports whether the insert happened.
	SetIfAbsent(key, value string) bool
}

// Server is the process-wide server/request metadata mapping.
var Server = NewMapStore()

// MapStore is a thread-safe in-memory Store.
type MapStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMapStore creates an empty store.
func NewMapStore() *MapStore {
	return &MapStore{items: make(map[string]string)}
}

func (s *MapStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok
}

func (s *MapStore) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

func (s *MapStore) SetIfAbsent(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = value
	return true
}

// Set stores value under key, replacing any previous value.
func (s *MapStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
}

// Delete removes key from the store.
func (s *MapStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
}

// Len returns the number of keys.
func (s *MapStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// osEnv writes into the real process environment.
type osEnv struct{}

// envMu serializes check-then-set on the process environment for every
// loader in this process. Writers outside this package are not covered.
var envMu sync.Mutex

// Process returns the Store backed by the OS environment.
func Process() Store {
	return osEnv{}
}

func (osEnv) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osEnv) Has(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func (osEnv) SetIfAbsent(key, value string) bool {
	envMu.Lock()
	defer envMu.Unlock()

	if _, ok := os.LookupEnv(key); ok {
		return false
	}
	return os.Setenv(key, value) == nil
}
