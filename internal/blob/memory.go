package blob

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jipsifred/Vorlesungen/internal/library"
)

// MemoryStore is an in-memory blob store, useful for testing.
// It is safe for concurrent use.
type MemoryStore struct {
	name  string
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an in-memory blob store with the given name.
// The name is part of issued locators, so two stores with different
// names do not resolve each other's locators.
func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:  name,
		blobs: make(map[string][]byte),
	}
}

func (s *MemoryStore) locator(key string) string {
	return "mem://" + s.name + "/" + key
}

// Put stores data under key, overwriting any existing blob.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[key] = buf
	return s.locator(key), nil
}

// Get retrieves the blob stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", key)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Remove deletes the given blobs. Absent keys are a no-op.
func (s *MemoryStore) Remove(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.blobs, key)
	}
	return nil
}

// Resolve recovers the storage key from a mem:// locator issued by
// this store.
func (s *MemoryStore) Resolve(locator string) (string, error) {
	key, ok := strings.CutPrefix(locator, "mem://"+s.name+"/")
	if !ok || key == "" {
		return "", fmt.Errorf("locator not issued by this store: %s", locator)
	}
	return key, nil
}

// ValidateSetup always succeeds for the in-memory store.
func (s *MemoryStore) ValidateSetup(context.Context) error { return nil }

// Len reports the number of stored blobs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// Compile-time check that MemoryStore implements library.BlobStore
var _ library.BlobStore = (*MemoryStore)(nil)
