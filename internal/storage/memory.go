// Package storage provides blob store implementations the recipe store
// persists into.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
)

// Compile-time interface check.
var _ domain.BlobStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory blob store. Safe for concurrent access.
// Blobs are copied on the way in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	log   *logger.Logger
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
		log:   log,
	}
}

// Get returns the blob stored under key.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		s.log.Debug("memory store: key not found: %s", key)
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

// Set stores blob under key, overwriting any previous value.
func (s *MemoryStore) Set(ctx context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("memory store: set %s (%d bytes)", key, len(blob))
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}
