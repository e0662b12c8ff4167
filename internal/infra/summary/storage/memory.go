package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
	apperrors "github.com/nextpdf/ai-service/pkg/errors"
)

// MemoryStorage keeps objects in memory for tests and local development.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStorage constructs an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

// Put stores a copy of data under key.
func (s *MemoryStorage) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
}

// Get returns a reader over the stored object.
func (s *MemoryStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "object not found: "+key, nil)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

var _ domain.ObjectStorage = (*MemoryStorage)(nil)
