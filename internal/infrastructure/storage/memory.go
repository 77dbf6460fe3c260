package storage

import (
	"context"
	"errors"
	"sync"
)

// InMemoryMediaStorage keeps objects in a map. Suitable for
// development and testing without an S3 backend.
type InMemoryMediaStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewInMemoryMediaStorage creates a new in-memory media storage
func NewInMemoryMediaStorage() *InMemoryMediaStorage {
	return &InMemoryMediaStorage{
		objects: make(map[string][]byte),
		baseURL: "https://media.example.com",
	}
}

// Upload writes media data under the given key
func (s *InMemoryMediaStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes an object
func (s *InMemoryMediaStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Exists checks if an object exists
func (s *InMemoryMediaStorage) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// PublicURL returns a URL for the object
func (s *InMemoryMediaStorage) PublicURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	return s.baseURL + "/" + key, nil
}
