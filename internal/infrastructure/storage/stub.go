package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Ensure StubObjectStore implements ObjectStore
var _ ObjectStore = (*StubObjectStore)(nil)

// StubObjectStore keeps artifacts in memory. It exists for development and
// tests; production configuration rejects it.
type StubObjectStore struct {
	// BaseURL is the base URL for generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubObjectStore creates a new StubObjectStore
func NewStubObjectStore() *StubObjectStore {
	return &StubObjectStore{
		BaseURL: "https://storage.invalid",
		objects: make(map[string][]byte),
	}
}

// Upload stores the artifact in memory
func (s *StubObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return nil
}

// PresignDownload returns a fake download URL for a stored artifact
func (s *StubObjectStore) PresignDownload(ctx context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, errors.New("object not found: " + key)
	}

	expiresAt := time.Now().Add(time.Hour)
	return s.BaseURL + "/" + key + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// ObjectExists checks the in-memory map
func (s *StubObjectStore) ObjectExists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// DeleteObject removes the artifact from memory
func (s *StubObjectStore) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Object returns a stored artifact, for assertions in tests
func (s *StubObjectStore) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}
