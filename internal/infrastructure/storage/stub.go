// Package storage provides object storage implementations for uploaded
// receipts and maintenance attachments.
package storage

import (
	"context"
	"errors"
	"io"
	"sync"

	billingapp "github.com/dormsync/backend/internal/application/billing"
	facilityapp "github.com/dormsync/backend/internal/application/facility"
)

// StubObjectStorage keeps uploads in memory. Used for development and
// tests when no S3 backend is configured.
type StubObjectStorage struct {
	// BaseURL is the base URL prepended to generated file URLs
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

var (
	_ billingapp.ObjectStorage  = (*StubObjectStorage)(nil)
	_ facilityapp.ObjectStorage = (*StubObjectStorage)(nil)
)

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload buffers the content in memory and returns a fabricated key and
// URL with the same shape the S3 backend produces
func (s *StubObjectStorage) Upload(ctx context.Context, content io.Reader, filename, contentType, category string) (string, string, error) {
	if content == nil {
		return "", "", errors.New("content is required")
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", "", err
	}

	storageKey := ObjectKey(category, filename)

	s.mu.Lock()
	s.objects[storageKey] = data
	s.mu.Unlock()

	return storageKey, s.BaseURL + "/" + storageKey, nil
}

// Delete removes a buffered object
func (s *StubObjectStorage) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	delete(s.objects, storageKey)
	s.mu.Unlock()
	return nil
}

// Object returns a buffered object's content, for test assertions
func (s *StubObjectStorage) Object(storageKey string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
