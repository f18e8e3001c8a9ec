// mock_storage.go - Mock storage implementation for testing
package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/appforms/backend/internal/storage"
)

// MockStore implements storage.Store in memory and records every call, so
// tests can assert that validation failures never reach the backend.
type MockStore struct {
	mu      sync.RWMutex
	objects map[string][]byte  // path -> content
	created map[string]time.Time

	ListCalls   int
	SignCalls   int
	UploadCalls int
	RemoveCalls int

	// Err, when set, is returned by every operation.
	Err error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		objects: make(map[string][]byte),
		created: make(map[string]time.Time),
	}
}

func (m *MockStore) List(_ context.Context, prefix string, opts storage.ListOptions) ([]storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++

	if m.Err != nil {
		return nil, m.Err
	}

	var objects []storage.Object
	for path, data := range m.objects {
		if !strings.HasPrefix(path, prefix+"/") {
			continue
		}
		objects = append(objects, storage.Object{
			Name:      strings.TrimPrefix(path, prefix+"/"),
			Size:      int64(len(data)),
			CreatedAt: m.created[path],
		})
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })

	if opts.Limit > 0 && len(objects) > opts.Limit {
		objects = objects[:opts.Limit]
	}

	return objects, nil
}

func (m *MockStore) CreateSignedURL(_ context.Context, path string, expiresIn time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignCalls++

	if m.Err != nil {
		return "", m.Err
	}
	if _, ok := m.objects[path]; !ok {
		return "", fmt.Errorf("%w: %s", storage.ErrObjectNotFound, path)
	}

	return fmt.Sprintf("https://signed.example/%s?expires=%d", path, int(expiresIn.Seconds())), nil
}

func (m *MockStore) Upload(_ context.Context, path string, r io.Reader, opts storage.UploadOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls++

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.objects[path]; exists && !opts.Upsert {
		return fmt.Errorf("%w: %s", storage.ErrObjectExists, path)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.objects[path] = data
	m.created[path] = time.Now()
	return nil
}

func (m *MockStore) Remove(_ context.Context, paths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++

	if m.Err != nil {
		return m.Err
	}

	for _, p := range paths {
		if _, ok := m.objects[p]; !ok {
			return fmt.Errorf("%w: %s", storage.ErrObjectNotFound, p)
		}
		delete(m.objects, p)
		delete(m.created, p)
	}
	return nil
}

var _ storage.Store = (*MockStore)(nil)

// Test helper methods

// AddObject seeds the mock with one object.
func (m *MockStore) AddObject(path string, data []byte, createdAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = data
	m.created[path] = createdAt
}

// HasObject reports whether an object exists at path.
func (m *MockStore) HasObject(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[path]
	return ok
}

// ObjectCount returns the number of stored objects.
func (m *MockStore) ObjectCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Paths returns all stored paths, sorted.
func (m *MockStore) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.objects))
	for p := range m.objects {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
