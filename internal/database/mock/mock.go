// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/kozaktomas/companion-backend/internal/database"
)

// MockImageStore is an in-memory implementation of database.ImageStore.
type MockImageStore struct {
	mu     sync.RWMutex
	images []database.StoredImage

	// Error injection
	StoreError error
	MatchError error
}

// NewMockImageStore creates a new mock image store.
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{}
}

// StoreImage appends one image row.
func (m *MockImageStore) StoreImage(ctx context.Context, img database.StoredImage) error {
	if m.StoreError != nil {
		return m.StoreError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images = append(m.images, img)
	return nil
}

// MatchImage returns the first stored image with byte-identical data.
func (m *MockImageStore) MatchImage(ctx context.Context, data []byte) (*database.ImageMatch, error) {
	if m.MatchError != nil {
		return nil, m.MatchError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.images {
		if bytes.Equal(m.images[i].Data, data) {
			return &database.ImageMatch{
				Name:        m.images[i].Name,
				Relation:    m.images[i].Relation,
				Description: m.images[i].Description,
			}, nil
		}
	}
	return nil, database.ErrNotFound
}

// Count returns the number of stored images.
func (m *MockImageStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images)
}

// MockStore bundles the in-memory stores behind the database.Store interface.
type MockStore struct {
	*MockImageStore
	*MockTaskStore
}

// NewMockStore creates a combined in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		MockImageStore: NewMockImageStore(),
		MockTaskStore:  NewMockTaskStore(),
	}
}

// Close implements database.Store; the in-memory store has nothing to release.
func (m *MockStore) Close() error {
	return nil
}

// MockTaskStore is an in-memory implementation of database.TaskStore.
type MockTaskStore struct {
	mu    sync.RWMutex
	tasks []database.Task

	// Error injection
	AddError    error
	ListError   error
	DeleteError error
	PurgeError  error
}

// NewMockTaskStore creates a new mock task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

// AddTask appends one task row with the current UTC timestamp.
func (m *MockTaskStore) AddTask(ctx context.Context, text string) error {
	if m.AddError != nil {
		return m.AddError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, database.Task{Text: text, CreatedAt: time.Now().UTC()})
	return nil
}

// AddTaskAt appends one task row with an explicit timestamp, for purge tests.
func (m *MockTaskStore) AddTaskAt(text string, createdAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, database.Task{Text: text, CreatedAt: createdAt})
}

// ListTasks returns all task texts in insertion order.
func (m *MockTaskStore) ListTasks(ctx context.Context) ([]string, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var texts []string
	for i := range m.tasks {
		texts = append(texts, m.tasks[i].Text)
	}
	return texts, nil
}

// DeleteTask removes every task with exactly matching text.
func (m *MockTaskStore) DeleteTask(ctx context.Context, text string) (bool, error) {
	if m.DeleteError != nil {
		return false, m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []database.Task
	found := false
	for i := range m.tasks {
		if m.tasks[i].Text == text {
			found = true
			continue
		}
		kept = append(kept, m.tasks[i])
	}
	m.tasks = kept
	return found, nil
}

// SetPurgeError swaps the injected purge error while the store is in use.
func (m *MockTaskStore) SetPurgeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PurgeError = err
}

// PurgeOlderThan removes every task created strictly before cutoff.
func (m *MockTaskStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PurgeError != nil {
		return 0, m.PurgeError
	}
	var kept []database.Task
	var removed int64
	for i := range m.tasks {
		if m.tasks[i].CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, m.tasks[i])
	}
	m.tasks = kept
	return removed, nil
}
