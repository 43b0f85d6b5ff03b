package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/pkg/seed"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*SessionRecord
	seeds     map[string]*seed.Seed
	pingError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions: make(map[uuid.UUID]*SessionRecord),
		seeds:    make(map[string]*seed.Seed),
	}
}

// SetPingSuccess configures the mock to succeed on ping
func (m *MockStorage) SetPingSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = nil
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError makes every SaveSession call fail with err.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

// SaveSession stores a copy of rec.
func (m *MockStorage) SaveSession(ctx context.Context, rec *SessionRecord) error {
	if rec == nil {
		return errors.New("session record cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}

	cp := *rec
	cp.SRAM = slices.Clone(rec.SRAM)
	cp.UpdatedAt = time.Now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = cp.UpdatedAt
	}
	rec.CreatedAt, rec.UpdatedAt = cp.CreatedAt, cp.UpdatedAt
	m.sessions[rec.ID] = &cp
	return nil
}

// LoadSession returns nil, nil when the session does not exist.
func (m *MockStorage) LoadSession(ctx context.Context, id uuid.UUID) (*SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, exists := m.sessions[id]
	if !exists {
		return nil, nil
	}
	cp := *rec
	cp.SRAM = slices.Clone(rec.SRAM)
	return &cp, nil
}

func (m *MockStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MockStorage) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

// ListSeeds maps seed names to file names.
func (m *MockStorage) ListSeeds(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string)
	for filename, s := range m.seeds {
		result[s.Name] = filename
	}
	return result, nil
}

func (m *MockStorage) GetSeed(ctx context.Context, filename string) (*seed.Seed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.seeds[filename]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSeedNotFound, filename)
	}
	return s, nil
}

// AddSeed adds a seed to the mock storage (for testing)
func (m *MockStorage) AddSeed(filename string, s *seed.Seed) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.FileName = filename
	m.seeds[filename] = s
}
