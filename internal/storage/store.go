// Package storage persists the forest behind a plain key-value interface.
//
// Backends are interchangeable: an in-memory map, a SQLite kv table, and an
// account-gated wrapper that namespaces keys per logged-in user.
package storage

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned by Get for an absent key.
	ErrNotFound = errors.New("key not found")
	// ErrNotAuthenticated is returned by the account gate before login.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials is returned for a wrong user name or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is returned when adding a taken user name.
	ErrAccountExists = errors.New("account already exists")
)

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore keeps values in a map.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value for key or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns how many times Set has been called.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
