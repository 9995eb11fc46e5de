// Package settings persists the two user preferences of the browser.
package settings

import (
	"context"
	"sync"
)

// Settings is the persisted preference record.
type Settings struct {
	DarkMode     bool
	ShowDotFiles bool
}

// Gateway loads and saves Settings. Get returns the zero value when nothing is stored.
type Gateway interface {
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// MemoryStore is a process-local Gateway, used with --no-persist and in tests.
type MemoryStore struct {
	mu    sync.Mutex
	value Settings
	saves int
}

// NewMemoryStore returns a store seeded with initial.
func NewMemoryStore(initial Settings) *MemoryStore {
	return &MemoryStore{value: initial}
}

func (m *MemoryStore) Get(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

func (m *MemoryStore) Save(ctx context.Context, s Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = s
	m.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
