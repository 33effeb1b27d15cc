// Package store persists preference values as strings under symbolic keys.
//
// A [Store] is the only dependency the preference handlers have on
// persistence. [Memory] keeps values for the lifetime of the process; [File]
// writes every change through to a YAML, JSON or TOML document.
package store

import (
	"maps"
	"slices"
	"sync"
)

// Store is a string key/value backend.
type Store interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (string, bool)
	// Put stores value under key.
	Put(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys returns every stored key in sorted order.
	Keys() []string
}

// Memory is a [Store] held in memory. The zero value is ready to use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns a memory store holding a copy of init.
func NewMemory(init map[string]string) *Memory {
	return &Memory{data: maps.Clone(init)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]

	return v, ok
}

func (m *Memory) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		m.data = make(map[string]string)
	}

	m.data[key] = value

	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.data))
}

// Snapshot returns a copy of every key and value in s.
func Snapshot(s Store) map[string]string {
	snap := make(map[string]string)

	for _, key := range s.Keys() {
		if v, ok := s.Get(key); ok {
			snap[key] = v
		}
	}

	return snap
}

// Restore makes the contents of s equal to snap.
func Restore(s Store, snap map[string]string) error {
	for _, key := range s.Keys() {
		if _, ok := snap[key]; !ok {
			if err := s.Delete(key); err != nil {
				return err
			}
		}
	}

	for _, key := range slices.Sorted(maps.Keys(snap)) {
		if v, ok := s.Get(key); ok && v == snap[key] {
			continue
		}

		if err := s.Put(key, snap[key]); err != nil {
			return err
		}
	}

	return nil
}
