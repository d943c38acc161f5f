// Package store provides the durable key-value document store backing
// screenbudget. Each logical piece of state (settings, today's counters,
// history, reward snapshot, boundary marker) is one whole JSON document
// under one key; every write replaces the document.
package store

import (
	"encoding/json"
	"sync"
)

// Keys for the persisted documents.
const (
	KeySettings     = "settings"
	KeyToday        = "today"
	KeyHistory      = "history"
	KeyReward       = "reward"
	KeyLastSeenDate = "last_seen_date"
)

// Store is the persistence boundary. Get reports ok=false when the key is
// absent; callers treat malformed documents the same as absent ones.
type Store interface {
	Get(key string) (value json.RawMessage, ok bool, err error)
	Set(key string, value json.RawMessage) error
	Close() error
}

// Memory is an in-memory Store, useful for testing.
type Memory struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]json.RawMessage)}
}

// Get returns the document stored under key, if any.
func (m *Memory) Get(key string) (json.RawMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out, true, nil
}

// Set replaces the document stored under key.
func (m *Memory) Set(key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := make(json.RawMessage, len(value))
	copy(doc, value)
	m.docs[key] = doc
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
