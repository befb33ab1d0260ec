// Package cache keeps last-known-good payloads so a view can still be served
// when the upstream API fails.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Keys used by the services
const (
	KeyHeatmapRaw = "ghostquant:heatmap:latest"
	KeyGraph      = "ghostquant:graph:latest"
)

// Store holds JSON-encoded values with an optional TTL
type Store interface {
	// Get decodes the value for key into dst. It reports false when the key is absent or expired.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Close() error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get implements Store
func (s *MemoryStore) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set implements Store
func (s *MemoryStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

// Close implements Store
func (s *MemoryStore) Close() error {
	return nil
}
