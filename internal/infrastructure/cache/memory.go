package cache

import (
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

// MemoryStore keeps expiring key-value pairs in process memory. It backs
// OAuth state storage in dev and tests when Redis is unavailable, behind the
// same contract as RedisStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value    string
	deadline time.Time
}

// NewMemoryStore creates the store and starts a background sweep that evicts
// expired entries
func NewMemoryStore() *MemoryStore {
	ms := &MemoryStore{entries: make(map[string]memoryEntry)}
	go ms.sweep()
	return ms
}

// Set stores a value until the expiration elapses
func (ms *MemoryStore) Set(key string, value string, expiration time.Duration) {
	ms.mu.Lock()
	ms.entries[key] = memoryEntry{value: value, deadline: time.Now().Add(expiration)}
	ms.mu.Unlock()
}

// Get returns the value for key. Expired entries are evicted on read.
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	entry, ok := ms.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(entry.deadline) {
		delete(ms.entries, key)
		return "", false
	}
	return entry.value, true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	delete(ms.entries, key)
	ms.mu.Unlock()
}

func (ms *MemoryStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		ms.mu.Lock()
		for key, entry := range ms.entries {
			if now.After(entry.deadline) {
				delete(ms.entries, key)
			}
		}
		ms.mu.Unlock()
	}
}
