package credstore

import "sync"

// MemoryTier is an in-memory credential tier. Thread-safe. Used in
// tests and as the fallback when no writable storage location exists;
// credentials kept here last exactly one process lifetime.
type MemoryTier struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryTier creates an empty in-memory tier.
func NewMemoryTier() *MemoryTier {
	return &MemoryTier{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (t *MemoryTier) Get(key string) (string, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (t *MemoryTier) Set(key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values[key] = value
	return nil
}

// Delete removes key.
func (t *MemoryTier) Delete(key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.values, key)
	return nil
}

// Len returns the number of stored keys.
func (t *MemoryTier) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}
