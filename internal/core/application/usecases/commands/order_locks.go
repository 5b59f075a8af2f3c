package commands

import (
	"sync"

	"kitchenboard/internal/core/domain/model/kernel"
)

// OrderLocks serializes mutations per order id. All handlers of one
// composition share a single instance, so an edit and a state transition
// against the same order can never interleave, while mutations to different
// orders proceed fully in parallel.
//
// Entries are reference counted and removed once the last holder unlocks,
// so the map does not grow with the number of orders ever seen.
type OrderLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewOrderLocks creates an empty lock registry.
func NewOrderLocks() *OrderLocks {
	return &OrderLocks{entries: make(map[string]*lockEntry)}
}

// Lock acquires the mutex for the given order id, blocking until any other
// holder releases it. The returned function releases the lock; it must be
// called exactly once.
func (l *OrderLocks) Lock(id kernel.UUID) (unlock func()) {
	key := id.String()

	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &lockEntry{}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()

			l.mu.Lock()
			entry.refs--
			if entry.refs == 0 {
				delete(l.entries, key)
			}
			l.mu.Unlock()
		})
	}
}
