// Package broadcast implements the in-process event hub that fans mutation
// events out to connected board clients and the rider pool. Delivery is best
// effort: events are dropped for subscribers that cannot keep up, and there
// is no replay for late joiners.
package broadcast

import (
	"log/slog"
	"sync"

	"kitchenboard/internal/core/application/projection"
)

// defaultBufferSize is the per-subscriber channel depth. A subscriber that
// falls this many events behind starts losing events rather than slowing
// down publishers.
const defaultBufferSize = 16

// Hub distributes projection events to subscribers. It implements
// ports.EventPublisher on the write side and hands out receive-only
// channels on the read side.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan projection.Event]struct{}
	closed      bool
	logger      *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[chan projection.Event]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a new subscriber and returns its event channel together
// with an unsubscribe function. The channel is closed on unsubscribe and on
// hub Close; unsubscribing twice is safe.
func (h *Hub) Subscribe() (<-chan projection.Event, func()) {
	ch := make(chan projection.Event, defaultBufferSize)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subscribers[ch]; ok {
				delete(h.subscribers, ch)
				close(ch)
			}
			h.mu.Unlock()
		})
	}

	return ch, unsubscribe
}

// Publish sends the event to every current subscriber without blocking.
// A full subscriber buffer means that subscriber misses this event.
func (h *Hub) Publish(event projection.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn("dropping event for slow subscriber",
				slog.String("event", string(event.Type)))
		}
	}
}

// SubscriberCount returns the number of currently registered subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close shuts the hub down, closing every subscriber channel. Publishes
// after Close are silently discarded.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}
