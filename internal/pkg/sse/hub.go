package sse

import (
	"sync"
)

// Event is a server-sent event addressed to one guard.
type Event struct {
	GuardID string
	Event   string
	Data    interface{}
}

// Hub fans events out to the SSE streams a guard has open (mobile app plus
// any dashboard tabs).
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for a guard and returns the event channel plus
// a cleanup function the caller must invoke when the stream closes.
func (h *Hub) Subscribe(guardID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[guardID] == nil {
		h.subscribers[guardID] = make(map[chan Event]struct{})
	}
	h.subscribers[guardID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[guardID], ch)
		close(ch)
		if len(h.subscribers[guardID]) == 0 {
			delete(h.subscribers, guardID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every open stream of one guard. Slow consumers
// are skipped rather than blocked on.
func (h *Hub) Publish(guardID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[guardID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of open streams for a guard.
func (h *Hub) SubscriberCount(guardID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[guardID]; ok {
		return len(subs)
	}
	return 0
}
