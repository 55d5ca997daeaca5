// internal/stream/stream.go
package stream

import "sync"

// Hub fans full snapshots out to subscribers. Subscribers get the current
// snapshot immediately and the latest one after every publish; intermediate
// snapshots may be conflated away for slow consumers, never the newest.
// After a subscriber's stop function returns nothing more is delivered.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[int]chan T
	next int
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]chan T)}
}

func (h *Hub[T]) Subscribe(current T) (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan T, 1)
	ch <- current
	h.subs[id] = ch

	stop := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, stop
}

func (h *Hub[T]) Publish(snapshot T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		// keep only the latest value in the buffer
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
