package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

const bufferSize = 16

// Event is one server-sent event. Data is encoded as JSON on the wire.
type Event struct {
	ID    string
	Topic string
	Event string
	Data  any
}

// WriteTo renders the event in text/event-stream framing.
func (e Event) WriteTo(w io.Writer) (int64, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return 0, fmt.Errorf("encode sse payload: %w", err)
	}
	var n int
	if e.ID != "" {
		n, err = fmt.Fprintf(w, "id: %s\n", e.ID)
		if err != nil {
			return int64(n), err
		}
	}
	m, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Event, payload)
	return int64(n + m), err
}

// Hub fans events out to the subscribers of a topic.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener on topic. The returned cleanup unregisters it and closes the channel.
// After Close the channel is returned already closed.
func (h *Hub) Subscribe(topic string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.remove(topic, ch)
	}

	return ch, cleanup
}

// Close ends every subscription so that long-lived streams return.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for topic, subs := range h.subscribers {
		for ch := range subs {
			h.remove(topic, ch)
		}
	}
}

// remove must be called with mu held; it is a no-op for channels already removed.
func (h *Hub) remove(topic string, ch chan Event) {
	if _, ok := h.subscribers[topic][ch]; !ok {
		return
	}
	delete(h.subscribers[topic], ch)
	close(ch)
	if len(h.subscribers[topic]) == 0 {
		delete(h.subscribers, topic)
	}
}

// Publish delivers event to every subscriber of topic. Slow subscribers with a full buffer miss it.
func (h *Hub) Publish(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Topic = topic
	for ch := range h.subscribers[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
