package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Event is one render notification for the subscribers of a topic
type Event struct {
	Name string
	Data any
}

// Hub fans events out to the subscribers of a topic. Each view session is
// one topic.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	buffer      int
}

// NewHub creates a hub whose subscriber channels hold buffer events
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		buffer:      buffer,
	}
}

// Subscribe registers a subscriber for topic. The returned cancel func is
// safe to call after CloseTopic.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs, ok := h.subscribers[topic]
		if !ok {
			return
		}
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.subscribers, topic)
		}
	}

	return ch, cancel
}

// Publish sends event to every subscriber of topic without blocking; a
// subscriber with a full buffer misses it. Returns how many received it.
func (h *Hub) Publish(topic string, event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.subscribers[topic] {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// CloseTopic ends every subscription of topic
func (h *Hub) CloseTopic(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers[topic] {
		close(ch)
	}
	delete(h.subscribers, topic)
}

// SubscriberCount returns the number of active subscribers of topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

// TotalSubscribers returns the number of active subscribers across topics
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}

// Write encodes event as one text/event-stream frame
func Write(w io.Writer, event Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
	return err
}
