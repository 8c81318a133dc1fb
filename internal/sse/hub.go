// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package sse

import (
	"sync"

	"github.com/brisingire/gastronomie-verzeichnis/internal/metrics"
	"github.com/samber/lo"
)

// Hub fans out events to the clients subscribed to a topic. Topics are
// restaurant slugs.
type Hub struct {
	clients map[string][]chan string
	mu      sync.RWMutex
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string][]chan string),
	}
}

// Register adds a new client for topic and returns the channel to receive
// events on.
func (h *Hub) Register(topic string) chan string {
	ch := make(chan string, 10) // buffered to prevent blocking

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[topic] = append(h.clients[topic], ch)
	metrics.EventSubscribers.Inc()

	return ch
}

// Unregister removes a client channel from topic.
func (h *Hub) Unregister(topic string, ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	before := len(h.clients[topic])
	h.clients[topic] = lo.Filter(h.clients[topic], func(c chan string, _ int) bool {
		return c != ch
	})
	if len(h.clients[topic]) < before {
		metrics.EventSubscribers.Dec()
	}

	if len(h.clients[topic]) == 0 {
		delete(h.clients, topic)
	}
}

// Publish sends a message to all clients of topic. Slow clients miss the
// message instead of blocking the publisher.
func (h *Hub) Publish(topic string, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients[topic] {
		select {
		case ch <- message:
		default:
			// Channel full, skip
		}
	}
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return lo.SumBy(lo.Values(h.clients), func(clients []chan string) int {
		return len(clients)
	})
}

// TopicCount returns the number of topics with active clients.
func (h *Hub) TopicCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Close ends all subscriptions. Receivers see their channel closed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic, clients := range h.clients {
		for _, ch := range clients {
			close(ch)
			metrics.EventSubscribers.Dec()
		}
		delete(h.clients, topic)
	}
}
