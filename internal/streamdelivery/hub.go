// Package streamdelivery pushes live rates, ledger changes and fired alerts
// to WebSocket clients.
package streamdelivery

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-petr/kantoor/internal/domain"
)

// Message types sent on the stream.
const (
	TypeRates  = "rates"
	TypeLedger = "ledger"
	TypeAlert  = "alert"
)

// Message is a single stream frame.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// RatesUpdate is the payload of a rates message.
type RatesUpdate struct {
	Feed  string           `json:"feed"`
	Rates domain.RateTable `json:"rates"`
}

type client struct {
	send chan Message
}

// Hub fans messages out to connected clients.
//
// A client that cannot keep up loses messages instead of slowing the hub down.
type Hub struct {
	bufferSize int
	log        zerolog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub returns a hub whose clients buffer up to bufferSize messages.
func NewHub(bufferSize int, log zerolog.Logger) *Hub {
	if bufferSize < 1 {
		bufferSize = 1
	}

	return &Hub{
		bufferSize: bufferSize,
		log:        log.With().Str("component", "stream").Logger(),
		clients:    make(map[*client]struct{}),
	}
}

func (h *Hub) register() *client {
	c := &client{send: make(chan Message, h.bufferSize)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.log.Debug().Int("clients", n).Msg("client connected")

	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	h.log.Debug().Int("clients", n).Msg("client disconnected")
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// Broadcast queues msg for every client. It never blocks.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn().Str("type", msg.Type).Msg("slow client, message dropped")
		}
	}
}
