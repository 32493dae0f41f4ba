package hub

import (
	"context"

	"github.com/gorilla/websocket"

	"comment-board/logger"
)

var (
	_ Runnable           = (*Hub)(nil)
	_ ClientManager      = (*Hub)(nil)
	_ MessageBroadcaster = (*Hub)(nil)
)

// Hub fans board updates out to every connected live-feed client. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[Client]bool
	broadcast  chan []byte
	register   chan Client
	unregister chan Client
	done       chan struct{}
}

func New() *Hub {
	return &Hub{
		clients:    make(map[Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan Client),
		unregister: make(chan Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Register(client Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(client Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues message for every client. It never blocks: when the
// queue is full the update is dropped, since the next one carries the same
// counts.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	default:
		logger.For(nil).Warn("live feed queue full, dropping update")
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for client := range h.clients {
			client.Close()
			delete(h.clients, client)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					logger.For(ctx).Warnf("error writing to live feed client: %v", err)
					client.Close()
					delete(h.clients, client)
				}
			}
		}
	}
}
