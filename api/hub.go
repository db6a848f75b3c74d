package api

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/hoshinonyaruko/snake-classic/structs"
)

// Hub keeps the connected websocket clients and fans game events out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run handles registration and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("Websocket hub stopped")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("Websocket client connected from %s", client.conn.RemoteAddr())
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Websocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// 客户端太慢，直接断开
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastEvent queues ev for every client. It never blocks the caller;
// when the queue is full the event is dropped.
func (h *Hub) BroadcastEvent(ev structs.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to encode %s event: %s", ev.Kind, err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		log.Printf("Websocket hub is behind, dropping %s event", ev.Kind)
	}
}
