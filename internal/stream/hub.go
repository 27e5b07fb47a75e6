// Package stream serves live simulation frames to browser clients over
// websockets. A Hub fans each frame out to every connected viewer and
// collects viewer commands (bursts, clears) on a channel the simulation
// loop can drain between steps.
package stream

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/san-kum/debrislab/internal/debris"
)

// Command is an instruction sent by a connected viewer.
type Command struct {
	Op    string  `json:"op"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Force float64 `json:"force"`
	Count int     `json:"count"`
	Kind  string  `json:"kind"`
}

// Viewer command ops.
const (
	OpBurst = "burst"
	OpClear = "clear"
)

// Hub tracks connected viewers and broadcasts frames to all of them.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	commands chan Command
}

func NewHub() *Hub {
	return &Hub{
		clients:  make(map[*websocket.Conn]struct{}),
		commands: make(chan Command, 16),
	}
}

// Commands returns the channel viewer commands arrive on. The channel is
// never closed; drain it with a non-blocking select.
func (h *Hub) Commands() <-chan Command {
	return h.commands
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends one frame to every connected viewer. The frame is
// marshaled once; viewers whose write fails are dropped.
func (h *Hub) Broadcast(frame debris.Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("stream: marshal frame: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// readLoop consumes messages from one viewer until it disconnects.
// Well-formed commands go to the command channel; if the channel is
// full the command is dropped so a spamming viewer cannot stall the
// simulation loop.
func (h *Hub) readLoop(conn *websocket.Conn) {
	defer func() {
		h.remove(conn)
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("stream: read: %v", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			continue
		}

		select {
		case h.commands <- cmd:
		default:
		}
	}
}
