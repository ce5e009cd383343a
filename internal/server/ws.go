package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verdantloop/chronogarden/internal/engine"
	"github.com/verdantloop/chronogarden/internal/event"
)

const (
	wsWriteTimeout    = 5 * time.Second
	wsReadBufferSize  = 1024
	wsWriteBufferSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  wsReadBufferSize,
	WriteBufferSize: wsWriteBufferSize,
	// Local game UI; the server binds to localhost in normal use.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stateUpdate is the frame pushed to websocket clients on every applied
// action.
type stateUpdate struct {
	Type  string      `json:"type"`
	State interface{} `json:"state"`
}

// stateHub fans the engine's state-changed events out to websocket clients.
type stateHub struct {
	eng *engine.Engine

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	closed  bool
}

func newStateHub(eng *engine.Engine) *stateHub {
	return &stateHub{
		eng:     eng,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (h *stateHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Initial frame so the client does not wait for the next action.
	h.send(conn, stateUpdate{Type: string(event.StateChanged), State: h.eng.Snapshot()})

	// Drain reads to notice disconnects; clients never send anything useful.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

// onStateChanged is the bus subscription; it snapshots once and pushes to
// every client.
func (h *stateHub) onStateChanged(_ context.Context, _ event.Event) error {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	if len(conns) == 0 {
		return nil
	}

	update := stateUpdate{Type: string(event.StateChanged), State: h.eng.Snapshot()}
	for _, conn := range conns {
		h.send(conn, update)
	}
	return nil
}

func (h *stateHub) send(conn *websocket.Conn, update stateUpdate) {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(update); err != nil {
		h.drop(conn)
	}
}

func (h *stateHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}

func (h *stateHub) close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.clients = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}
}
