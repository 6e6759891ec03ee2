// Package ws exposes the render surface over WebSocket. Browsers (or any
// client able to draw a graph) attach to the hub and receive the reveal
// command stream; the playback engine stays unaware of who is watching.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stagewalk/stagewalk/internal/logging"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
)

// Command is one render instruction sent to attached clients.
type Command struct {
	Op         string        `json:"op"` // load | show_node | show_edge | fit | destroy
	Container  string        `json:"container,omitempty"`
	Nodes      []domain.Node `json:"nodes,omitempty"`
	Edges      []domain.Edge `json:"edges,omitempty"`
	ID         string        `json:"id,omitempty"`
	Style      domain.Style  `json:"style,omitempty"`
	DurationMs int64         `json:"duration_ms,omitempty"`
}

const sendBuffer = 64

// Hub implements ports.SurfaceProvider. Every driver opened on it broadcasts
// its commands to all currently attached clients; a client that attaches
// mid-session only sees subsequent commands.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Open binds a broadcasting driver to the container. It never blocks: a hub
// with no attached clients is simply a surface nobody is watching.
func (h *Hub) Open(ctx context.Context, container string) (ports.SurfaceDriver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &driver{hub: h, container: container}, nil
}

// Handler returns the HTTP handler clients connect to.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}

		c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
		h.mu.Lock()
		h.clients[c] = struct{}{}
		h.mu.Unlock()
		h.logger.Debug("surface client attached", "remote", r.RemoteAddr)

		go c.writePump()
		c.readPump() // blocks until the client goes away
		h.detach(c)
	})
}

// ClientCount reports how many clients are attached.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) detach(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) broadcast(cmd Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	// A client that cannot keep up with the reveal cadence is dropped rather
	// than allowed to stall the hub.
	for _, c := range slow {
		h.logger.Warn("surface client too slow, dropping")
		h.detach(c)
	}
	return nil
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (c *client) readPump() {
	c.conn.SetReadLimit(512)
	for {
		// Inbound messages are ignored; the read loop only detects closure.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

type driver struct {
	hub       *Hub
	container string
}

func (d *driver) Load(nodes []domain.Node, edges []domain.Edge) error {
	return d.hub.broadcast(Command{Op: "load", Container: d.container, Nodes: nodes, Edges: edges})
}

func (d *driver) ShowNode(id string, style domain.Style) error {
	return d.hub.broadcast(Command{Op: "show_node", Container: d.container, ID: id, Style: style})
}

func (d *driver) ShowEdge(id string, style domain.Style) error {
	return d.hub.broadcast(Command{Op: "show_edge", Container: d.container, ID: id, Style: style})
}

func (d *driver) Fit(duration time.Duration) error {
	return d.hub.broadcast(Command{Op: "fit", Container: d.container, DurationMs: duration.Milliseconds()})
}

func (d *driver) Destroy() error {
	// Clients keep their final frame; destroy only tells them the session is over.
	return d.hub.broadcast(Command{Op: "destroy", Container: d.container})
}
