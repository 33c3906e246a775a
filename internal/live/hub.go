// Package live pushes re-rendered canvas HTML to editing clients over
// WebSocket. The hub is the editor's change notifier: each mutation triggers
// a render of the affected page and a broadcast to every subscriber.
package live

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second

	// Renders can be large but a page canvas should stay well under this.
	maxMessageSize = 4 << 20
)

// RenderFunc produces the annotated canvas HTML for a page.
type RenderFunc func(ctx context.Context, pageID string) (string, error)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The editor is same-origin; cross-origin policy belongs to the proxy.
	CheckOrigin: func(*http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks page subscriptions and fans out canvas updates.
type Hub struct {
	render RenderFunc
	log    *zap.Logger

	mu   sync.Mutex
	subs map[string]map[*client]struct{}
}

// NewHub builds a hub around a page renderer.
func NewHub(render RenderFunc, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		render: render,
		log:    log,
		subs:   make(map[string]map[*client]struct{}),
	}
}

// PageChanged re-renders the page and broadcasts the result. It satisfies
// the editor's notifier contract and never blocks the mutation path.
func (h *Hub) PageChanged(pageID string) {
	h.mu.Lock()
	n := len(h.subs[pageID])
	h.mu.Unlock()
	if n == 0 {
		return
	}
	go h.broadcast(pageID)
}

func (h *Hub) broadcast(pageID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	html, err := h.render(ctx, pageID)
	if err != nil {
		h.log.Warn("live render failed", zap.String("page_id", pageID), zap.Error(err))
		return
	}

	h.mu.Lock()
	clients := make([]*client, 0, len(h.subs[pageID]))
	for c := range h.subs[pageID] {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	msg := []byte(html)
	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			// Slow consumer; drop the connection rather than the update.
			h.unsubscribe(pageID, c)
			c.conn.Close()
		}
	}
}

// Subscribe upgrades the request and streams canvas updates for pageID until
// the client disconnects. The first message is the current render.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, pageID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 8)}
	h.mu.Lock()
	if h.subs[pageID] == nil {
		h.subs[pageID] = make(map[*client]struct{})
	}
	h.subs[pageID][c] = struct{}{}
	h.mu.Unlock()

	if html, err := h.render(r.Context(), pageID); err == nil {
		select {
		case c.send <- []byte(html):
		default:
		}
	}

	go h.writePump(pageID, c)
	h.readPump(pageID, c)
}

// readPump drains the connection so control frames are processed and tears
// the subscription down on disconnect.
func (h *Hub) readPump(pageID string, c *client) {
	defer func() {
		h.unsubscribe(pageID, c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(pageID string, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) unsubscribe(pageID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[pageID]; ok {
		// The send channel stays open; writePump exits on the first failed
		// write after the connection closes.
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, pageID)
		}
	}
}
