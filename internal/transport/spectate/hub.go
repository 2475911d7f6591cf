// Package spectate streams accepted moves to read-only websocket watchers.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-threes/internal/games/threes"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Watchers never send data; this only bounds control frames.
	maxMessageSize = 512

	broadcastBuffer = 64
	clientBuffer    = 256
)

// EventMove is the event name of an accepted move.
const EventMove = "move"

// Message is one frame sent to watchers.
type Message struct {
	GameID  string              `json:"game_id"`
	Event   string              `json:"event"`
	Outcome *threes.MoveOutcome `json:"outcome,omitempty"`
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string // Empty watches every game
}

// Hub fans moves out to watchers. Run must be running for anything to be
// delivered, and a hub runs at most once.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	clients    map[*client]bool
	broadcast  chan Message
	register   chan *client
	unregister chan *client
	done       chan struct{}

	count   atomic.Int64
	dropped atomic.Int64
}

// NewHub creates a hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients:    make(map[*client]bool),
		broadcast:  make(chan Message, broadcastBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when ctx is done, closing every
// watcher.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Add(1)
			h.logger.Debug("watcher joined", "game", c.gameID, "watchers", len(h.clients))

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) remove(c *client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
	h.logger.Debug("watcher left", "game", c.gameID, "watchers", len(h.clients))
}

func (h *Hub) deliver(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal spectator message", "error", err)
		return
	}
	for c := range h.clients {
		if c.gameID != "" && c.gameID != msg.GameID {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Slow watcher
			h.remove(c)
		}
	}
}

// Watchers returns the number of connected watchers.
func (h *Hub) Watchers() int {
	return int(h.count.Load())
}

// Dropped returns how many moves were discarded because the hub was busy.
func (h *Hub) Dropped() int {
	return int(h.dropped.Load())
}

// Publish queues an outcome without blocking the caller. Moves published
// while the queue is full are counted and dropped.
func (h *Hub) Publish(gameID string, out threes.MoveOutcome) {
	msg := Message{GameID: gameID, Event: EventMove, Outcome: &out}
	select {
	case h.broadcast <- msg:
	default:
		h.dropped.Add(1)
	}
}

// Observer adapts the hub to a game's move callback.
func (h *Hub) Observer() threes.Observer {
	return h.Publish
}

// Handler serves the watch endpoint. The optional "game" query parameter
// restricts the stream to one variant.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", h.serveWatch)
	return mux
}

func (h *Hub) serveWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, clientBuffer),
		gameID: r.URL.Query().Get("game"),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump discards anything the watcher sends and notices disconnects.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("watcher connection error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued messages, one websocket frame each, and pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Serve runs the hub and an HTTP server on addr until ctx is done.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	h.logger.Info("spectator server listening", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
