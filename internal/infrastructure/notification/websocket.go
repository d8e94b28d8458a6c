// Package notification delivers sketch change events to external consumers:
// websocket subscribers, a kafka topic and the structured log.
package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/turtacn/molsketch/internal/domain/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/pkg/errors"
)

var ErrHubClosed = errors.New(errors.ErrCodeServiceUnavailable, "websocket hub closed")

// HubConfig tunes per-connection buffering.
type HubConfig struct {
	WriteTimeout time.Duration
	SendBuffer   int
	// CheckOrigin overrides the upgrader's same-origin check when set.
	CheckOrigin func(r *http.Request) bool
}

type wsClient struct {
	sessionID string
	conn      *websocket.Conn
	send      chan []byte

	mu      sync.Mutex
	primed  bool
	stopped bool
	// backlog holds events that arrive before the initial message is queued.
	backlog [][]byte
}

func (c *wsClient) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped {
		c.stopped = true
		close(c.send)
	}
}

// offer queues data without blocking and reports false when the client
// cannot keep up.
func (c *wsClient) offer(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return true
	}
	if !c.primed {
		if len(c.backlog) >= cap(c.send)-1 {
			return false
		}
		c.backlog = append(c.backlog, data)
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// prime queues first ahead of every event held in the backlog and switches
// the client to direct delivery.
func (c *wsClient) prime(first []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.primed {
		return
	}
	c.primed = true
	if first != nil {
		c.send <- first
	}
	for _, data := range c.backlog {
		c.send <- data
	}
	c.backlog = nil
}

// WebSocketHub fans change events out to the websocket connections
// subscribed to each session. Every connection has its own writer goroutine
// and send buffer; a subscriber whose buffer is full is dropped.
type WebSocketHub struct {
	cfg      HubConfig
	logger   logging.Logger
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]map[*wsClient]struct{}
	closed   bool
	wg       sync.WaitGroup
}

func NewWebSocketHub(cfg HubConfig, logger logging.Logger) *WebSocketHub {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 64
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &WebSocketHub{
		cfg:    cfg,
		logger: logger.Named("websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		sessions: make(map[string]map[*wsClient]struct{}),
	}
}

func (h *WebSocketHub) Name() string { return "websocket" }

// Serve upgrades the request and subscribes the connection to sessionID.
// The subscription is registered before initial is called, so an event
// committed while the initial message is built is delivered after it rather
// than lost. Serve blocks until the peer disconnects or the hub closes.
func (h *WebSocketHub) Serve(w http.ResponseWriter, r *http.Request, sessionID string, initial func() interface{}) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBadRequest, "websocket upgrade failed")
	}

	// One extra slot for the initial message.
	c := &wsClient{sessionID: sessionID, conn: conn, send: make(chan []byte, h.cfg.SendBuffer+1)}
	if err := h.add(c); err != nil {
		_ = conn.Close()
		return err
	}

	var first []byte
	if initial != nil {
		if v := initial(); v != nil {
			if data, err := json.Marshal(v); err == nil {
				first = data
			}
		}
	}
	c.prime(first)

	go h.writeLoop(c)
	h.readLoop(c)
	return nil
}

func (h *WebSocketHub) add(c *wsClient) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	subs, ok := h.sessions[c.sessionID]
	if !ok {
		subs = make(map[*wsClient]struct{})
		h.sessions[c.sessionID] = subs
	}
	subs[c] = struct{}{}
	h.wg.Add(1)
	h.logger.Debug("Subscriber added", logging.String("session_id", c.sessionID), logging.Int("subscribers", len(subs)))
	return nil
}

func (h *WebSocketHub) remove(c *wsClient) {
	h.mu.Lock()
	if subs, ok := h.sessions[c.sessionID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.sessions, c.sessionID)
		}
	}
	h.mu.Unlock()
	c.stop()
}

// readLoop discards inbound frames; it exists to observe the peer closing.
func (h *WebSocketHub) readLoop(c *wsClient) {
	defer h.remove(c)
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WebSocketHub) writeLoop(c *wsClient) {
	defer h.wg.Done()
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("Subscriber write failed", logging.String("session_id", c.sessionID), logging.Err(err))
			go h.remove(c)
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Notify queues event for every subscriber of its session.
func (h *WebSocketHub) Notify(ctx context.Context, event sketch.ChangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode change event")
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return ErrHubClosed
	}
	var slow []*wsClient
	for c := range h.sessions[event.SessionID] {
		if !c.offer(data) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow subscriber", logging.String("session_id", c.sessionID))
		h.remove(c)
	}
	return nil
}

// Subscribers returns the number of connections watching sessionID.
func (h *WebSocketHub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// CloseSession disconnects every subscriber of sessionID.
func (h *WebSocketHub) CloseSession(sessionID string) {
	h.mu.Lock()
	subs := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.mu.Unlock()
	for c := range subs {
		c.stop()
	}
}

// Close disconnects all subscribers and waits for their writers to finish.
func (h *WebSocketHub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	all := h.sessions
	h.sessions = make(map[string]map[*wsClient]struct{})
	h.mu.Unlock()

	for _, subs := range all {
		for c := range subs {
			c.stop()
		}
	}
	h.wg.Wait()
	return nil
}

//Personal.AI order the ending
