package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the HTTP routes only
	},
}

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer       = 64
	maxSubscriptions = 20
	snapshotTimeout  = 10 * time.Second
)

// WSMessage is a message sent over WebSocket connections.
type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type wsInbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// symbol accepts either "data":"TCS" or "data":{"symbol":"TCS"}.
func (m wsInbound) symbol() string {
	var s string
	if err := json.Unmarshal(m.Data, &s); err == nil {
		return utils.NormalizeSymbol(s)
	}
	var obj struct {
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal(m.Data, &obj); err == nil {
		return utils.NormalizeSymbol(obj.Symbol)
	}
	return ""
}

type wsClient struct {
	send chan WSMessage
	subs map[string]struct{}
}

// QuoteHub tracks WebSocket clients and their symbol subscriptions.
// It is the publisher behind the scheduled quote stream.
type QuoteHub struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
	log     zerolog.Logger
}

// NewQuoteHub creates an empty hub.
func NewQuoteHub(log zerolog.Logger) *QuoteHub {
	return &QuoteHub{
		clients: make(map[*wsClient]struct{}),
		log:     log.With().Str("component", "ws_hub").Logger(),
	}
}

func (h *QuoteHub) register() *wsClient {
	c := &wsClient{send: make(chan WSMessage, sendBuffer), subs: make(map[string]struct{})}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.send)
		return c
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *QuoteHub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *QuoteHub) dropLocked(c *wsClient) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// deliver queues msg for c. A client whose buffer is full is disconnected.
func (h *QuoteHub) deliver(c *wsClient, msg WSMessage) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.deliverLocked(c, msg)
}

func (h *QuoteHub) deliverLocked(c *wsClient, msg WSMessage) bool {
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		h.log.Warn().Msg("slow websocket client dropped")
		h.dropLocked(c)
		return false
	}
}

// subscribe adds sym to c's subscriptions. It reports false when c already
// holds the maximum number of symbols.
func (h *QuoteHub) subscribe(c *wsClient, sym string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := c.subs[sym]; ok {
		return true
	}
	if len(c.subs) >= maxSubscriptions {
		return false
	}
	c.subs[sym] = struct{}{}
	return true
}

func (h *QuoteHub) unsubscribe(c *wsClient, sym string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(c.subs, sym)
}

// Symbols returns the sorted set of symbols with at least one subscriber.
func (h *QuoteHub) Symbols() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	seen := make(map[string]struct{})
	for c := range h.clients {
		for sym := range c.subs {
			seen[sym] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for sym := range seen {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Publish sends q to every subscriber of symbol and returns how many
// clients received it.
func (h *QuoteHub) Publish(symbol string, q *models.Quote) int {
	msg := WSMessage{Type: "quote", Data: q}
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.clients {
		if _, ok := c.subs[symbol]; !ok {
			continue
		}
		if h.deliverLocked(c, msg) {
			n++
		}
	}
	return n
}

// ClientCount returns the number of connected clients.
func (h *QuoteHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *QuoteHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.dropLocked(c)
	}
}

// handleWebSocket upgrades the connection and serves quote subscriptions.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := s.hub.register()
	go s.wsWritePump(conn, client)
	go s.wsReadPump(conn, client)
}

// wsReadPump handles client messages until the connection fails.
func (s *Server) wsReadPump(conn *websocket.Conn, client *wsClient) {
	defer func() {
		s.hub.unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Msg("websocket read error")
			}
			return
		}

		var msg wsInbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.hub.deliver(client, WSMessage{Type: "error", Data: "invalid message"})
			continue
		}

		switch msg.Type {
		case "subscribe":
			sym := msg.symbol()
			if sym == "" {
				s.hub.deliver(client, WSMessage{Type: "error", Data: "Missing symbol"})
				continue
			}
			if !s.hub.subscribe(client, sym) {
				s.hub.deliver(client, WSMessage{Type: "error", Data: "too many subscriptions"})
				continue
			}
			s.hub.deliver(client, WSMessage{Type: "subscribed", Data: sym})
			go s.pushSnapshot(client, sym)
		case "unsubscribe":
			sym := msg.symbol()
			s.hub.unsubscribe(client, sym)
			s.hub.deliver(client, WSMessage{Type: "unsubscribed", Data: sym})
		case "ping":
			s.hub.deliver(client, WSMessage{Type: "pong"})
		default:
			s.hub.deliver(client, WSMessage{Type: "error", Data: "unknown message type"})
		}
	}
}

// pushSnapshot sends the current quote right after a subscription so the
// client does not wait for the next stream tick.
func (s *Server) pushSnapshot(client *wsClient, sym string) {
	if s.svc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()
	q := s.svc.GetQuote(ctx, sym)
	s.hub.deliver(client, WSMessage{Type: "quote", Data: q})
}

// wsWritePump writes queued messages and keepalive pings.
func (s *Server) wsWritePump(conn *websocket.Conn, client *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
