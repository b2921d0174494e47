package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second
	// Ping period must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Clients never send application events on this channel; anything beyond
	// control-frame size is abuse.
	maxInboundSize = 512
	// Buffered outbound frames per connection.
	sendBuffer = 64
)

// Client is one authenticated websocket connection. Exactly one user is
// attached to it before any event is processed on it; the connection id is
// unique for the connection's lifetime.
type Client struct {
	id   string
	user *domain.User
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
	log  zerolog.Logger
}

func newClient(id string, user *domain.User, conn *websocket.Conn, log zerolog.Logger) *Client {
	return &Client{
		id:   id,
		user: user,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
		log:  log.With().Str("conn_id", id).Str("user_id", user.ID).Logger(),
	}
}

// ID returns the transport-assigned connection identifier.
func (c *Client) ID() string { return c.id }

// UserID returns the id of the user attached at handshake time.
func (c *Client) UserID() string { return c.user.ID }

// enqueue offers a frame to the outbound buffer without blocking. It reports
// false when the buffer is full.
func (c *Client) enqueue(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// shutdown closes the underlying connection and releases the write pump.
// Safe to call more than once.
func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// readPump consumes the connection until it errors or closes. Inbound
// payloads are discarded: this channel carries server pushes only, and the
// read loop exists to service control frames and detect disconnects.
func (c *Client) readPump(h *Hub) {
	defer h.drop(c)

	c.conn.SetReadLimit(maxInboundSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.log.Warn().Err(err).Msg("websocket read error")
			}
			return
		}
	}
}

// writePump drains the send buffer onto the wire and keeps the connection
// alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
