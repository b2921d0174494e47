package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AYUSHMAAN1812/chatify/internal/api/metrics"
	"github.com/AYUSHMAAN1812/chatify/internal/core/ports"
)

const lastSeenTimeout = 2 * time.Second

// Hub owns the connection lifecycle: it binds authenticated clients into the
// presence registry, broadcasts the online set on every registry mutation,
// and tears connections down on disconnect.
type Hub struct {
	registry *Registry
	lastSeen ports.LastSeenStore
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewHub creates a Hub over the given registry. lastSeen may be nil.
func NewHub(registry *Registry, lastSeen ports.LastSeenStore, log zerolog.Logger) *Hub {
	return &Hub{registry: registry, lastSeen: lastSeen, log: log}
}

// Bind registers an authenticated client and starts its pumps. When the user
// already had a connection, the newer one wins and the stale connection is
// closed; its eventual disconnect is a no-op against the registry because
// unregistration is scoped to the connection id.
func (h *Hub) Bind(c *Client) {
	online, targets, prev := h.registry.Register(c)
	if prev != nil {
		h.log.Info().
			Str("user_id", c.UserID()).
			Str("stale_conn_id", prev.ID()).
			Msg("reconnect displaced an existing connection")
		prev.shutdown()
	}

	metrics.ConnectionsActive.Inc()
	metrics.OnlineUsers.Set(float64(len(online)))

	h.touchLastSeen(c.UserID())
	h.broadcastOnline(online, targets)

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		c.writePump()
	}()
	go func() {
		defer h.wg.Done()
		c.readPump(h)
	}()

	h.log.Info().Str("user_id", c.UserID()).Str("conn_id", c.ID()).Msg("user connected")
}

// drop is called exactly once per client when its read pump exits. It
// unregisters the connection (connection-scoped, so a stale connection never
// evicts a newer registration) and broadcasts the shrunken online set.
func (h *Hub) drop(c *Client) {
	online, targets, removed := h.registry.Unregister(c.UserID(), c.ID())
	c.shutdown()
	metrics.ConnectionsActive.Dec()

	if !removed {
		return
	}

	metrics.OnlineUsers.Set(float64(len(online)))
	h.touchLastSeen(c.UserID())
	h.broadcastOnline(online, targets)

	h.log.Info().Str("user_id", c.UserID()).Str("conn_id", c.ID()).Msg("user disconnected")
}

// broadcastOnline fans the ordered online set out to every registered client.
// Fan-out happens outside the registry lock and never blocks: a client whose
// buffer is full simply misses this broadcast and catches up on the next one.
func (h *Hub) broadcastOnline(online []string, targets []*Client) {
	payload, err := marshalEvent(EventOnlineUsers, online)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal online-users broadcast")
		return
	}

	for _, c := range targets {
		if !c.enqueue(payload) {
			h.log.Warn().Str("conn_id", c.ID()).Msg("send buffer full, skipping online broadcast")
		}
	}
	metrics.OnlineBroadcastsTotal.Inc()
}

func (h *Hub) touchLastSeen(userID string) {
	if h.lastSeen == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), lastSeenTimeout)
	defer cancel()
	if err := h.lastSeen.Touch(ctx, userID); err != nil {
		h.log.Debug().Err(err).Str("user_id", userID).Msg("last-seen touch failed")
	}
}

// Shutdown closes every registered connection and waits for the pump
// goroutines to finish, up to the given timeout.
func (h *Hub) Shutdown(timeout time.Duration) error {
	for _, c := range h.registry.Clients() {
		c.shutdown()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.log.Info().Msg("realtime hub shut down")
		return nil
	case <-time.After(timeout):
		h.log.Warn().Msg("realtime hub shutdown timed out")
		return context.DeadlineExceeded
	}
}
