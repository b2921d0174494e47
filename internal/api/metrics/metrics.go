// Package metrics defines and registers all custom Prometheus metrics for the
// Chatify backend. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chatify"

// ── Realtime metrics ──────────────────────────────────────────────────────────

// ConnectionsActive tracks the number of open websocket connections,
// including stale connections that were overwritten by a reconnect but have
// not finished closing yet.
var ConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections_active",
		Help:      "Current number of open websocket connections.",
	},
)

// OnlineUsers tracks the size of the presence registry.
var OnlineUsers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "online_users",
		Help:      "Current number of users with a registered realtime connection.",
	},
)

// HandshakeRejectedTotal counts rejected websocket handshakes.
// Label:
//   - reason: "missing_credential", "invalid_credential", "identity_not_found", or "internal"
var HandshakeRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_handshake_rejected_total",
		Help:      "Total number of websocket handshakes rejected by the connection gate.",
	},
	[]string{"reason"},
)

// PushDeliveriesTotal counts realtime push outcomes for new messages.
// Label:
//   - result: "delivered", "receiver_offline", or "buffer_full"
var PushDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_deliveries_total",
		Help:      "Total number of best-effort message push attempts, by outcome.",
	},
	[]string{"result"},
)

// OnlineBroadcastsTotal counts online-set broadcasts triggered by registry
// mutations.
var OnlineBroadcastsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "online_broadcasts_total",
		Help:      "Total number of getOnlineUsers broadcasts sent to connected clients.",
	},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesCreatedTotal counts persisted messages.
// Label:
//   - kind: "text", "image", or "text_image"
var MessagesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_created_total",
		Help:      "Total number of messages persisted, by content kind.",
	},
	[]string{"kind"},
)

// SignupsTotal counts successful account registrations.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups.",
	},
)
