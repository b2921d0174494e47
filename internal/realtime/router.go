package realtime

import (
	"github.com/rs/zerolog"

	"github.com/AYUSHMAAN1812/chatify/internal/api/metrics"
	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

// EventRouter pushes freshly persisted messages to their receiver's live
// connection. Delivery is best-effort and at most once: an offline receiver
// is the expected common case, not an error, and no fault here ever reaches
// the caller — the message is already durably stored.
type EventRouter struct {
	registry *Registry
	log      zerolog.Logger
}

func NewEventRouter(registry *Registry, log zerolog.Logger) *EventRouter {
	return &EventRouter{registry: registry, log: log}
}

// DeliverMessage implements ports.MessageDeliverer.
func (r *EventRouter) DeliverMessage(msg *domain.Message) {
	client, ok := r.registry.Lookup(msg.ReceiverID)
	if !ok {
		metrics.PushDeliveriesTotal.WithLabelValues("receiver_offline").Inc()
		return
	}

	payload, err := marshalEvent(EventNewMessage, msg)
	if err != nil {
		r.log.Error().Err(err).Str("message_id", msg.ID).Msg("marshal newMessage event")
		return
	}

	if !client.enqueue(payload) {
		metrics.PushDeliveriesTotal.WithLabelValues("buffer_full").Inc()
		r.log.Warn().
			Str("message_id", msg.ID).
			Str("conn_id", client.ID()).
			Msg("receiver send buffer full, dropping push")
		return
	}

	metrics.PushDeliveriesTotal.WithLabelValues("delivered").Inc()
	r.log.Debug().Str("message_id", msg.ID).Str("conn_id", client.ID()).Msg("message pushed")
}
