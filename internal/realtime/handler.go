package realtime

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/AYUSHMAAN1812/chatify/internal/api/metrics"
	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

// Handler serves the websocket endpoint. It authenticates the handshake
// through the Gate before upgrading; a rejected handshake is answered with a
// plain 401 and the connection is never accepted.
type Handler struct {
	gate     *Gate
	hub      *Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(gate *Gate, hub *Hub, allowedOrigin string, log zerolog.Logger) *Handler {
	return &Handler{
		gate: gate,
		hub:  hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigin),
		},
		log: log,
	}
}

// Serve handles GET /ws.
func (h *Handler) Serve(c echo.Context) error {
	user, err := h.gate.Authenticate(c.Request())
	if err != nil {
		metrics.HandshakeRejectedTotal.WithLabelValues(rejectionReason(err)).Inc()
		h.log.Warn().Err(err).Str("remote", c.Request().RemoteAddr).Msg("websocket handshake rejected")
		// One generic reason for every failure mode; the client learns
		// nothing about which check failed.
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the handshake error response.
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	client := newClient(uuid.NewString(), user, conn, h.log)
	h.hub.Bind(client)
	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, domain.ErrInvalidCredential):
		return "invalid_credential"
	case errors.Is(err, domain.ErrIdentityNotFound):
		return "identity_not_found"
	default:
		return "internal"
	}
}

func originChecker(allowed string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return origin == allowed
	}
}
