package realtime

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
	"github.com/AYUSHMAAN1812/chatify/internal/core/ports"
)

// credentialCookieName is the cookie field carrying the session token in the
// handshake headers. Must match the cookie set by the REST auth handler.
const credentialCookieName = "jwt"

// Gate authenticates websocket handshakes before they are accepted. Every
// failure path rejects the handshake; a connection that fails here never
// reaches the presence registry.
type Gate struct {
	verifier ports.IdentityVerifier
	log      zerolog.Logger
}

func NewGate(verifier ports.IdentityVerifier, log zerolog.Logger) *Gate {
	return &Gate{verifier: verifier, log: log}
}

// Authenticate extracts the bearer credential from the handshake's Cookie
// header and resolves it to a user. The caller must reject the handshake on
// any returned error.
func (g *Gate) Authenticate(r *http.Request) (*domain.User, error) {
	credential, ok := credentialFromCookieHeader(r.Header.Get("Cookie"))
	if !ok {
		return nil, domain.ErrMissingCredential
	}
	return g.verifier.VerifyCredential(r.Context(), credential)
}

// credentialFromCookieHeader parses the session token out of a raw
// "name=value; name=value" cookie header string. Pure function, independently
// testable from the network layer.
func credentialFromCookieHeader(raw string) (string, bool) {
	for _, field := range strings.Split(raw, "; ") {
		value, ok := strings.CutPrefix(field, credentialCookieName+"=")
		if !ok {
			continue
		}
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}
