// Package realtime implements the presence and live-delivery subsystem: the
// websocket transport, the connection gate that authenticates handshakes, the
// presence registry mapping users to connections, and the event router that
// pushes freshly persisted messages to their receivers.
package realtime

import "encoding/json"

// Wire event names. Clients key their handlers on these.
const (
	EventOnlineUsers = "getOnlineUsers"
	EventNewMessage  = "newMessage"
)

// Envelope is the JSON frame sent to clients: an event name plus its payload.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func marshalEvent(event string, data any) ([]byte, error) {
	return json.Marshal(Envelope{Event: event, Data: data})
}
