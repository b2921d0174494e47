package realtime

import (
	"sort"
	"sync"
)

// Registry is the process-wide presence map from user id to the single active
// connection for that user. At most one entry exists per user: a second
// handshake by the same identity overwrites the prior entry.
//
// All methods are safe for concurrent use. Mutating methods return the data
// needed for the online-set broadcast, captured atomically with the mutation,
// so callers can fan out after the lock is released.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Client)}
}

// Register inserts or overwrites the entry for the client's user. It returns
// the online set and fan-out targets after the mutation, plus the previous
// client when the registration displaced one.
func (r *Registry) Register(c *Client) (online []string, targets []*Client, prev *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[c.UserID()]; ok && existing != c {
		prev = existing
	}
	r.entries[c.UserID()] = c
	return r.snapshotLocked(), r.clientsLocked(), prev
}

// Unregister removes the entry for userID only when it still points at
// connID. A disconnect from a stale connection must not remove a newer
// registration for the same user, so absence or a connection-id mismatch is a
// silent no-op.
func (r *Registry) Unregister(userID, connID string) (online []string, targets []*Client, removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[userID]
	if !ok || existing.ID() != connID {
		return nil, nil, false
	}
	delete(r.entries, userID)
	return r.snapshotLocked(), r.clientsLocked(), true
}

// Lookup returns the active client for the user, if any. Pure read.
func (r *Registry) Lookup(userID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.entries[userID]
	return c, ok
}

// Snapshot returns the ordered set of user ids currently registered.
func (r *Registry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Clients returns every registered client.
func (r *Registry) Clients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clientsLocked()
}

func (r *Registry) snapshotLocked() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) clientsLocked() []*Client {
	clients := make([]*Client, 0, len(r.entries))
	for _, c := range r.entries {
		clients = append(clients, c)
	}
	return clients
}
