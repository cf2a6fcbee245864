package websocket

import "sync"

// Registry tracks, per conversation, the set of currently attached clients.
// Rooms are locked independently so that traffic on one conversation never
// serializes against another; the outer lock only guards the room index.
// State is process-local and rebuilt empty on restart.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

type room struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*room),
	}
}

// Attach registers a client under a conversation. It always succeeds.
func (r *Registry) Attach(conversationID string, client *Client) {
	r.mu.Lock()
	rm, ok := r.rooms[conversationID]
	if !ok {
		rm = &room{clients: make(map[*Client]struct{})}
		r.rooms[conversationID] = rm
	}
	// Take the room lock before dropping the index lock, otherwise a
	// concurrent Detach could delete the empty room from the index and the
	// client would land in an orphaned room.
	rm.mu.Lock()
	r.mu.Unlock()

	rm.clients[client] = struct{}{}
	rm.mu.Unlock()
}

// Detach removes the client if present. Detaching an absent client is a no-op:
// session teardown may race with a failed delivery that already cleaned up.
func (r *Registry) Detach(conversationID string, client *Client) {
	r.mu.RLock()
	rm, ok := r.rooms[conversationID]
	r.mu.RUnlock()
	if !ok {
		return
	}

	rm.mu.Lock()
	delete(rm.clients, client)
	empty := len(rm.clients) == 0
	rm.mu.Unlock()

	if empty {
		r.mu.Lock()
		// Re-check under the write lock; a concurrent Attach may have
		// repopulated the room between the two critical sections.
		rm.mu.Lock()
		if len(rm.clients) == 0 && r.rooms[conversationID] == rm {
			delete(r.rooms, conversationID)
		}
		rm.mu.Unlock()
		r.mu.Unlock()
	}
}

// Snapshot returns a stable copy of the attached clients for fan-out, so that
// concurrent detaches cannot corrupt the broadcaster's traversal. An absent
// conversation is an empty set.
func (r *Registry) Snapshot(conversationID string) []*Client {
	r.mu.RLock()
	rm, ok := r.rooms[conversationID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	rm.mu.Lock()
	clients := make([]*Client, 0, len(rm.clients))
	for c := range rm.clients {
		clients = append(clients, c)
	}
	rm.mu.Unlock()

	return clients
}
