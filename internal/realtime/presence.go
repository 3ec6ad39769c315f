package realtime

import "sync"

// Presence maps a user to the single live connection it holds.
type Presence struct {
	mu    sync.RWMutex
	conns map[string]Conn
}

// NewPresence creates an empty presence registry.
func NewPresence() *Presence {
	return &Presence{conns: make(map[string]Conn)}
}

// Register inserts or replaces the connection for userID and returns the
// connection it replaced, if any. The replaced connection is not closed.
// A nil conn is never stored.
func (p *Presence) Register(userID string, conn Conn) (Conn, bool) {
	if conn == nil {
		return nil, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prev, ok := p.conns[userID]
	p.conns[userID] = conn
	if ok && prev == conn {
		return nil, false
	}
	return prev, ok
}

// Unregister removes the entry for userID. It is a no-op for unknown users.
func (p *Presence) Unregister(userID string) {
	p.mu.Lock()
	delete(p.conns, userID)
	p.mu.Unlock()
}

// UnregisterHandle removes the entry for userID only while it still points
// at conn, and reports whether it did.
func (p *Presence) UnregisterHandle(userID string, conn Conn) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cur, ok := p.conns[userID]; ok && cur == conn {
		delete(p.conns, userID)
		return true
	}
	return false
}

// Lookup returns the live connection for userID.
func (p *Presence) Lookup(userID string) (Conn, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	conn, ok := p.conns[userID]
	return conn, ok
}

// Count returns the number of online users.
func (p *Presence) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.conns)
}

// Snapshot returns a copy of the registry.
func (p *Presence) Snapshot() map[string]Conn {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]Conn, len(p.conns))
	for id, c := range p.conns {
		out[id] = c
	}
	return out
}
