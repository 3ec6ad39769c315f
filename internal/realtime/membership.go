package realtime

import (
	"slices"
	"sync"
)

// Membership tracks which users are watching which conversation for live
// delivery. It is volatile: clients re-join after reconnecting.
type Membership struct {
	mu      sync.RWMutex
	members map[string]map[string]struct{} // conversationID -> userIDs
}

// NewMembership creates an empty membership registry.
func NewMembership() *Membership {
	return &Membership{members: make(map[string]map[string]struct{})}
}

// Join adds userID to the conversation. Joining twice is a no-op.
func (m *Membership) Join(conversationID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.members[conversationID]
	if !ok {
		set = make(map[string]struct{})
		m.members[conversationID] = set
	}
	set[userID] = struct{}{}
}

// Leave removes userID from every conversation and drops sets left empty.
func (m *Membership) Leave(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for convID, set := range m.members {
		delete(set, userID)
		if len(set) == 0 {
			delete(m.members, convID)
		}
	}
}

// MembersOf returns the sorted members of the conversation. It returns an
// empty slice for unknown conversations.
func (m *Membership) MembersOf(conversationID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set := m.members[conversationID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Conversations returns the number of conversations with at least one member.
func (m *Membership) Conversations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.members)
}
