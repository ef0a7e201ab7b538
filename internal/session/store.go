package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 12 * time.Hour

// Store keeps session states by ID.
type Store interface {
	Get(id string) (State, bool)
	Put(s State)
	Delete(id string)
}

type entry struct {
	state    State
	lastSeen time.Time
}

// MemoryStore is an in-process Store. Sessions idle for longer than the TTL
// are evicted lazily on Put. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store. A non-positive ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Get returns the state for id and marks it as seen. Expired entries are
// reported as missing.
func (m *MemoryStore) Get(id string) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return State{}, false
	}
	now := m.now()
	if now.Sub(e.lastSeen) > m.ttl {
		delete(m.entries, id)
		return State{}, false
	}
	e.lastSeen = now
	m.entries[id] = e
	return e.state, true
}

// Put stores s, replacing any previous state with the same ID.
func (m *MemoryStore) Put(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.entries {
		if now.Sub(e.lastSeen) > m.ttl {
			delete(m.entries, id)
		}
	}
	m.entries[s.ID] = entry{state: s, lastSeen: now}
}

// Delete removes a session.
func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
}

// Len returns the number of stored sessions, including expired ones not yet
// evicted.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
