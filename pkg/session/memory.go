package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session Session
	// expires is zero when the store has no TTL.
	expires time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryTTL expires sessions after ttl of inactivity. Zero keeps them
// forever.
func WithMemoryTTL(ttl time.Duration) (opt MemoryOption) {
	opt = func(m *MemoryStore) {
		m.ttl = ttl
	}
	return opt
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) (store *MemoryStore) {
	store = &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Create starts and stores a new session.
func (m *MemoryStore) Create(_ context.Context, workflow string) (s Session, err error) {
	s, err = New(workflow)
	if err != nil {
		return s, err
	}

	m.mu.Lock()
	now := m.now()
	m.sweep(now)
	m.sessions[s.ID] = m.entry(s, now)
	m.mu.Unlock()

	return s, err
}

// Get returns a copy of the stored session. Expired sessions are not found.
func (m *MemoryStore) Get(_ context.Context, id string) (s Session, err error) {
	m.mu.RLock()
	stored, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || m.expired(stored, m.now()) {
		err = ErrNotFound
		return s, err
	}

	s = clone(stored.session)
	return s, err
}

// Save replaces a stored session and refreshes its expiry. Sessions that were
// deleted or have expired are not recreated.
func (m *MemoryStore) Save(_ context.Context, s Session) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	if _, ok := m.sessions[s.ID]; !ok {
		err = ErrNotFound
		return err
	}

	s.UpdatedAt = now.UTC()
	m.sessions[s.ID] = m.entry(s, now)
	return err
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, id string) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.sessions[id]
	if !ok || m.expired(stored, m.now()) {
		delete(m.sessions, id)
		err = ErrNotFound
		return err
	}

	delete(m.sessions, id)
	return err
}

// Len returns the number of stored sessions, including expired ones not yet
// swept.
func (m *MemoryStore) Len() (n int) {
	m.mu.RLock()
	n = len(m.sessions)
	m.mu.RUnlock()
	return n
}

func (m *MemoryStore) entry(s Session, now time.Time) (e memoryEntry) {
	e = memoryEntry{session: clone(s)}
	if m.ttl > 0 {
		e.expires = now.Add(m.ttl)
	}
	return e
}

func (m *MemoryStore) expired(e memoryEntry, now time.Time) (ok bool) {
	ok = !e.expires.IsZero() && !now.Before(e.expires)
	return ok
}

// sweep drops expired sessions. Callers hold the write lock.
func (m *MemoryStore) sweep(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, e := range m.sessions {
		if m.expired(e, now) {
			delete(m.sessions, id)
		}
	}
}
