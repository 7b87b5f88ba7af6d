package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrLocked   = errors.New("session is busy")
)

const defaultTTL = 2 * time.Hour

// Store persists sessions between user actions.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, s *Session) error
	// Lock serializes actions on one session. It fails with ErrLocked when
	// another action holds the session.
	Lock(ctx context.Context, id uuid.UUID) (func() error, error)
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[uuid.UUID]memoryEntry
	locks    map[uuid.UUID]struct{}
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-process store; ttl <= 0 uses two hours.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]memoryEntry),
		locks:    make(map[uuid.UUID]struct{}),
	}
}

func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.now().After(entry.expiresAt) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	s := entry.session
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			delete(m.sessions, id)
		}
	}
	m.sessions[s.ID] = memoryEntry{session: *s, expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Lock(_ context.Context, id uuid.UUID) (func() error, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, held := m.locks[id]; held {
		return nil, ErrLocked
	}
	m.locks[id] = struct{}{}

	var once sync.Once
	return func() error {
		once.Do(func() {
			m.mu.Lock()
			delete(m.locks, id)
			m.mu.Unlock()
		})
		return nil
	}, nil
}

// Len reports how many sessions are stored.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
