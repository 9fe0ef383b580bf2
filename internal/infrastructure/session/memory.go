package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

const sweepInterval = time.Minute

// MemoryStore sesiones en proceso; se usa cuando REDIS_URL está vacío y en tests.
// Las entradas vencidas se purgan en Save como mucho una vez por sweepInterval.
type MemoryStore struct {
	mu        sync.Mutex
	items     map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore crea un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	e, ok := m.items[id]
	if ok && !e.expires.After(m.now()) {
		delete(m.items, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var s Session
	if err := json.Unmarshal(e.raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, s *Session, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	now := m.now()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweep(now)
	}
	m.items[id] = memoryEntry{raw: raw, expires: now.Add(ttl)}
	m.mu.Unlock()
	return nil
}

// sweep borra las entradas vencidas. Requiere m.mu.
func (m *MemoryStore) sweep(now time.Time) {
	for id, e := range m.items {
		if !e.expires.After(now) {
			delete(m.items, id)
		}
	}
	m.lastSweep = now
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}

// Len número de sesiones guardadas, vencidas incluidas hasta la próxima purga.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *MemoryStore) Close() error { return nil }
