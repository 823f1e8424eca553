package session

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local store. Sessions vanish on restart.
type Memory struct {
	mu    sync.Mutex
	items map[string]Session
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]Session), now: time.Now}
}

func (m *Memory) Get(_ context.Context, id string) (*Session, error) {
	key := hashID(id)
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	if s.Expired(m.now()) {
		delete(m.items, key)
		return nil, ErrNotFound
	}
	s.ID = id
	return &s, nil
}

func (m *Memory) Save(_ context.Context, s *Session) error {
	cp := *s
	cp.ID = ""
	m.mu.Lock()
	m.items[hashID(s.ID)] = cp
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.items, hashID(id))
	m.mu.Unlock()
	return nil
}

func (m *Memory) Purge(_ context.Context) (int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, s := range m.items {
		if s.Expired(now) {
			delete(m.items, k)
			n++
		}
	}
	return n, nil
}

func (m *Memory) Close() error { return nil }
