package query

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store with list support, used when Redis is
// unreachable at startup and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	lists   map[string]memoryList
	now     func() time.Time
}

type memoryList struct {
	values    [][]byte
	expiresAt time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		lists:   make(map[string]memoryList),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}
	return e.value, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Push appends value to the list at key and resets the list's TTL.
func (s *MemoryStore) Push(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.liveList(key)
	l.values = append(l.values, value)
	l.expiresAt = time.Time{}
	if ttl > 0 {
		l.expiresAt = s.now().Add(ttl)
	}
	s.lists[key] = l
	return nil
}

// PopAll returns and removes every element of the list at key, oldest first.
func (s *MemoryStore) PopAll(_ context.Context, key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.liveList(key)
	delete(s.lists, key)
	return l.values, nil
}

// liveList returns the list at key, treating an expired one as empty. s.mu must be held.
func (s *MemoryStore) liveList(key string) memoryList {
	l, ok := s.lists[key]
	if !ok || (!l.expiresAt.IsZero() && !s.now().Before(l.expiresAt)) {
		return memoryList{}
	}
	return l
}
