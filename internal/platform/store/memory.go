package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests and as a substitute
// backend when Redis is unavailable.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers map[string][]chan struct{}
}

// NewMemory constructs an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string][]byte),
		watchers: make(map[string][]chan struct{}),
	}
}

func (s *MemoryStore) Load(ctx context.Context, collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[collection]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, collection string, data []byte) error {
	s.mu.Lock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.data[collection] = stored
	s.mu.Unlock()
	s.notify(collection)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection string) error {
	s.mu.Lock()
	delete(s.data, collection)
	s.mu.Unlock()
	s.notify(collection)
	return nil
}

func (s *MemoryStore) Watch(ctx context.Context, collection string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watchers[collection] = append(s.watchers[collection], ch)
	s.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			subs := s.watchers[collection]
			for i, sub := range subs {
				if sub == ch {
					s.watchers[collection] = append(subs[:i], subs[i+1:]...)
					break
				}
			}
			close(ch)
		})
	}
	return ch, stop
}

func (s *MemoryStore) notify(collection string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
