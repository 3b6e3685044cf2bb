package media

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore is a read-through cache in front of another Store. Only
// successful Get results are cached; misses always reach the backend so
// media written after startup shows up.
type CachedStore struct {
	next  Store
	cache *lru.Cache[string, []byte]
}

// NewCachedStore wraps next with an LRU cache of size entries.
func NewCachedStore(next Store, size int) (*CachedStore, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &CachedStore{next: next, cache: cache}, nil
}

func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}
	data, err := s.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, data)
	return data, nil
}

func (s *CachedStore) Exists(ctx context.Context, key string) (bool, error) {
	if s.cache.Contains(key) {
		return true, nil
	}
	return s.next.Exists(ctx, key)
}

// Purge drops every cached object.
func (s *CachedStore) Purge() {
	s.cache.Purge()
}

// Len returns the number of cached objects.
func (s *CachedStore) Len() int {
	return s.cache.Len()
}
