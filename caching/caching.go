// Package caching keeps short-lived counters in process memory.
package caching

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	memoryCache *cache.Cache
	mu          sync.Mutex
}

func NewCache() *Cache {
	return &Cache{}
}

func (s *Cache) Init() (err error) {
	defer func() {
		if err != nil {
			s.Flush()
		}
	}()

	s.memoryCache = cache.New(time.Minute, 2*time.Minute)

	return nil
}

func (s *Cache) Flush() error {
	if s.memoryCache != nil {
		s.memoryCache.Flush()
	}
	return nil
}

// Incr bumps the counter under key and returns the new value. A missing or
// expired counter starts over at 1 and lives for window.
func (s *Cache) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.memoryCache.Add(key, int64(1), window); err == nil {
		return 1, nil
	}
	n, err := s.memoryCache.IncrementInt64(key, 1)
	if err != nil {
		// expired between Add and IncrementInt64
		s.memoryCache.Set(key, int64(1), window)
		return 1, nil
	}
	return n, nil
}
