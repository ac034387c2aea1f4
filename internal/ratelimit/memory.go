package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count   int64
	resetAt time.Time
}

// MemoryStore keeps counters in process memory. Increment-and-check happens
// under a single lock, so concurrent requests from the same IP cannot slip
// past the limit.
type MemoryStore struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go store.cleanup()

	return store
}

// Close stops the cleanup goroutine. Counters stay readable; only the
// background purge ends. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() {
		if s.stop != nil {
			close(s.stop)
		}
	})
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.currentBucket(key, window)
	b.count++
	return b.count, b.resetAt, nil
}

func (s *MemoryStore) Count(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.currentBucket(key, window)
	return b.count, b.resetAt, nil
}

// currentBucket returns the bucket for the window containing now, resetting
// any expired one. Callers must hold s.mu.
func (s *MemoryStore) currentBucket(key string, window time.Duration) *bucket {
	now := s.now()
	b, ok := s.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Truncate(window).Add(window)}
		s.buckets[key] = b
	}
	return b
}

// cleanup periodically drops expired buckets so idle IPs do not accumulate.
func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, b := range s.buckets {
				if !now.Before(b.resetAt) {
					delete(s.buckets, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
