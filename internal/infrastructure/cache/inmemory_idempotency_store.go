package cache

import (
	"context"
	"sync"
	"time"

	"github.com/growai/backend/internal/domain/shared"
)

// defaultCleanupInterval is how often expired keys are swept
const defaultCleanupInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps processed request keys in a map.
// State is per process, so it only fits single-instance deployments and tests.
type InMemoryIdempotencyStore struct {
	mu        sync.Mutex
	expiries  map[string]time.Time
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// InMemoryOption configures an InMemoryIdempotencyStore
type InMemoryOption func(*InMemoryIdempotencyStore)

// WithNow replaces the clock used for expiry checks
func WithNow(now func() time.Time) InMemoryOption {
	return func(s *InMemoryIdempotencyStore) {
		s.now = now
	}
}

// NewInMemoryIdempotencyStore creates the store and starts its cleanup loop
func NewInMemoryIdempotencyStore(opts ...InMemoryOption) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		expiries: make(map[string]time.Time),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.cleanupLoop(defaultCleanupInterval)

	return s
}

// MarkProcessed records key until ttl elapses.
// Returns false when an unexpired record already exists.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiresAt, ok := s.expiries[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	s.expiries[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether key has an unexpired record
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.expiries[key]
	return ok && s.now().Before(expiresAt), nil
}

// Release forgets key
func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.expiries, key)
	return nil
}

// Close stops the cleanup loop. Safe to call multiple times.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of stored keys, expired ones included until swept
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiries)
}

func (s *InMemoryIdempotencyStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep drops expired keys
func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, expiresAt := range s.expiries {
		if !now.Before(expiresAt) {
			delete(s.expiries, key)
		}
	}
}

// Ensure InMemoryIdempotencyStore implements IdempotencyStore
var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
