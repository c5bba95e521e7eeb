package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// maxEntries bounds memory for abandoned keys.
	maxEntries = 16384
	// entryTTL is the LRU's garbage-collection horizon. Expiry checks
	// use the stored timestamp; the LRU TTL only reclaims memory, so
	// it just has to exceed any realistic cooldown duration.
	entryTTL = 24 * time.Hour
)

type memoryService struct {
	mu      sync.Mutex
	entries *expirable.LRU[string, time.Time]
	now     func() time.Time // injectable for tests
}

// NewMemoryService creates an in-process cooldown tracker. Suitable
// for a single node only.
func NewMemoryService() Service {
	return &memoryService{
		entries: expirable.NewLRU[string, time.Time](maxEntries, nil, entryTTL),
		now:     time.Now,
	}
}

func (s *memoryService) TryAcquire(_ context.Context, accountID, communityID, command string, duration time.Duration) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(accountID, communityID, command)
	now := s.now()
	if expiresAt, ok := s.entries.Get(k); ok && now.Before(expiresAt) {
		return false, expiresAt.Sub(now), nil
	}
	s.entries.Add(k, now.Add(duration))
	return true, 0, nil
}

func (s *memoryService) Remaining(_ context.Context, accountID, communityID, command string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.entries.Get(key(accountID, communityID, command))
	if !ok {
		return 0, nil
	}
	remaining := expiresAt.Sub(s.now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *memoryService) Reset(_ context.Context, accountID, communityID, command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Remove(key(accountID, communityID, command))
	return nil
}
