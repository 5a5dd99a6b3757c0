package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/receipts/backend/internal/domain/shared"
)

const defaultCleanupInterval = 5 * time.Minute

// resultEntry represents a stored command result with expiration
type resultEntry struct {
	result    shared.CommandResult
	expiresAt time.Time
}

// InMemoryCommandResultStore implements CommandResultStore using an in-memory map.
// Results do not survive a restart and are not shared between instances.
type InMemoryCommandResultStore struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]resultEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCommandResultStore creates a new in-memory result store.
// It starts a background goroutine that evicts expired results.
func NewInMemoryCommandResultStore() *InMemoryCommandResultStore {
	return newInMemoryCommandResultStore(defaultCleanupInterval)
}

func newInMemoryCommandResultStore(interval time.Duration) *InMemoryCommandResultStore {
	store := &InMemoryCommandResultStore{
		entries:  make(map[uuid.UUID]resultEntry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop(interval)

	return store
}

// Put stores result under its ticket, replacing any earlier state
func (s *InMemoryCommandResultStore) Put(_ context.Context, result shared.CommandResult, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[result.Ticket] = resultEntry{
		result:    result,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get returns the result stored for ticket, or ErrNoRecord
func (s *InMemoryCommandResultStore) Get(_ context.Context, ticket uuid.UUID) (*shared.CommandResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[ticket]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, shared.ErrNoRecord
	}
	result := e.result
	return &result, nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryCommandResultStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryCommandResultStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryCommandResultStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for ticket, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, ticket)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryCommandResultStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ shared.CommandResultStore = (*InMemoryCommandResultStore)(nil)
