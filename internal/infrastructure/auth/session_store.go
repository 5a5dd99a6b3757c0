package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps live session keys. A session is valid while its key is stored.
type SessionStore interface {
	// Save stores key for username until ttl elapses
	Save(ctx context.Context, key, username string, ttl time.Duration) error

	// Lookup returns the username of a live session, or ErrSessionRevoked
	Lookup(ctx context.Context, key string) (string, error)

	// Revoke removes key; revoking an unknown key is not an error
	Revoke(ctx context.Context, key string) error
}

// RedisSessionStore implements SessionStore using Redis
type RedisSessionStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisSessionStore creates a session store on an existing Redis client
func NewRedisSessionStore(client redis.UniversalClient) *RedisSessionStore {
	return &RedisSessionStore{
		client:    client,
		keyPrefix: "receipts:session:",
	}
}

func (s *RedisSessionStore) sessionKey(key string) string {
	return s.keyPrefix + key
}

// Save stores the session with TTL
func (s *RedisSessionStore) Save(ctx context.Context, key, username string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.sessionKey(key), username, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Lookup returns the username stored for key
func (s *RedisSessionStore) Lookup(ctx context.Context, key string) (string, error) {
	username, err := s.client.Get(ctx, s.sessionKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionRevoked
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up session: %w", err)
	}
	return username, nil
}

// Revoke deletes the session
func (s *RedisSessionStore) Revoke(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.sessionKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

var _ SessionStore = (*RedisSessionStore)(nil)

type sessionEntry struct {
	username  string
	expiresAt time.Time
}

// InMemorySessionStore keeps sessions in process memory.
// WARNING: sessions are not shared across instances.
type InMemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
}

// NewInMemorySessionStore creates a new in-memory session store
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]sessionEntry),
	}
}

// Save stores the session with TTL
func (s *InMemorySessionStore) Save(_ context.Context, key, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = sessionEntry{username: username, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Lookup returns the username of a live session, evicting it once expired
func (s *InMemorySessionStore) Lookup(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.sessions[key]
	if !exists {
		return "", ErrSessionRevoked
	}
	if time.Now().After(e.expiresAt) {
		delete(s.sessions, key)
		return "", ErrSessionRevoked
	}
	return e.username, nil
}

// Revoke deletes the session
func (s *InMemorySessionStore) Revoke(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

var _ SessionStore = (*InMemorySessionStore)(nil)
