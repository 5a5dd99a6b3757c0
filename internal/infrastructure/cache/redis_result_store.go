package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// DefaultResultKeyPrefix namespaces command results in Redis
const DefaultResultKeyPrefix = "receipts:command:"

// RedisCommandResultStore implements CommandResultStore using Redis.
// Results are JSON documents that expire with their TTL.
type RedisCommandResultStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ownClient bool
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient creates a client and verifies the connection
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisCommandResultStore creates a Redis-based result store with its own client
func NewRedisCommandResultStore(ctx context.Context, cfg RedisConfig) (*RedisCommandResultStore, error) {
	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &RedisCommandResultStore{
		client:    client,
		keyPrefix: DefaultResultKeyPrefix,
		ownClient: true,
	}, nil
}

// NewRedisCommandResultStoreWithClient creates a store on a shared client.
// Close leaves a shared client open.
func NewRedisCommandResultStoreWithClient(client redis.UniversalClient, keyPrefix string) *RedisCommandResultStore {
	if keyPrefix == "" {
		keyPrefix = DefaultResultKeyPrefix
	}
	return &RedisCommandResultStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisCommandResultStore) key(ticket uuid.UUID) string {
	return s.keyPrefix + ticket.String()
}

// Put stores result under its ticket with ttl
func (s *RedisCommandResultStore) Put(ctx context.Context, result shared.CommandResult, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode command result: %w", err)
	}
	if err := s.client.Set(ctx, s.key(result.Ticket), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store command result: %w", err)
	}
	return nil
}

// Get returns the result stored for ticket, or ErrNoRecord
func (s *RedisCommandResultStore) Get(ctx context.Context, ticket uuid.UUID) (*shared.CommandResult, error) {
	payload, err := s.client.Get(ctx, s.key(ticket)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load command result: %w", err)
	}

	var result shared.CommandResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode command result: %w", err)
	}
	return &result, nil
}

// Close closes the Redis client when the store owns it
func (s *RedisCommandResultStore) Close() error {
	if !s.ownClient {
		return nil
	}
	return s.client.Close()
}

var _ shared.CommandResultStore = (*RedisCommandResultStore)(nil)
