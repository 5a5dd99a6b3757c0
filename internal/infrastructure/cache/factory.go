package cache

import (
	"context"
	"fmt"

	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ResultStoreFactory creates command result stores based on configuration
type ResultStoreFactory struct {
	backend               string
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ResultStoreFactoryOption is a functional option for configuring the factory
type ResultStoreFactoryOption func(*ResultStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ResultStoreFactoryOption {
	return func(f *ResultStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to the in-memory store.
// Default is true.
func WithInMemoryFallback(allow bool) ResultStoreFactoryOption {
	return func(f *ResultStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewResultStoreFactory creates a new factory for the configured backend
func NewResultStoreFactory(backend string, redisCfg config.RedisConfig, opts ...ResultStoreFactoryOption) *ResultStoreFactory {
	f := &ResultStoreFactory{
		backend:               backend,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based result store
func (f *ResultStoreFactory) CreateRedisStore(ctx context.Context) (*RedisCommandResultStore, error) {
	store, err := NewRedisCommandResultStore(ctx, RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis command result store: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore creates an in-memory result store
func (f *ResultStoreFactory) CreateInMemoryStore() *InMemoryCommandResultStore {
	return NewInMemoryCommandResultStore()
}

// CreateStore creates the configured store. It returns nil, nil when results
// are disabled.
func (f *ResultStoreFactory) CreateStore(ctx context.Context) (shared.CommandResultStore, error) {
	switch f.backend {
	case config.ResultStoreNone:
		f.logger.Info("Command results are not recorded")
		return nil, nil
	case config.ResultStoreMemory, "":
		f.logger.Info("Using in-memory command result store")
		return f.CreateInMemoryStore(), nil
	case config.ResultStoreRedis:
	default:
		return nil, fmt.Errorf("unknown command result store %q", f.backend)
	}

	store, err := f.CreateRedisStore(ctx)
	if err == nil {
		f.logger.Info("Using Redis command result store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for command results but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory command result store. "+
		"Tickets cannot be polled across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
