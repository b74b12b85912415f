package cache

import (
	"context"
	"fmt"

	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// redisConnector opens a Redis-backed store; swapped out in tests
type redisConnector func(ctx context.Context, cfg config.RedisConfig) (shared.IdempotencyStore, error)

func connectRedis(ctx context.Context, cfg config.RedisConfig) (shared.IdempotencyStore, error) {
	return NewRedisIdempotencyStore(ctx, cfg)
}

// IdempotencyStoreFactory builds the store selected by configuration
type IdempotencyStoreFactory struct {
	idempotency           config.IdempotencyConfig
	redis                 config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	connect               redisConnector
}

// IdempotencyStoreFactoryOption is a functional option for configuring the factory
type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the in-memory store
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewIdempotencyStoreFactory creates a new factory
func NewIdempotencyStoreFactory(idem config.IdempotencyConfig, redisCfg config.RedisConfig, opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		idempotency:           idem,
		redis:                 redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		connect:               connectRedis,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns the configured store. With the redis backend an
// unreachable server falls back to memory unless fallback is disabled.
func (f *IdempotencyStoreFactory) CreateStore(ctx context.Context) (shared.IdempotencyStore, error) {
	if f.idempotency.Backend != config.IdempotencyBackendRedis {
		f.logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := f.connect(ctx, f.redis)
	if err == nil {
		f.logger.Info("using Redis idempotency store", zap.String("addr", f.redis.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store; "+
		"duplicate sales are only rejected per instance",
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(), nil
}
