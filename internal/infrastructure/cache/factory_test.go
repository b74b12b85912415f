package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func failingConnector(context.Context, config.RedisConfig) (shared.IdempotencyStore, error) {
	return nil, errors.New("connection refused")
}

func TestIdempotencyStoreFactory_MemoryBackend(t *testing.T) {
	f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Backend: config.IdempotencyBackendMemory}, config.RedisConfig{})

	store, err := f.CreateStore(context.Background())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
}

func TestIdempotencyStoreFactory_RedisFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := NewIdempotencyStoreFactory(
		config.IdempotencyConfig{Backend: config.IdempotencyBackendRedis},
		config.RedisConfig{Host: "localhost", Port: 6390},
		WithLogger(zap.New(core)),
	)
	f.connect = failingConnector

	store, err := f.CreateStore(context.Background())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	assert.Equal(t, 1, logs.Len())
}

func TestIdempotencyStoreFactory_RedisRequired(t *testing.T) {
	f := NewIdempotencyStoreFactory(
		config.IdempotencyConfig{Backend: config.IdempotencyBackendRedis},
		config.RedisConfig{Host: "localhost", Port: 6390},
		WithInMemoryFallback(false),
	)
	f.connect = failingConnector

	_, err := f.CreateStore(context.Background())
	assert.ErrorContains(t, err, "redis required")
}

func TestIdempotencyStoreFactory_RedisConnected(t *testing.T) {
	f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Backend: config.IdempotencyBackendRedis}, config.RedisConfig{})
	want := NewInMemoryIdempotencyStore()
	defer want.Close()
	f.connect = func(context.Context, config.RedisConfig) (shared.IdempotencyStore, error) {
		return want, nil
	}

	store, err := f.CreateStore(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, store)
}
