package cache

import (
	"context"
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore picks the completion guard store. Without a Redis host
// the in-memory store is used. An unreachable Redis degrades to it as well
// unless cfg.Required is set.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (shared.IdempotencyStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Host == "" {
		log.Info("refund completion guard kept in memory")
		return NewInMemoryIdempotencyStore(), nil
	}

	client, err := NewRedisClient(ctx, cfg)
	switch {
	case err == nil:
		log.Info("refund completion guard kept in Redis", zap.String("addr", cfg.Addr()))
		return NewRedisIdempotencyStore(client, DefaultKeyPrefix), nil
	case cfg.Required:
		return nil, fmt.Errorf("redis %s unavailable for the refund completion guard: %w", cfg.Addr(), err)
	}

	log.Warn("Redis unavailable, refund completions are only guarded within this instance",
		zap.String("addr", cfg.Addr()), zap.Error(err))
	return NewInMemoryIdempotencyStore(), nil
}
