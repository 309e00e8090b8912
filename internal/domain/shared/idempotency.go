package shared

import (
	"context"
	"time"
)

// IdempotencyStore claims keys for a limited time. It guards refund
// completion against concurrent callers and event handlers against
// redelivery.
type IdempotencyStore interface {
	// MarkProcessed claims key for ttl. It reports false when the key is
	// already claimed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, key string) (bool, error)
	// Release drops a claim so the guarded work can be retried.
	Release(ctx context.Context, key string) error
	Close() error
}

type IdempotencyConfig struct {
	TTL     time.Duration
	Enabled bool
}

func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{TTL: 24 * time.Hour, Enabled: true}
}
