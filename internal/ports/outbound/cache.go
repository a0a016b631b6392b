package outbound

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations. The core
// uses it only to memoize completion responses; profiles and criteria
// are recomputed per request.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
