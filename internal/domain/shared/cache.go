package shared

import (
	"context"
	"time"
)

// DefaultCacheTTL is used when a cache entry is written without an explicit TTL
const DefaultCacheTTL = 5 * time.Minute

// Cache is a best-effort, expiring key-value store.
// Implementations must be safe for concurrent use; the last write to a key wins.
type Cache interface {
	// Get decodes the value stored under key into dest.
	// found is false on a miss or an expired entry.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	// Set stores value under key for ttl; a non-positive ttl means DefaultCacheTTL
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes key
	Delete(ctx context.Context, key string) error
}
