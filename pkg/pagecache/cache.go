// Package pagecache stores rendered pages keyed by request and render
// configuration.
package pagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("pagecache: key not found")

// Cache stores page bytes. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, page []byte) error
}

// DefaultTTL is used when a cache is created with a non-positive TTL.
const DefaultTTL = 10 * time.Minute

// Key joins parts into a stable cache key. Parts are hashed so keys stay
// short and free of separator characters.
func Key(prefix string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return prefix + ":" + hex.EncodeToString(sum[:12])
}
