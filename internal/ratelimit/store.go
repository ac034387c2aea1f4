// Package ratelimit implements fixed-window request counting keyed by
// (tier, client IP). Counters live in an in-memory store by default, or in
// Redis when the service runs with multiple instances.
package ratelimit

import (
	"context"
	"time"
)

// Store counts events per key within fixed, non-overlapping windows.
type Store interface {
	// Increment adds one to the key's counter for the window containing now
	// and returns the updated count together with the window's reset time.
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
	// Count reports the key's counter for the current window without
	// modifying it.
	Count(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}
