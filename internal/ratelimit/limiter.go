package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Result is the outcome of consulting a limiter for one client.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter enforces one fixed-window limit for one tier.
type Limiter struct {
	store  Store
	tier   string
	limit  int
	window time.Duration
	logger *zap.Logger
}

func NewLimiter(store Store, tier string, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{
		store:  store,
		tier:   tier,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

func (l *Limiter) Tier() string {
	return l.tier
}

// Allow counts the request and reports whether it fits the window. Store
// failures fail open: a broken counter backend must not take payments down.
func (l *Limiter) Allow(ctx context.Context, clientIP string) Result {
	count, resetAt, err := l.store.Increment(ctx, l.key(clientIP), l.window)
	if err != nil {
		l.logger.Warn("rate limit store unavailable, allowing request",
			zap.String("tier", l.tier),
			zap.Error(err))
		return l.failOpen()
	}

	return Result{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: l.remaining(count),
		ResetAt:   resetAt,
	}
}

// Check reports whether the client has headroom left without counting the
// request. Used by the failed-attempt tier, which only counts failures.
func (l *Limiter) Check(ctx context.Context, clientIP string) Result {
	count, resetAt, err := l.store.Count(ctx, l.key(clientIP), l.window)
	if err != nil {
		l.logger.Warn("rate limit store unavailable, allowing request",
			zap.String("tier", l.tier),
			zap.Error(err))
		return l.failOpen()
	}

	return Result{
		Allowed:   count < int64(l.limit),
		Limit:     l.limit,
		Remaining: l.remaining(count),
		ResetAt:   resetAt,
	}
}

// Record counts one event against the client without deciding anything.
func (l *Limiter) Record(ctx context.Context, clientIP string) {
	if _, _, err := l.store.Increment(ctx, l.key(clientIP), l.window); err != nil {
		l.logger.Warn("failed to record rate limit event",
			zap.String("tier", l.tier),
			zap.Error(err))
	}
}

func (l *Limiter) key(clientIP string) string {
	return l.tier + ":" + clientIP
}

func (l *Limiter) remaining(count int64) int {
	remaining := l.limit - int(count)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (l *Limiter) failOpen() Result {
	return Result{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit,
		ResetAt:   time.Now().Add(l.window),
	}
}
