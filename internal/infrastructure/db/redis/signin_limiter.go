package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

// SignInLimiter throttles repeated sign-in attempts per email and per
// client IP using fixed-window counters.
// Key format: signin:<email> and signinip:<ip>.
type SignInLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewSignInLimiter creates a limiter allowing maxAttempts per key within
// window.
func NewSignInLimiter(client *redis.Client, maxAttempts int, window time.Duration) *SignInLimiter {
	return &SignInLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow counts one attempt against both keys. It returns
// domain.ErrTooManyAttempts when either budget is exhausted; any other
// error means the limiter itself is unavailable.
func (l *SignInLimiter) Allow(ctx context.Context, email, ip string) error {
	if err := l.count(ctx, "signin:"+email); err != nil {
		return err
	}
	if ip != "" {
		return l.count(ctx, "signinip:"+ip)
	}
	return nil
}

// Reset clears both counters after a successful sign-in so earlier failed
// attempts stop counting against the account.
func (l *SignInLimiter) Reset(ctx context.Context, email, ip string) error {
	keys := []string{"signin:" + email}
	if ip != "" {
		keys = append(keys, "signinip:"+ip)
	}
	if err := l.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("signin limiter: %w", err)
	}
	return nil
}

// count increments the key and bounds its lifetime in one pipelined round
// trip. ExpireNX arms the TTL only on the first attempt of a window, so
// the counter can never survive as an orphan with no expiry.
func (l *SignInLimiter) count(ctx context.Context, key string) error {
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("signin limiter: %w", err)
	}

	if incr.Val() > int64(l.maxAttempts) {
		return domain.ErrTooManyAttempts
	}
	return nil
}
