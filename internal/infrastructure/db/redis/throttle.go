package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ThrottleConfig tunes the failed-login limiter.
type ThrottleConfig struct {
	// MaxFailures within Window engages the lock.
	MaxFailures int
	Window      time.Duration
	// LockDuration is how long logins stay blocked once engaged.
	LockDuration time.Duration
}

// LoginThrottle counts failed logins per (ip, email) in Redis.
// Key format: login_fail:<ip>:<email> — a counter whose TTL is the failure
// window, replaced by the lock duration once the limit is hit.
type LoginThrottle struct {
	client *redis.Client
	cfg    ThrottleConfig
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, cfg ThrottleConfig) *LoginThrottle {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.LockDuration <= 0 {
		cfg.LockDuration = 10 * time.Minute
	}
	return &LoginThrottle{client: client, cfg: cfg}
}

// Blocked reports whether logins for this (ip, email) pair are locked out.
func (t *LoginThrottle) Blocked(ctx context.Context, ip, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(ip, email)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.cfg.MaxFailures, nil
}

// RecordFailure bumps the failure counter. The first failure opens the
// window; hitting the limit swaps the TTL to the lock duration.
func (t *LoginThrottle) RecordFailure(ctx context.Context, ip, email string) error {
	key := t.key(ip, email)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	switch {
	case n == 1:
		err = t.client.Expire(ctx, key, t.cfg.Window).Err()
	case n == int64(t.cfg.MaxFailures):
		err = t.client.Expire(ctx, key, t.cfg.LockDuration).Err()
	}
	if err != nil {
		return fmt.Errorf("throttle expire: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, ip, email string) error {
	if err := t.client.Del(ctx, t.key(ip, email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(ip, email string) string {
	return fmt.Sprintf("login_fail:%s:%s", ip, email)
}
