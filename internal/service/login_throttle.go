package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// LoginThrottle bounds failed login attempts per email and client address
// using Redis counters. Redis being unreachable fails open: throttling is
// a hardening layer, not an authentication dependency.
type LoginThrottle struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginThrottle builds a throttle. A nil client disables throttling.
func NewLoginThrottle(client *redis.Client, max int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, max: max, window: window, logger: logger}
}

func (t *LoginThrottle) key(email, clientIP string) string {
	return fmt.Sprintf("login_attempts:%s:%s", email, clientIP)
}

// Allow counts the attempt and rejects once the window budget is spent.
func (t *LoginThrottle) Allow(ctx context.Context, email, clientIP string) error {
	if t == nil || t.client == nil || t.max <= 0 {
		return nil
	}

	key := t.key(email, clientIP)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("login throttle unavailable; allowing attempt", zap.Error(err))
		return nil
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			t.logger.Warn("failed to set throttle window", zap.Error(err))
		}
	}
	if count > int64(t.max) {
		return apperrors.NewTooManyRequests("too many login attempts, try again later")
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email, clientIP string) {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Del(ctx, t.key(email, clientIP)).Err(); err != nil {
		t.logger.Warn("failed to reset login throttle", zap.Error(err))
	}
}
