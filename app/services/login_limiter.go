package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	MaxLoginAttempts   = 5
	LoginAttemptWindow = 15 * time.Minute

	keyLoginFailures = "login:fail:%s"
)

type LoginLimiter interface {
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// RedisLoginLimiter counts failed logins per e-mail in a fixed window that
// starts with the first failure.
type RedisLoginLimiter struct {
	rdb         *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewRedisLoginLimiter(rdb *redis.Client) *RedisLoginLimiter {
	return &RedisLoginLimiter{rdb: rdb, maxAttempts: MaxLoginAttempts, window: LoginAttemptWindow}
}

func loginKey(email string) string {
	return fmt.Sprintf(keyLoginFailures, strings.ToLower(strings.TrimSpace(email)))
}

func (l *RedisLoginLimiter) Allowed(ctx context.Context, email string) (bool, error) {
	n, err := l.rdb.Get(ctx, loginKey(email)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return n < l.maxAttempts, nil
}

func (l *RedisLoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := loginKey(email)
	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return l.rdb.Expire(ctx, key, l.window).Err()
	}
	return nil
}

func (l *RedisLoginLimiter) Reset(ctx context.Context, email string) error {
	return l.rdb.Del(ctx, loginKey(email)).Err()
}

// NoopLoginLimiter is used when no Redis address is configured.
type NoopLoginLimiter struct{}

func (NoopLoginLimiter) Allowed(context.Context, string) (bool, error) { return true, nil }
func (NoopLoginLimiter) RecordFailure(context.Context, string) error   { return nil }
func (NoopLoginLimiter) Reset(context.Context, string) error           { return nil }
