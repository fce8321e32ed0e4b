// Package ratelimit throttles failed sign-in attempts per email address.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/s-r-jones/deep-dive-air/internal/common"
)

// Limiter tracks failed attempts for an identifier.
type Limiter interface {
	// Check returns common.ErrTooManyAttempts once the identifier has used up
	// its failures for the current window.
	Check(ctx context.Context, identifier string) error
	RecordFailure(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}

// Config defines the sliding window.
type Config struct {
	KeyPrefix string
	Limit     int
	Window    time.Duration
}

// RedisLimiter keeps one sorted set of failure timestamps per identifier.
type RedisLimiter struct {
	client *redis.Client
	cfg    Config
	now    func() time.Time
}

// NewRedisLimiter constructs a limiter using the provided client and config.
func NewRedisLimiter(client *redis.Client, cfg Config) (*RedisLimiter, error) {
	if cfg.Limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	if cfg.Window <= 0 {
		return nil, errors.New("window must be positive")
	}
	return &RedisLimiter{client: client, cfg: cfg, now: time.Now}, nil
}

func (l *RedisLimiter) Check(ctx context.Context, identifier string) error {
	key := l.key(identifier)
	ref := l.now()
	min := fmt.Sprintf("%f", float64(ref.Add(-l.cfg.Window).UnixNano()))
	max := fmt.Sprintf("%f", float64(ref.UnixNano()))

	if err := l.client.ZRemRangeByScore(ctx, key, "-inf", "("+min).Err(); err != nil {
		return fmt.Errorf("redis zremrangebyscore: %w", err)
	}

	count, err := l.client.ZCount(ctx, key, min, max).Result()
	if err != nil {
		return fmt.Errorf("redis zcount: %w", err)
	}
	if int(count) >= l.cfg.Limit {
		return common.ErrTooManyAttempts
	}
	return nil
}

func (l *RedisLimiter) RecordFailure(ctx context.Context, identifier string) error {
	key := l.key(identifier)
	at := l.now()
	member := redis.Z{Score: float64(at.UnixNano()), Member: at.UnixNano()}

	if err := l.client.ZAdd(ctx, key, member).Err(); err != nil {
		return fmt.Errorf("redis zadd: %w", err)
	}
	if err := l.client.Expire(ctx, key, l.cfg.Window).Err(); err != nil {
		return fmt.Errorf("redis expire: %w", err)
	}
	return nil
}

func (l *RedisLimiter) Reset(ctx context.Context, identifier string) error {
	if err := l.client.Del(ctx, l.key(identifier)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (l *RedisLimiter) key(identifier string) string {
	if l.cfg.KeyPrefix == "" {
		return identifier
	}
	return fmt.Sprintf("%s:%s", l.cfg.KeyPrefix, identifier)
}

// Noop never limits. It is used when no Redis address is configured.
type Noop struct{}

func (Noop) Check(context.Context, string) error         { return nil }
func (Noop) RecordFailure(context.Context, string) error { return nil }
func (Noop) Reset(context.Context, string) error         { return nil }

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

var (
	_ Limiter = (*RedisLimiter)(nil)
	_ Limiter = Noop{}
)
