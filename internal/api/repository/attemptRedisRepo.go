package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptCounter tracks failed confirmation-code exchanges per username so
// a leaked username cannot be brute-forced against a standing code.
type AttemptCounter interface {
	RecordFailure(ctx context.Context, username string) (int64, error)
	Failures(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}

type AttemptRedisRepo struct {
	client *redis.Client
	window time.Duration
}

// NewAttemptRedisRepo connects to redis and verifies the connection.
func NewAttemptRedisRepo(addr, password string, window time.Duration) (*AttemptRedisRepo, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &AttemptRedisRepo{client: rdb, window: window}, nil
}

func (r *AttemptRedisRepo) key(username string) string {
	return fmt.Sprintf("auth:code_attempts:%s", username)
}

// RecordFailure increments the failure counter and returns the new count.
// The window TTL starts on the first failure.
func (r *AttemptRedisRepo) RecordFailure(ctx context.Context, username string) (int64, error) {
	if r == nil || r.client == nil {
		// No-op for testing/mock mode
		return 0, nil
	}
	key := r.key(username)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (r *AttemptRedisRepo) Failures(ctx context.Context, username string) (int64, error) {
	if r == nil || r.client == nil {
		return 0, nil
	}
	count, err := r.client.Get(ctx, r.key(username)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AttemptRedisRepo) Reset(ctx context.Context, username string) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Del(ctx, r.key(username)).Err()
}
