package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisTokenSlot stores the token in Redis, letting several consoles share a session.
type RedisTokenSlot struct {
	redis *Redis
	key   string
}

// NewRedisTokenSlot wraps r; key is the full Redis key.
func NewRedisTokenSlot(r *Redis, key string) *RedisTokenSlot {
	return &RedisTokenSlot{redis: r, key: key}
}

func (s *RedisTokenSlot) Load(ctx context.Context) (string, error) {
	token, err := s.redis.Client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (s *RedisTokenSlot) Save(ctx context.Context, token string) error {
	return s.redis.Client.Set(ctx, s.key, token, 0).Err()
}

func (s *RedisTokenSlot) Clear(ctx context.Context) error {
	return s.redis.Client.Del(ctx, s.key).Err()
}

func (s *RedisTokenSlot) Close() error {
	s.redis.Close()
	return nil
}
