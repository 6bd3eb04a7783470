package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis persiste as chaves sem TTL; preferências e histórico não expiram
type Redis struct{ R *redis.Client }

func NewRedis(r *redis.Client) *Redis { return &Redis{R: r} }

func (s *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := s.R.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Redis) Set(ctx context.Context, key, value string) error {
	return s.R.Set(ctx, key, value, 0).Err()
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	return s.R.Del(ctx, key).Err()
}

func (s *Redis) Ping(ctx context.Context) error {
	return s.R.Ping(ctx).Err()
}
