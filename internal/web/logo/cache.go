package logo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProbeCache guarda o resultado das sondagens por caminho
type ProbeCache interface {
	GetExists(ctx context.Context, path string) (exists, ok bool, err error)
	SetExists(ctx context.Context, path string, exists bool, ttl time.Duration) error
}

// RedisProbeCache mantém "logo:exists:{path}" => "1" | "0" com TTL
type RedisProbeCache struct{ R *redis.Client }

func NewRedisProbeCache(r *redis.Client) *RedisProbeCache { return &RedisProbeCache{R: r} }

func keyProbe(path string) string { return "logo:exists:" + path }

func (c *RedisProbeCache) GetExists(ctx context.Context, path string) (bool, bool, error) {
	v, err := c.R.Get(ctx, keyProbe(path)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return v == "1", true, nil
}

func (c *RedisProbeCache) SetExists(ctx context.Context, path string, exists bool, ttl time.Duration) error {
	v := "0"
	if exists {
		v = "1"
	}
	return c.R.Set(ctx, keyProbe(path), v, ttl).Err()
}

// CachedProber consulta o cache antes de sondar; erros de sondagem não são cacheados
type CachedProber struct {
	Next  Prober
	Cache ProbeCache
	TTL   time.Duration
}

func (p *CachedProber) Exists(ctx context.Context, path string) (bool, error) {
	if exists, ok, err := p.Cache.GetExists(ctx, path); err == nil && ok {
		return exists, nil
	}

	exists, err := p.Next.Exists(ctx, path)
	if err != nil {
		return false, err
	}
	_ = p.Cache.SetExists(ctx, path, exists, p.TTL) // cache é best-effort
	return exists, nil
}
