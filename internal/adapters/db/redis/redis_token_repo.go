package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshPrefix = "rt:"
	accessPrefix  = "at:"
)

type RedisTokenRepo struct {
	client *redis.Client
}

func NewRedisTokenRepo(client *redis.Client) *RedisTokenRepo {
	return &RedisTokenRepo{
		client: client,
	}
}

func (r *RedisTokenRepo) Store(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, refreshPrefix+jti, "0", safeTTL(exp)).Err()
}

func (r *RedisTokenRepo) Revoke(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, refreshPrefix+jti, "1", safeTTL(exp)).Err()
}

func (r *RedisTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	val, err := r.client.Get(ctx, refreshPrefix+jti).Result()
	switch {
	case err == redis.Nil:
		return true, nil // нет записи Store — refresh не признаём
	case err != nil:
		return true, err // считаем отозванным, плюс ошибка вверх
	default:
		return val == "1", nil // "1" – отозван
	}
}

func (r *RedisTokenRepo) RevokeAccess(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, accessPrefix+jti, "1", safeTTL(exp)).Err()
}

func (r *RedisTokenRepo) IsAccessRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, accessPrefix+jti).Result()
	return n > 0, err
}

func safeTTL(exp time.Time) time.Duration {
	ttl := time.Until(exp)
	if ttl <= 0 {
		// задаём минимальный TTL, чтобы ключ всё-таки исчез
		return time.Hour
	}
	return ttl
}
