package repository

import (
	"context"
	"errors"
	"time"

	redisapp "movie_catalog/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// RedisTokenRepo keeps the active refresh-token set in Redis. Entries carry a
// TTL equal to the refresh-token lifetime, so expired tokens age out of the
// set on their own.
type RedisTokenRepo struct {
	Client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

func (r *RedisTokenRepo) SaveRefreshToken(ctx context.Context, token string, exp time.Duration) error {
	return r.Client.Set(ctx, refreshTokenKey(token), "1", exp).Err()
}

func (r *RedisTokenRepo) HasRefreshToken(ctx context.Context, token string) (bool, error) {
	_, err := r.Client.Get(ctx, refreshTokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// TakeRefreshToken uses GETDEL, so concurrent takes of the same token resolve
// in Redis: exactly one caller sees the entry.
func (r *RedisTokenRepo) TakeRefreshToken(ctx context.Context, token string) (bool, error) {
	_, err := r.Client.GetDel(ctx, refreshTokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func refreshTokenKey(token string) string {
	return "refresh:" + token
}
