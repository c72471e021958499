package repository

import (
	"context"
	"errors"
	"time"

	redisapp "portfolio/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

type RedisTokenRepo struct {
	Client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

func (r *RedisTokenRepo) SaveRefreshToken(ctx context.Context, adminID, token string, exp time.Duration) error {
	return r.Client.Set(ctx, refreshTokenKey(adminID, token), "1", exp).Err()
}

func (r *RedisTokenRepo) GetRefreshToken(ctx context.Context, adminID, token string) (bool, error) {
	val, err := r.Client.Get(ctx, refreshTokenKey(adminID, token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

func (r *RedisTokenRepo) DeleteRefreshToken(ctx context.Context, adminID, token string) error {
	return r.Client.Del(ctx, refreshTokenKey(adminID, token)).Err()
}

// DeleteAllAdminTokens revokes every refresh token of an admin.
func (r *RedisTokenRepo) DeleteAllAdminTokens(ctx context.Context, adminID string) error {
	keys, err := r.Client.Keys(ctx, refreshTokenKey(adminID, "*")).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.Client.Del(ctx, keys...).Err()
}

func refreshTokenKey(adminID, token string) string {
	return "refresh:" + adminID + ":" + token
}
