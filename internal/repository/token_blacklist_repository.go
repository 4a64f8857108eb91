package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const tokenBlacklistPrefix = "auth:revoked:"

// TokenBlacklistRepository 记录已注销的 JWT id，TTL 与 token 剩余有效期一致
type TokenBlacklistRepository struct {
	Redis *redis.Client
}

func NewTokenBlacklistRepository(rdb *redis.Client) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{Redis: rdb}
}

func (r *TokenBlacklistRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.Redis.Set(ctx, tokenBlacklistPrefix+tokenID, 1, ttl).Err()
}

func (r *TokenBlacklistRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.Redis.Get(ctx, tokenBlacklistPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
