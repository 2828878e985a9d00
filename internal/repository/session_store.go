package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSessionStore maps opaque session tokens to user ids. Tokens expire
// server-side, so a lost token is revoked by waiting out the TTL.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, token string, userID int, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(token), userID, ttl).Err()
}

func (s *RedisSessionStore) ResolveSession(ctx context.Context, token string) (int, error) {
	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(val)
}

func sessionKey(token string) string {
	return "session:" + token
}
