package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/examhall/examhall-backend/internal/config"
)

// RedisSessionStore keeps active session JTIs in Redis with the token TTL,
// so sessions expire together with the tokens they back.
type RedisSessionStore struct {
	rdb *redis.Client
}

// NewRedisSessionStore creates a new RedisSessionStore.
func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Put(ctx context.Context, studentID, jti string, ttl time.Duration) error {
	return s.rdb.Set(ctx, config.CacheKey.StudentSessionKey(studentID), jti, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, studentID string) (string, error) {
	jti, err := s.rdb.Get(ctx, config.CacheKey.StudentSessionKey(studentID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", err
	}
	return jti, nil
}

func (s *RedisSessionStore) Del(ctx context.Context, studentID string) error {
	return s.rdb.Del(ctx, config.CacheKey.StudentSessionKey(studentID)).Err()
}
