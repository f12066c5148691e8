package oauthstate

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed flow-state store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "oauthstate:",
	}
}

func (r *RedisStore) key(state string) string {
	return r.prefix + state
}

func (r *RedisStore) Save(ctx context.Context, state, codeVerifier string) error {
	if state == "" || codeVerifier == "" {
		return fmt.Errorf("oauthstate: missing state or verifier")
	}
	return r.client.Set(ctx, r.key(state), codeVerifier, TTL).Err()
}

func (r *RedisStore) Consume(ctx context.Context, state string) (string, error) {
	val, err := r.client.GetDel(ctx, r.key(state)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
