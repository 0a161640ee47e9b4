package snapshot

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore stores each blob as a plain Redis string under prefix+key.
type RedisBlobStore struct {
	client *redis.Client
	prefix string
}

func NewRedisBlobStore(client *redis.Client, prefix string) *RedisBlobStore {
	return &RedisBlobStore{client: client, prefix: prefix}
}

func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *RedisBlobStore) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

// Client exposes the underlying connection so other Redis users can share it.
func (s *RedisBlobStore) Client() *redis.Client {
	return s.client
}
