package redis

// Package redis provides Redis-based adapters for persisted sessions.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/cipms/internal/ports"
)

var _ ports.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is a Redis-backed ports.KeyValueStore.
// Keys are namespaced with a prefix so several deployments can share one Redis.
type KeyValueStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// KeyValueStoreOptions configures NewKeyValueStore.
type KeyValueStoreOptions struct {
	Prefix string
	// TTL expires persisted values after this long. Zero keeps them until deleted.
	TTL time.Duration
}

// NewKeyValueStore creates a Redis key-value store.
func NewKeyValueStore(client redis.UniversalClient, opts KeyValueStoreOptions) *KeyValueStore {
	return &KeyValueStore{
		client: client,
		prefix: opts.Prefix,
		ttl:    opts.TTL,
	}
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ports.ErrKeyNotFound
	}
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *KeyValueStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
