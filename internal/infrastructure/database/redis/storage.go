// internal/infrastructure/database/redis/storage.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/pkg/state"
)

// Storage is a state.Storage backed by Redis string keys. Every write
// refreshes the key's TTL, so state of abandoned sessions expires on its own.
type Storage struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStorage creates a Redis storage. A zero ttl keeps keys forever.
func NewStorage(rdb *redis.Client, ttl time.Duration) *Storage {
	return &Storage{rdb: rdb, ttl: ttl}
}

// Load returns the value stored under key
func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return data, nil
}

// Save stores data under key
func (s *Storage) Save(ctx context.Context, key string, data []byte) error {
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
