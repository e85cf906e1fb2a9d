// Package cache is the local tier behind the remote stores: JSON snapshots of
// the last successful reads and queues of writes that still have to reach
// the remote store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrMiss is returned when a key or queue holds nothing.
var ErrMiss = errors.New("cache miss")

// ConnectRedis creates a client and verifies the connection.
func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info().Str("addr", addr).Msg("Connected to Redis")
	return rdb, nil
}

type Store struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore namespaces every key under prefix. A zero ttl keeps snapshots
// until they are overwritten.
func NewStore(rdb *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *Store) key(parts ...string) string {
	k := s.prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

func (s *Store) SaveSnapshot(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, s.key("snapshot", key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *Store) LoadSnapshot(ctx context.Context, key string, dst any) error {
	data, err := s.rdb.Get(ctx, s.key("snapshot", key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key("snapshot", key)).Err()
}

// Enqueue appends v to the tail of a pending queue.
func (s *Store) Enqueue(ctx context.Context, queue string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal pending item: %w", err)
	}
	if err := s.rdb.RPush(ctx, s.key("pending", queue), data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue pending item: %w", err)
	}
	return nil
}

// Head decodes the oldest pending item without removing it.
func (s *Store) Head(ctx context.Context, queue string, dst any) error {
	data, err := s.rdb.LIndex(ctx, s.key("pending", queue), 0).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read pending item: %w", err)
	}
	return json.Unmarshal(data, dst)
}

// Dequeue drops the oldest pending item. Call it only after Head's item has
// been written remotely.
func (s *Store) Dequeue(ctx context.Context, queue string) error {
	err := s.rdb.LPop(ctx, s.key("pending", queue)).Err()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	return err
}

func (s *Store) Len(ctx context.Context, queue string) (int64, error) {
	return s.rdb.LLen(ctx, s.key("pending", queue)).Result()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
