// Package redisstore provides a Redis-backed implementation of the storage.Store interface.
//
// Records are stored as JSON strings:
//
//	<prefix>:registry        identities and active group codes
//	<prefix>:group:<CODE>    one record per group
//
// Read-modify-write operations use WATCH/MULTI optimistic transactions.
package redisstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/storage"
)

const (
	defaultPrefix = "godutch"
	maxTxRetries  = 50
)

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Ensure RedisStore implements storage.Store
var _ storage.Store = (*RedisStore)(nil)

// ErrTooManyRetries is returned when an optimistic transaction keeps conflicting.
var ErrTooManyRetries = errors.New("redis transaction retries exhausted")

// Config holds the connection options for the store.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // key prefix, defaults to "godutch"
}

// RedisStore implements storage.Store on a Redis server.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// New connects to Redis and verifies the connection.
func New(cfg Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewFromClient(client, cfg.Prefix), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) registryKey() string {
	return s.prefix + ":registry"
}

func (s *RedisStore) groupKey(code string) string {
	return fmt.Sprintf("%s:group:%s", s.prefix, code)
}

// LoadRegistry reads the registry record.
func (s *RedisStore) LoadRegistry(ctx context.Context) (*models.Registry, error) {
	return s.readRegistry(ctx, s.client)
}

// UpdateRegistry rewrites the registry record in an optimistic transaction.
func (s *RedisStore) UpdateRegistry(ctx context.Context, fn func(*models.Registry) error) error {
	key := s.registryKey()
	return s.watch(ctx, key, func(tx *redis.Tx) error {
		reg, err := s.readRegistry(ctx, tx)
		if err != nil {
			return err
		}
		if err := fn(reg); err != nil {
			return err
		}
		return s.write(ctx, tx, key, reg)
	})
}

// CreateGroup stores a new group record unless the code is taken.
func (s *RedisStore) CreateGroup(ctx context.Context, group *models.Group) error {
	b, err := json.Marshal(group)
	if err != nil {
		return fmt.Errorf("failed to encode group: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.groupKey(group.Code), b, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create group %s: %w", group.Code, err)
	}
	if !ok {
		return fmt.Errorf("%w: group %s", storage.ErrExists, group.Code)
	}
	return nil
}

// GetGroup reads a group record.
func (s *RedisStore) GetGroup(ctx context.Context, code string) (*models.Group, error) {
	return s.readGroup(ctx, s.client, code)
}

// UpdateGroup rewrites a group record in an optimistic transaction.
func (s *RedisStore) UpdateGroup(ctx context.Context, code string, fn func(*models.Group) error) error {
	key := s.groupKey(code)
	return s.watch(ctx, key, func(tx *redis.Tx) error {
		group, err := s.readGroup(ctx, tx, code)
		if err != nil {
			return err
		}
		if err := fn(group); err != nil {
			return err
		}
		return s.write(ctx, tx, key, group)
	})
}

// DeleteGroup removes a group record.
func (s *RedisStore) DeleteGroup(ctx context.Context, code string) error {
	n, err := s.client.Del(ctx, s.groupKey(code)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete group %s: %w", code, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: group %s", storage.ErrNotFound, code)
	}
	return nil
}

// watch runs fn under WATCH key, retrying when another client changed the key.
func (s *RedisStore) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for range maxTxRetries {
		err := s.client.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: %s", ErrTooManyRetries, key)
}

// write queues a SET of v in the watched transaction.
func (s *RedisStore) write(ctx context.Context, tx *redis.Tx, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, b, 0)
		return nil
	})
	return err
}

func (s *RedisStore) readRegistry(ctx context.Context, c getter) (*models.Registry, error) {
	reg := models.NewRegistry()
	found, err := s.read(ctx, c, s.registryKey(), reg)
	if err != nil {
		return nil, err
	}
	if found {
		reg.Normalize()
	}
	return reg, nil
}

func (s *RedisStore) readGroup(ctx context.Context, c getter, code string) (*models.Group, error) {
	group := &models.Group{}
	found, err := s.read(ctx, c, s.groupKey(code), group)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: group %s", storage.ErrNotFound, code)
	}
	return group, nil
}

// read strictly decodes the JSON value at key into out.
func (s *RedisStore) read(ctx context.Context, c getter, key string, out any) (bool, error) {
	b, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return true, fmt.Errorf("%w: %s: %v", storage.ErrMalformed, key, err)
	}
	return true, nil
}
