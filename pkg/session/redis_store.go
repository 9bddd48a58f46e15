package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "aiq:sessions:"

// RedisStore persists sessions in Redis under key "aiq:sessions:{id}",
// refreshing the TTL on every read and write, per §4.4/§6. This backend
// has no analogue in the teacher repo — no example in the retrieval pack
// talks to Redis — but it is the natural fit for a TTL-bearing session
// row shared across replicas, which an in-memory map cannot provide.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a client for redisURL (a redis:// URL) and returns
// a Store backed by it.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (s *RedisStore) key(id string) string { return redisKeyPrefix + id }

func (s *RedisStore) Create(firstModuleID *string, lang string) (*Session, error) {
	sess := New(firstModuleID, lang)
	if err := s.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Get(id string) (*Session, error) {
	ctx := context.Background()

	data, err := s.client.GetEx(ctx, s.key(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis session load: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("redis session decode: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Save(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis session encode: %w", err)
	}

	ctx := context.Background()
	if err := s.client.Set(ctx, s.key(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis session save: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
