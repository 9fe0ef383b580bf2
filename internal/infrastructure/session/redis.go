package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "hillary:web:session:"
	callTimeout = 2 * time.Second
)

// RedisStore sesiones en Redis como JSON con TTL.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore conecta a redisURL (redis://...). Con db > 0 se usa esa base en lugar
// de la indicada en la URL; con 0 se respeta la URL.
func NewRedisStore(redisURL string, db int) (*RedisStore, error) {
	opts, err := redisOptions(redisURL, db)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func redisOptions(redisURL string, db int) (*redis.Options, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL es requerido")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if db > 0 {
		opts.DB = db
	}
	return opts, nil
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	raw, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get sesión: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decodificar sesión: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, s *Session, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("codificar sesión: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	if err := r.rdb.Set(ctx, sessionKey(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set sesión: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

// Open elige Redis si hay URL; si no, memoria.
func Open(redisURL string, db int) (Store, error) {
	if redisURL == "" {
		return NewMemoryStore(), nil
	}
	return NewRedisStore(redisURL, db)
}
