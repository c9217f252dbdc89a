package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Redis is a SchemaCache backed by Redis. Content types are stored as JSON
// with a TTL.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a Redis cache
type RedisOption func(*Redis)

// WithPrefix overrides PrefixContentType
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithTTL overrides TTLDefault
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// NewRedis creates a Redis-backed schema cache
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: PrefixContentType, ttl: TTLDefault}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRedisFromURL parses a redis:// URL and creates the cache
func NewRedisFromURL(url string, opts ...RedisOption) (*Redis, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewRedis(redis.NewClient(options), opts...), nil
}

// Ping checks the connection
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(ctx context.Context, id uuid.UUID) (*simplecms.ContentType, bool, error) {
	data, err := r.client.Get(ctx, contentTypeKey(r.prefix, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	ct, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return ct, true, nil
}

func (r *Redis) Set(ctx context.Context, ct *simplecms.ContentType) error {
	data, err := encode(ct)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, contentTypeKey(r.prefix, ct.ID), data, r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, contentTypeKey(r.prefix, id)).Err()
}
