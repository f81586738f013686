package credentials

import (
	"context"
	"fmt"

	apperrors "github.com/jrsteele09/pocket-auth-server/internal/errors"
	"github.com/redis/go-redis/v9"
)

var _ Repo = (*RedisRepo)(nil)

// RedisRepo keeps the credential in a Redis hash field.
type RedisRepo struct {
	client redis.Cmdable
	slot   Slot
}

type RedisRepoOption func(*RedisRepo)

// WithSlot changes the hash key and field the repo writes to.
func WithSlot(slot Slot) RedisRepoOption {
	return func(r *RedisRepo) {
		r.slot = slot
	}
}

func NewRedisRepo(client redis.Cmdable, opts ...RedisRepoOption) *RedisRepo {
	r := &RedisRepo{
		client: client,
		slot:   DefaultSlot,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Upsert writes the credential with a single HSET. Encoding failures are
// reported as ErrEncode and never reach the store.
func (r *RedisRepo) Upsert(ctx context.Context, credential *Credential) error {
	blob, err := Encode(credential)
	if err != nil {
		return err
	}

	if err := r.client.HSet(ctx, r.slot.Key, r.slot.Field, blob).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, apperrors.Wrapf(err, "hset %s %s", r.slot.Key, r.slot.Field))
	}
	return nil
}

func (r *RedisRepo) Get(ctx context.Context) (*Credential, error) {
	blob, err := r.client.HGet(ctx, r.slot.Key, r.slot.Field).Result()
	if apperrors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, apperrors.Wrapf(err, "hget %s %s", r.slot.Key, r.slot.Field))
	}
	return Decode(blob)
}

// Ping checks that the store is reachable.
func (r *RedisRepo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// NewRedisClient connects to the Redis instance at url. Client-side retries
// are disabled so every command is attempted exactly once.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.MaxRetries = -1

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrStoreUnavailable, opts.Addr, err)
	}
	return client, nil
}
