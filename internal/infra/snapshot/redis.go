package snapshot

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/app/catalog"
)

// RedisStore keeps the snapshot under one redis key.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore creates a RedisStore using an existing client.
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	return &RedisStore{rdb: rdb, key: key}
}

// NewRedisStoreFromURL connects to the redis server at url.
func NewRedisStoreFromURL(url, key string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redis url")
	}
	return NewRedisStore(redis.NewClient(opt), key), nil
}

// Load reads the snapshot key.
func (r *RedisStore) Load(ctx context.Context) (catalog.State, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return catalog.State{}, errors.Mark(errors.Newf("no snapshot at key %s", r.key), ErrNoSnapshot)
		}
		return catalog.State{}, errors.Wrapf(err, "failed to get snapshot key %s", r.key)
	}
	return decode(data)
}

// Save overwrites the snapshot key.
func (r *RedisStore) Save(ctx context.Context, s catalog.State) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to set snapshot key %s", r.key)
	}
	zlog.Debug().Msgf("snapshot saved: key=%s bytes=%d", r.key, len(data))
	return nil
}

// Close closes the redis client.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

// Location returns the snapshot key.
func (r *RedisStore) Location() string {
	return "redis:" + r.key
}
