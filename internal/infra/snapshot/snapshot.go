// Package snapshot persists catalog state as JSON in a file or a redis key.
package snapshot

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/osa030/spotifum/internal/app/catalog"
	"github.com/osa030/spotifum/internal/infra/config"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Store saves and loads catalog state.
type Store interface {
	Load(ctx context.Context) (catalog.State, error)
	Save(ctx context.Context, s catalog.State) error
	Close() error
	// Location describes where the snapshot lives, for logs.
	Location() string
}

// Open creates the store selected by configuration.
func Open(cfg config.SnapshotConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Path), nil
	case config.BackendRedis:
		return NewRedisStoreFromURL(cfg.RedisURL, cfg.RedisKey)
	default:
		return nil, errors.Newf("unsupported snapshot backend: %s", cfg.Backend)
	}
}

func encode(s catalog.State) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode snapshot")
	}
	return data, nil
}

func decode(data []byte) (catalog.State, error) {
	var s catalog.State
	if err := json.Unmarshal(data, &s); err != nil {
		return catalog.State{}, errors.Wrap(err, "failed to decode snapshot")
	}
	return s, nil
}
