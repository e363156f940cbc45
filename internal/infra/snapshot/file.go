package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/spotifum/internal/app/catalog"
)

// FileStore keeps the snapshot in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot file.
func (f *FileStore) Load(_ context.Context) (catalog.State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return catalog.State{}, errors.Mark(errors.Newf("no snapshot at %s", f.path), ErrNoSnapshot)
		}
		return catalog.State{}, errors.Wrapf(err, "failed to read snapshot %s", f.path)
	}
	return decode(data)
}

// Save writes the snapshot to a temporary file and renames it into place, so
// readers never see a partial snapshot.
func (f *FileStore) Save(_ context.Context, s catalog.State) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create snapshot directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary snapshot")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write snapshot")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to sync snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close snapshot")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrapf(err, "failed to move snapshot into %s", f.path)
	}

	zlog.Debug().Msgf("snapshot saved: path=%s bytes=%d", f.path, len(data))
	return nil
}

// Close is a no-op.
func (f *FileStore) Close() error {
	return nil
}

// Location returns the snapshot path.
func (f *FileStore) Location() string {
	return "file:" + f.path
}
