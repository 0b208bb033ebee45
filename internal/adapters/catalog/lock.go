package catalog

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/zerr"

	"go.husk.sh/husk/internal/core/domain"
)

// FileLockStore implements ports.LockStore with pretty-printed JSON and
// atomic writes.
type FileLockStore struct{}

// NewLockStore creates a lockfile store.
func NewLockStore() *FileLockStore {
	return &FileLockStore{}
}

// Load reads the lockfile at path. A missing file is not an error: it
// returns (nil, nil) and the caller resolves from the catalog instead.
func (s *FileLockStore) Load(path string) (*domain.Lockfile, error) {
	//nolint:gosec // Path is derived from the manifest root.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrLockfileReadFailed.Error())
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockfileParseFailed.Error())
	}
	return &lock, nil
}

// Save writes lock to path atomically.
func (s *FileLockStore) Save(path string, lock *domain.Lockfile) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error())
	}
	data = append(data, '\n')

	if err := atomicWriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error())
	}
	return nil
}
