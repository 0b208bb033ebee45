package ports

import "go.husk.sh/husk/internal/core/domain"

// LockStore persists pinned resolutions.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Load reads the lockfile at path. A missing file is reported as
	// (nil, nil) so callers can treat absence as a plain resolve.
	Load(path string) (*domain.Lockfile, error)

	// Save writes the lockfile to path atomically.
	Save(path string, lock *domain.Lockfile) error
}
