package ports

import "go.pindown.dev/pindown/internal/core/domain"

// LockStore persists lockfiles.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Read loads the lockfile at path. It returns
	// domain.ErrLockNotFound if no lockfile exists there.
	Read(path string) (domain.Lockfile, error)

	// Write atomically replaces the lockfile at path.
	Write(path string, lock domain.Lockfile) error

	// Exists reports whether a lockfile is present at path.
	Exists(path string) bool
}
