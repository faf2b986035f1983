package ports

import (
	"context"

	"go.pindown.dev/pindown/internal/core/domain"
)

// PackageIndex answers release queries against a package index.
// Implementations are expected to be safe for concurrent use; the
// resolver fans out one query per package.
//
//go:generate mockgen -source=package_index.go -destination=mocks/mock_package_index.go -package=mocks
type PackageIndex interface {
	// Releases returns every published version of the package,
	// unordered. It returns domain.ErrPackageNotFound if the index has
	// no project with that name, and domain.ErrCacheMiss if the index
	// is offline and the package is not cached.
	Releases(ctx context.Context, name domain.PackageName) ([]domain.Version, error)
}
