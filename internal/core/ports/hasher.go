package ports

import "go.pindown.dev/pindown/internal/core/domain"

// ManifestHasher fingerprints the dependency content of a manifest.
// Lockfiles store the fingerprint so staleness can be detected without
// re-resolving.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type ManifestHasher interface {
	// Hash computes a stable fingerprint of the manifest's
	// requirements. Comment and formatting edits do not change it.
	Hash(m *domain.Manifest) (string, error)
}
