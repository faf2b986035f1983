// Package fs provides the content fingerprinting adapter.
package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports"
)

var _ ports.ManifestHasher = (*Hasher)(nil)

// Hasher fingerprints manifest dependency content with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash computes "xxh64:" plus 16 hex digits over the manifest's
// canonical requirement lines. Comment, layout, and ordering edits
// leave the fingerprint unchanged; constraint edits do not.
func (h *Hasher) Hash(m *domain.Manifest) (string, error) {
	hasher := xxhash.New()
	_, _ = hasher.Write(m.CanonicalBytes())

	return fmt.Sprintf("xxh64:%016x", hasher.Sum64()), nil
}
