package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.pindown.dev/pindown/internal/core/ports"
)

// HasherNodeID is the unique identifier for the manifest hasher Graft node.
const HasherNodeID graft.ID = "adapter.fs.hasher"

func init() {
	graft.Register(graft.Node[ports.ManifestHasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestHasher, error) {
			return NewHasher(), nil
		},
	})
}
