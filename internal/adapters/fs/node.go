package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/libref/internal/core/domain"
)

// ResolverNodeID is the unique identifier for the path resolver Graft node.
const ResolverNodeID graft.ID = "adapter.fs.resolver"

func init() {
	graft.Register(graft.Node[domain.PathResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (domain.PathResolver, error) {
			return NewResolver(), nil
		},
	})
}
