package registry

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/libref/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libref/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libref/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libref/internal/core/domain"
	"go.trai.ch/libref/internal/core/ports"
)

// NodeID is the unique identifier for the registry Graft node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Registry, error) {
			resolver, err := graft.Dep[domain.PathResolver](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(resolver, log, tracer), nil
		},
	})
}
