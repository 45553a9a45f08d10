package sysroot

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/cargo"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the sysroot builder Graft node.
const NodeID graft.ID = "engine.sysroot"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.HasherNodeID,
			cargo.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			hasher, err := graft.Dep[ports.KeyHasher](ctx)
			if err != nil {
				return nil, err
			}

			driver, err := graft.Dep[ports.Driver](ctx)
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

			return NewBuilder(hasher, driver, log, tracer), nil
		},
	})
}
