package rustc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain inspector Graft node.
const NodeID graft.ID = "adapter.rustc"

func init() {
	graft.Register(graft.Node[ports.ToolchainInspector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ToolchainInspector, error) {
			return NewInspector(), nil
		},
	})
}
