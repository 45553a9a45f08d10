package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// ToolchainInspector queries the active rustc.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainInspector interface {
	// Inspect returns the host triple, release, commit and sysroot of rustc.
	Inspect(ctx context.Context) (domain.Toolchain, error)

	// TargetList returns the builtin targets rustc knows about.
	TargetList(ctx context.Context) ([]string, error)
}
