package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// Driver runs cargo.
//
//go:generate mockgen -source=driver.go -destination=mocks/mock_driver.go -package=mocks
type Driver interface {
	// BuildCrate compiles one sysroot crate in a scratch workspace.
	// A non-zero exit of cargo is returned as an error carrying the exit code.
	BuildCrate(ctx context.Context, job domain.CrateJob) error

	// Run executes cargo with args and extra environment, attached to the
	// terminal. It returns cargo's exit code.
	Run(ctx context.Context, args []string, env []string) (int, error)
}
