package ports

import "go.trai.ch/kiln/internal/core/domain"

// ConfigLoader reads the project manifest and the cargo configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadProject reads the manifest at manifestPath, or the first Cargo.toml
	// found walking up from cwd when manifestPath is empty.
	LoadProject(cwd, manifestPath string) (*domain.Project, error)

	// LoadCargoConfig reads the nearest .cargo/config.toml above cwd.
	// A missing file yields an empty config.
	LoadCargoConfig(cwd string) (*domain.CargoConfig, error)
}
