package sysroot

import (
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// workspaceCorePatch replaces the crates.io facade that lets registry crates
// such as compiler_builtins depend on core.
const workspaceCorePatch = "rustc-std-workspace-core"

// syntheticManifest renders the Cargo.toml of a stage: a package named
// sysroot that depends on every crate of the stage with its features.
func syntheticManifest(stage []domain.Crate, src string, profile domain.Profile, cargoFeatures []string) ([]byte, error) {
	deps := make(map[string]any, len(stage))
	for _, c := range stage {
		dep := map[string]any{}
		switch c.Source {
		case domain.FromSource:
			dep[domain.FromSource] = filepath.Join(src, c.Location)
		default:
			dep[domain.FromRegistry] = c.Location
		}
		if len(c.Features) > 0 {
			dep["features"] = c.Features
		}
		deps[c.Name] = dep
	}

	manifest := map[string]any{
		"package": map[string]any{
			"name":    "sysroot",
			"version": "0.0.0",
			"edition": "2018",
		},
		"dependencies": deps,
		"patch": map[string]any{
			"crates-io": map[string]any{
				workspaceCorePatch: map[string]any{
					domain.FromSource: filepath.Join(src, workspaceCorePatch),
				},
			},
		},
	}
	if len(cargoFeatures) > 0 {
		manifest["cargo-features"] = cargoFeatures
	}
	if !profile.IsEmpty() {
		manifest["profile"] = map[string]any{"release": map[string]any(profile)}
	}

	data, err := toml.Marshal(manifest)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	return data, nil
}
