// Package config reads the project manifest and the cargo configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// metadataKey is the table below [package.metadata] holding kiln settings.
const metadataKey = "kiln"

// cargoConfigNames are tried in order inside every .cargo directory.
var cargoConfigNames = []string{"config.toml", "config"}

// Loader implements ports.ConfigLoader using TOML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// LoadProject reads the package manifest and, if the package belongs to a
// workspace, the workspace manifest. Profiles and cargo-features come from
// the workspace root since cargo ignores them anywhere else.
func (l *Loader) LoadProject(cwd, manifestPath string) (*domain.Project, error) {
	if manifestPath == "" {
		found, err := findUp(cwd, domain.ManifestFileName)
		if err != nil {
			return nil, err
		}
		manifestPath = found
	} else if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(cwd, manifestPath)
	}

	pkg, err := readTable(manifestPath)
	if err != nil {
		return nil, err
	}

	cfg, err := l.parseKilnConfig(manifestPath, pkg)
	if err != nil {
		return nil, err
	}

	rootPath, root := manifestPath, pkg
	if ws, wsTable := findWorkspace(manifestPath, pkg); ws != "" {
		rootPath, root = ws, wsTable
	}

	profile, err := parseProfile(rootPath, root)
	if err != nil {
		return nil, err
	}

	features, err := stringArray(rootPath, root, "cargo-features")
	if err != nil {
		return nil, err
	}

	return &domain.Project{
		Root:          filepath.Dir(rootPath),
		ManifestPath:  manifestPath,
		Config:        cfg,
		Profile:       profile,
		CargoFeatures: features,
	}, nil
}

// LoadCargoConfig reads the nearest .cargo/config.toml (or legacy
// .cargo/config) walking up from cwd.
func (l *Loader) LoadCargoConfig(cwd string) (*domain.CargoConfig, error) {
	path := findCargoConfig(cwd)
	if path == "" {
		return &domain.CargoConfig{}, nil
	}

	table, err := readTable(path)
	if err != nil {
		return nil, err
	}

	cc := &domain.CargoConfig{Path: path}

	build, err := subTable(path, table, "build")
	if err != nil {
		return nil, err
	}

	if flags, err := stringArray(path, build, "rustflags", "build"); err != nil {
		return nil, err
	} else if flags != nil {
		cc.BuildRustflags = domain.Flags(flags)
	}

	target, err := l.parseBuildTarget(path, build)
	if err != nil {
		return nil, err
	}
	cc.BuildTarget = target

	targets, err := subTable(path, table, "target")
	if err != nil {
		return nil, err
	}
	for triple := range targets {
		section, err := subTable(path, targets, triple, "target")
		if err != nil {
			return nil, err
		}
		flags, err := stringArray(path, section, "rustflags", "target", triple)
		if err != nil {
			return nil, err
		}
		if flags == nil {
			continue
		}
		if cc.TargetRustflags == nil {
			cc.TargetRustflags = make(map[string]domain.Flags)
		}
		cc.TargetRustflags[triple] = domain.Flags(flags)
	}

	return cc, nil
}

// parseBuildTarget resolves build.target. A descriptor path is relative to
// the directory holding .cargo and must exist.
func (l *Loader) parseBuildTarget(path string, build map[string]any) (string, error) {
	raw, ok := build["target"]
	if !ok {
		return "", nil
	}
	target, ok := raw.(string)
	if !ok {
		return "", invalidValue(path, "build.target must be a string")
	}
	if !strings.HasSuffix(target, domain.DescriptorExt) {
		return target, nil
	}

	base := filepath.Dir(filepath.Dir(path))
	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(base, target)
	}
	canonical, err := filepath.EvalSymlinks(resolved)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "target JSON file "+resolved+" does not exist"), "path", path)
	}
	abs, err := filepath.Abs(canonical)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve target JSON file"), "path", canonical)
	}
	return abs, nil
}

func (l *Loader) parseKilnConfig(path string, manifest map[string]any) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	pkg, err := subTable(path, manifest, "package")
	if err != nil {
		return cfg, err
	}
	meta, err := subTable(path, pkg, "metadata", "package")
	if err != nil {
		return cfg, err
	}
	kiln, err := subTable(path, meta, metadataKey, "package", "metadata")
	if err != nil {
		return cfg, err
	}

	section := "[package.metadata." + metadataKey + "]"
	keys := make([]string, 0, len(kiln))
	for k := range kiln {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := kiln[k]
		switch k {
		case "memcpy":
			b, ok := v.(bool)
			if !ok {
				return cfg, invalidValue(path, section+" memcpy must be a boolean")
			}
			cfg.Memcpy = b
		case "panic_immediate_abort":
			b, ok := v.(bool)
			if !ok {
				return cfg, invalidValue(path, section+" panic_immediate_abort must be a boolean")
			}
			cfg.PanicImmediateAbort = b
		case "sysroot_path":
			s, ok := v.(string)
			if !ok {
				return cfg, invalidValue(path, section+" sysroot_path must be a string")
			}
			cfg.SysrootPath = s
		default:
			if l.Logger != nil {
				l.Logger.Warn(fmt.Sprintf("unused key %q in %s of %s", k, section, path))
			}
		}
	}

	return cfg, nil
}

func parseProfile(path string, manifest map[string]any) (domain.Profile, error) {
	profiles, err := subTable(path, manifest, "profile")
	if err != nil {
		return nil, err
	}
	release, err := subTable(path, profiles, "release", "profile")
	if err != nil {
		return nil, err
	}
	return domain.NewProfile(release), nil
}

// findWorkspace returns the manifest of the workspace the package belongs
// to, or "" when the package is its own root.
func findWorkspace(manifestPath string, manifest map[string]any) (string, map[string]any) {
	if _, ok := manifest["workspace"]; ok {
		return "", nil
	}

	dir := filepath.Dir(filepath.Dir(manifestPath))
	for {
		candidate := filepath.Join(dir, domain.ManifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			table, err := readTable(candidate)
			if err == nil {
				if _, ok := table["workspace"]; ok {
					return candidate, table
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func findUp(cwd, name string) (string, error) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", zerr.With(domain.ErrManifestNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

func findCargoConfig(cwd string) string {
	dir := cwd
	for {
		for _, name := range cargoConfigNames {
			candidate := filepath.Join(dir, ".cargo", name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func readTable(path string) (map[string]any, error) {
	// #nosec G304 -- path is discovered by the loader
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	table := map[string]any{}
	if err := toml.Unmarshal(data, &table); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			err = zerr.With(zerr.With(zerr.Wrap(err, fmt.Sprintf("%s:%d:%d", path, row, col)), "line", row), "column", col)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return table, nil
}
