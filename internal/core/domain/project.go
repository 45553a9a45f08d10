package domain

import (
	"os"
	"strings"
)

// Project is what kiln reads from the project manifest.
type Project struct {
	// Root is the directory holding the manifest.
	Root          string
	ManifestPath  string
	Config        Config
	Profile       Profile
	CargoFeatures []string
}

// CargoConfig is what kiln reads from .cargo/config.toml.
type CargoConfig struct {
	// Path of the file the values came from, "" when none was found.
	Path            string
	BuildTarget     string
	BuildRustflags  Flags
	TargetRustflags map[string]Flags
}

// ResolveFlags picks the rustflags for triple. RUSTFLAGS wins, then
// target.<triple>.rustflags, then build.rustflags.
func ResolveFlags(cfg *CargoConfig, triple string) Flags {
	if env, ok := os.LookupEnv(EnvRustFlags); ok {
		return Flags(strings.Fields(env))
	}
	if cfg == nil {
		return nil
	}
	if f, ok := cfg.TargetRustflags[triple]; ok {
		return f
	}
	return cfg.BuildRustflags
}
