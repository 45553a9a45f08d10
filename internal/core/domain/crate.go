package domain

import "path/filepath"

// Dependency kinds of a sysroot crate.
const (
	FromSource   = "path"
	FromRegistry = "version"
)

// Crate is one runtime library crate of the sysroot.
type Crate struct {
	Name string
	// Source is either FromSource, with Location relative to the rust
	// sources, or FromRegistry, with Location as the version requirement.
	Source   string
	Location string
	Features []string
}

// SysrootCrates returns the crates to build for cfg, in dependency order.
func SysrootCrates(cfg Config) []Crate {
	core := Crate{Name: "core", Source: FromSource, Location: "core"}
	if cfg.PanicImmediateAbort {
		core.Features = []string{"panic_immediate_abort"}
	}

	builtins := Crate{
		Name:     "compiler_builtins",
		Source:   FromRegistry,
		Location: "0.1.0",
		Features: []string{"core"},
	}
	if cfg.Memcpy {
		builtins.Features = []string{"mem", "core"}
	}

	alloc := Crate{Name: "alloc", Source: FromSource, Location: "alloc"}

	return []Crate{core, builtins, alloc}
}

// CrateJob is one invocation of the compiler driver for a sysroot crate.
type CrateJob struct {
	Crate string
	// Workspace is the scratch directory holding the synthetic manifest.
	Workspace string
	// Target is the value passed to --target.
	Target string
	// TargetPath is exported as RUST_TARGET_PATH for custom targets.
	TargetPath string
	Verbose    bool
}

// ManifestPath returns the synthetic manifest of the job.
func (j CrateJob) ManifestPath() string {
	return filepath.Join(j.Workspace, ManifestFileName)
}

// TargetDir returns the cargo target directory of the job.
func (j CrateJob) TargetDir() string {
	return filepath.Join(j.Workspace, "target")
}

// DepsDir returns the directory cargo writes the compiled crates to.
func (j CrateJob) DepsDir(triple string) string {
	return filepath.Join(j.TargetDir(), triple, "release", "deps")
}
