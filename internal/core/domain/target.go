package domain

import (
	"path/filepath"
	"strings"
)

// Target identifies a platform the sysroot is compiled for.
type Target struct {
	triple     string
	orig       string
	descriptor string
}

// BuiltinTarget returns a target known to rustc by its triple.
func BuiltinTarget(triple string) Target {
	return Target{triple: triple, orig: triple}
}

// CustomTarget returns a target described by the JSON file at descriptor.
// orig is the value the user passed, descriptor must be absolute.
func CustomTarget(orig, descriptor string) Target {
	return Target{
		triple:     strings.TrimSuffix(filepath.Base(descriptor), DescriptorExt),
		orig:       orig,
		descriptor: descriptor,
	}
}

// Triple returns the bare target name, usable as a directory name.
func (t Target) Triple() string { return t.triple }

// Orig returns the target as it should be handed to cargo.
func (t Target) Orig() string { return t.orig }

// Descriptor returns the absolute descriptor path, or "" for builtin targets.
func (t Target) Descriptor() string { return t.descriptor }

// IsCustom reports whether the target comes from a descriptor file.
func (t Target) IsCustom() bool { return t.descriptor != "" }

// CompilationMode is either Cross or Native. No other implementations exist.
type CompilationMode interface {
	// Triple returns the bare triple the sysroot entry is keyed by.
	Triple() string
	compilationMode()
}

// Cross compiles for a target other than the host.
type Cross struct {
	Target Target
}

// Native compiles for the host triple.
type Native struct {
	Host string
}

// Triple implements CompilationMode.
func (c Cross) Triple() string { return c.Target.Triple() }

// Triple implements CompilationMode.
func (n Native) Triple() string { return n.Host }

func (Cross) compilationMode()  {}
func (Native) compilationMode() {}

// OrigTriple returns the value passed to cargo's --target for mode.
func OrigTriple(mode CompilationMode) string {
	switch m := mode.(type) {
	case Cross:
		return m.Target.Orig()
	case Native:
		return m.Host
	default:
		panic("domain: unknown compilation mode")
	}
}

// IsNative reports whether mode compiles for the host.
func IsNative(mode CompilationMode) bool {
	switch mode.(type) {
	case Cross:
		return false
	case Native:
		return true
	default:
		panic("domain: unknown compilation mode")
	}
}
