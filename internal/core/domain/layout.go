package domain

import "path/filepath"

const (
	// SentinelFileName is the file locked inside every cache entry.
	SentinelFileName = ".sentinel"

	// HashFileName is the file holding the stored cache key of an entry.
	HashFileName = ".hash"

	// LibDirName holds the library artifacts of an entry.
	LibDirName = "lib"

	// BinDirName holds mirrored host binaries of an entry.
	BinDirName = "bin"

	// DefaultSysrootPath is the sysroot location relative to the project root.
	DefaultSysrootPath = "target/sysroot"

	// ManifestFileName is the name of the cargo project manifest.
	ManifestFileName = "Cargo.toml"

	// LockFileName is the name of the cargo lock file.
	LockFileName = "Cargo.lock"

	// DescriptorExt is the extension of custom target descriptors.
	DescriptorExt = ".json"

	// TempPrefix prefixes every scratch workspace directory.
	TempPrefix = "kiln"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Environment variables read by kiln.
const (
	EnvSysrootPath        = "KILN_SYSROOT_PATH"
	EnvKeepTemp           = "KILN_KEEP_TEMP"
	EnvAllowSysrootSpaces = "KILN_ALLOW_SYSROOT_SPACES"
	EnvRustSrc            = "KILN_RUST_SRC"
	EnvRustFlags          = "RUSTFLAGS"
	EnvRustDocFlags       = "RUSTDOCFLAGS"
	EnvRustTargetPath     = "RUST_TARGET_PATH"
	EnvCargo              = "CARGO"
	EnvRustc              = "RUSTC"
	EnvOutput             = "KILN_OUTPUT"
)

// RustlibDir returns the directory below a sysroot that holds per-target entries.
// It joins lib and rustlib.
func RustlibDir(sysroot string) string {
	return filepath.Join(sysroot, LibDirName, "rustlib")
}

// EntryDir returns the cache entry directory of triple below sysroot.
func EntryDir(sysroot, triple string) string {
	return filepath.Join(RustlibDir(sysroot), triple)
}
