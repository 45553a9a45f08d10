package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when no Cargo.toml exists in the working directory or any parent.
	ErrManifestNotFound = zerr.New("could not find Cargo.toml in the current directory or any parent directory")

	// ErrConfigReadFailed is returned when a manifest or cargo config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a manifest or cargo config file is not valid TOML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfigValue is returned when a config key holds a value of the wrong type.
	ErrInvalidConfigValue = zerr.New("invalid config value")

	// ErrDescriptorReadFailed is returned when a custom target descriptor cannot be read.
	ErrDescriptorReadFailed = zerr.New("failed to read target descriptor")

	// ErrKeyComputationFailed is returned when the sysroot cache key cannot be computed.
	ErrKeyComputationFailed = zerr.New("failed to compute sysroot cache key")

	// ErrLockOpenFailed is returned when a lock file cannot be opened or created.
	ErrLockOpenFailed = zerr.New("failed to open lock file")

	// ErrLockFailed is returned when a lock cannot be acquired for a reason other than contention.
	ErrLockFailed = zerr.New("failed to acquire file lock")

	// ErrClearFailed is returned when a cache entry cannot be cleared before a rebuild.
	ErrClearFailed = zerr.New("failed to clear cache entry")

	// ErrMarkerReadFailed is returned when the stored hash marker exists but cannot be read.
	ErrMarkerReadFailed = zerr.New("failed to read hash marker")

	// ErrMarkerWriteFailed is returned when the hash marker cannot be written.
	ErrMarkerWriteFailed = zerr.New("failed to write hash marker")

	// ErrSysrootPathHasSpaces is returned when the resolved sysroot path contains a space.
	ErrSysrootPathHasSpaces = zerr.New("sysroot path contains spaces, set " + EnvAllowSysrootSpaces + "=1 to use it anyway")

	// ErrWorkspaceCreateFailed is returned when a scratch build workspace cannot be created.
	ErrWorkspaceCreateFailed = zerr.New("failed to create build workspace")

	// ErrManifestWriteFailed is returned when the synthetic build manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write build manifest")

	// ErrCrateBuildFailed is returned when the compiler driver fails to build a sysroot crate.
	ErrCrateBuildFailed = zerr.New("failed to build sysroot crate")

	// ErrArtifactCopyFailed is returned when build artifacts cannot be copied into the cache entry.
	ErrArtifactCopyFailed = zerr.New("failed to copy build artifacts")

	// ErrSysrootBuildFailed is returned when the sysroot cannot be brought up to date.
	ErrSysrootBuildFailed = zerr.New("failed to build sysroot")

	// ErrToolchainQueryFailed is returned when rustc cannot be queried.
	ErrToolchainQueryFailed = zerr.New("failed to query the rust toolchain")

	// ErrUnsupportedChannel is returned for release channels that cannot build core from source.
	ErrUnsupportedChannel = zerr.New("the sysroot can't be built for this release channel, use a nightly toolchain")

	// ErrRustSrcNotFound is returned when the standard library sources are missing.
	ErrRustSrcNotFound = zerr.New("rust standard library sources not found, run `rustup component add rust-src`")

	// ErrUnknownTarget is returned when a target is neither builtin nor described by a JSON file.
	ErrUnknownTarget = zerr.New("unknown target, expected a builtin triple or a target JSON file")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCleanFailed is returned when the sysroot directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove sysroot")
)
