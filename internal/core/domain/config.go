package domain

// Config is the [package.metadata.kiln] table of the project manifest.
type Config struct {
	// Memcpy builds compiler_builtins with its own mem* implementations.
	Memcpy bool
	// SysrootPath is where the sysroot lives, relative to the project root.
	SysrootPath string
	// PanicImmediateAbort enables the panic_immediate_abort feature of core.
	PanicImmediateAbort bool
}

// DefaultConfig returns the configuration used when the manifest has no kiln table.
func DefaultConfig() Config {
	return Config{
		Memcpy:      true,
		SysrootPath: DefaultSysrootPath,
	}
}
