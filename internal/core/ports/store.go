package ports

// SysrootStore maps target triples to locked cache entries below one sysroot.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SysrootStore interface {
	// Root returns the directory passed to rustc as --sysroot.
	Root() string

	// LockRead blocks until a shared lock on the entry of triple is held.
	LockRead(triple string) (Entry, error)

	// LockWrite blocks until an exclusive lock on the entry of triple is held,
	// creating the entry directory if needed.
	LockWrite(triple string) (Entry, error)
}

// Entry is a locked cache entry. The lock is held until Close.
type Entry interface {
	// Dir returns the entry directory holding the sentinel and the marker.
	Dir() string

	// LibDir returns the directory holding library artifacts.
	LibDir() string

	// BinDir returns the directory holding mirrored host binaries.
	BinDir() string

	// ReadMarker returns the stored marker and whether one exists.
	ReadMarker() (string, bool, error)

	// WriteMarker records marker as the freshness signal of the entry.
	WriteMarker(marker string) error

	// Clear removes everything in the entry except the sentinel.
	Clear() error

	// Close releases the lock.
	Close() error
}
