package domain

import "fmt"

// CacheKey is the digest of every input that affects the compiled sysroot.
// It is only meaningful for equality within one build of kiln.
type CacheKey uint64

// String renders the key the way it is stored in the hash marker.
func (k CacheKey) String() string {
	return fmt.Sprintf("%016x", uint64(k))
}
