//go:build windows

package fs

import "os"

// WriteFileAtomic writes data to path. renameio has no Windows support, so
// the write is not atomic there; the cache lock still guards readers.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
