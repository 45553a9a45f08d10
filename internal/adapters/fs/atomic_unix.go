//go:build !windows

package fs

import (
	"os"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic replaces path with data so readers see either the old or
// the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
