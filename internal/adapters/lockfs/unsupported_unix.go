//go:build unix

package lockfs

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isPlatformUnsupported(err error) bool {
	return errors.Is(err, unix.ENOTSUP) ||
		errors.Is(err, unix.EOPNOTSUPP) ||
		errors.Is(err, unix.ENOSYS)
}
