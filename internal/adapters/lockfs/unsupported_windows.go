//go:build windows

package lockfs

import (
	"errors"

	"golang.org/x/sys/windows"
)

func isPlatformUnsupported(err error) bool {
	return errors.Is(err, windows.ERROR_INVALID_FUNCTION)
}
