//go:build !unix && !windows

package lockfs

func isPlatformUnsupported(error) bool {
	return false
}
