package fs

import (
	"os"

	cp "github.com/otiai10/copy"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// CopyTree copies the contents of src into dst, creating dst if needed.
// Existing files in dst are overwritten. Symlinks are copied as links.
func CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "path", src)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New(domain.ErrArtifactCopyFailed.Error()+": not a directory"), "path", src)
	}

	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		OnDirExists: func(_, _ string) cp.DirExistsAction {
			return cp.Merge
		},
		PermissionControl: cp.AddPermission(0o200),
	}

	if err := cp.Copy(src, dst, opts); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "src", src), "dst", dst)
	}
	return nil
}

// CopyFile copies a single file and makes the copy writable.
func CopyFile(src, dst string) error {
	opts := cp.Options{
		PermissionControl: cp.AddPermission(0o200),
	}
	if err := cp.Copy(src, dst, opts); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to copy file"), "src", src), "dst", dst)
	}
	return nil
}
