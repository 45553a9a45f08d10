// Package home implements the sysroot cache store: one locked entry per
// target triple below a shared sysroot directory.
package home

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/adapters/lockfs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.SysrootStore = (*Home)(nil)
	_ ports.Entry        = (*Entry)(nil)
)

// Resolve returns the sysroot directory for a project. KILN_SYSROOT_PATH
// wins over the configured path. A path containing a space is rejected
// unless KILN_ALLOW_SYSROOT_SPACES is set, since RUSTFLAGS is split on spaces.
func Resolve(projectRoot string, cfg domain.Config) (string, error) {
	path, ok := os.LookupEnv(domain.EnvSysrootPath)
	if !ok || path == "" {
		rel := cfg.SysrootPath
		if rel == "" {
			rel = domain.DefaultSysrootPath
		}
		path = filepath.Join(projectRoot, rel)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve sysroot path"), "path", path)
	}

	if strings.Contains(abs, " ") {
		if _, allow := os.LookupEnv(domain.EnvAllowSysrootSpaces); !allow {
			return "", zerr.With(domain.ErrSysrootPathHasSpaces, "path", abs)
		}
	}
	return abs, nil
}

// Home is a sysroot directory whose per-target entries are guarded by
// advisory locks.
type Home struct {
	root string
	fs   *lockfs.Filesystem
}

// New returns the Home for the sysroot at root. The blocking notice goes to
// notice unless quiet is set.
func New(root string, notice io.Writer, quiet bool, opts ...lockfs.Option) *Home {
	opts = append([]lockfs.Option{lockfs.WithNotice(notice), lockfs.WithQuiet(quiet)}, opts...)
	return &Home{
		root: root,
		fs:   lockfs.New(domain.RustlibDir(root), opts...),
	}
}

// Root returns the directory passed to rustc as --sysroot.
func (h *Home) Root() string {
	return h.root
}

// Triples lists the entries present below the sysroot.
func (h *Home) Triples() ([]string, error) {
	dir := h.fs.Root()
	items, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list sysroot entries"), "path", dir)
	}

	var triples []string
	for _, item := range items {
		if item.IsDir() {
			triples = append(triples, item.Name())
		}
	}
	return triples, nil
}

// RemoveUnmanaged deletes everything below the sysroot that is not an entry
// directory. Entries themselves are only touched through their locks.
func (h *Home) RemoveUnmanaged() error {
	levels := []struct {
		dir  string
		keep func(os.DirEntry) bool
	}{
		{h.root, func(e os.DirEntry) bool { return e.Name() == domain.LibDirName }},
		{filepath.Join(h.root, domain.LibDirName), func(e os.DirEntry) bool { return e.Name() == "rustlib" }},
		{h.fs.Root(), func(e os.DirEntry) bool { return e.IsDir() }},
	}

	for _, level := range levels {
		dir := level.dir
		items, err := os.ReadDir(dir)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", dir)
		}
		for _, item := range items {
			if level.keep(item) {
				continue
			}
			p := filepath.Join(dir, item.Name())
			if err := os.RemoveAll(p); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", p)
			}
		}
	}
	return nil
}

// LockRead blocks until a shared lock on the entry of triple is held.
func (h *Home) LockRead(triple string) (ports.Entry, error) {
	lock, err := h.fs.OpenShared(filepath.Join(triple, domain.SentinelFileName), triple+"'s sysroot")
	if err != nil {
		return nil, zerr.Wrap(err, "couldn't lock "+triple+"'s sysroot as read-only")
	}
	return &Entry{lock: lock}, nil
}

// LockWrite blocks until an exclusive lock on the entry of triple is held.
func (h *Home) LockWrite(triple string) (ports.Entry, error) {
	lock, err := h.fs.OpenExclusive(filepath.Join(triple, domain.SentinelFileName), triple+"'s sysroot")
	if err != nil {
		dir := filepath.Join(h.fs.Root(), triple)
		return nil, zerr.Wrap(err, "couldn't lock "+triple+"'s sysroot in "+dir+" as read-write")
	}
	return &Entry{lock: lock}, nil
}

// Entry is a locked cache entry.
type Entry struct {
	lock *lockfs.Lock
}

// Dir returns the entry directory.
func (e *Entry) Dir() string { return e.lock.Parent() }

// LibDir returns the directory holding library artifacts.
func (e *Entry) LibDir() string { return filepath.Join(e.Dir(), domain.LibDirName) }

// BinDir returns the directory holding mirrored host binaries.
func (e *Entry) BinDir() string { return filepath.Join(e.Dir(), domain.BinDirName) }

func (e *Entry) markerPath() string { return filepath.Join(e.Dir(), domain.HashFileName) }

// ReadMarker returns the stored marker, or false when the entry was never
// completed.
func (e *Entry) ReadMarker() (string, bool, error) {
	data, err := os.ReadFile(e.markerPath())
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrMarkerReadFailed.Error()), "path", e.markerPath())
	}
	return strings.TrimSpace(string(data)), true, nil
}

// WriteMarker records marker. Only an exclusive holder may call it.
func (e *Entry) WriteMarker(marker string) error {
	if e.lock.State() != lockfs.Exclusive {
		return zerr.With(zerr.New(domain.ErrMarkerWriteFailed.Error()+": entry is not write-locked"), "path", e.markerPath())
	}
	if err := fs.WriteFileAtomic(e.markerPath(), []byte(marker), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMarkerWriteFailed.Error()), "path", e.markerPath())
	}
	return nil
}

// Clear removes everything in the entry except the sentinel.
func (e *Entry) Clear() error {
	if e.lock.State() != lockfs.Exclusive {
		return zerr.With(zerr.New(domain.ErrClearFailed.Error()+": entry is not write-locked"), "path", e.Dir())
	}
	if err := e.lock.RemoveSiblings(); err != nil {
		return zerr.Wrap(err, "couldn't clear "+e.lock.Path())
	}
	return nil
}

// Close releases the lock.
func (e *Entry) Close() error {
	return e.lock.Close()
}
