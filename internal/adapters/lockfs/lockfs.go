// Package lockfs implements cross-process advisory locks over a directory tree.
package lockfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/zerr"
)

// State is the kind of lock held on a file.
type State int

const (
	// Shared locks coexist with each other.
	Shared State = iota
	// Exclusive locks exclude every other lock.
	Exclusive
)

func (s State) String() string {
	if s == Exclusive {
		return "exclusive"
	}
	return "shared"
}

// Filesystem is a directory whose files are locked across processes.
type Filesystem struct {
	root   string
	notice io.Writer
	quiet  bool

	// LockingUnsafe reports whether locks at path cannot be trusted. Files for
	// which it returns true are opened but never locked.
	LockingUnsafe func(path string) bool
}

// Option configures a Filesystem.
type Option func(*Filesystem)

// WithNotice sets where the blocking notice is written. Defaults to os.Stderr.
func WithNotice(w io.Writer) Option {
	return func(f *Filesystem) { f.notice = w }
}

// WithQuiet suppresses the blocking notice.
func WithQuiet(quiet bool) Option {
	return func(f *Filesystem) { f.quiet = quiet }
}

// WithLockingUnsafe replaces the platform predicate for untrustworthy filesystems.
func WithLockingUnsafe(fn func(path string) bool) Option {
	return func(f *Filesystem) { f.LockingUnsafe = fn }
}

// New returns a Filesystem rooted at root.
func New(root string, opts ...Option) *Filesystem {
	f := &Filesystem{
		root:          root,
		notice:        os.Stderr,
		LockingUnsafe: lockingUnsafeAt,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Root returns the directory the filesystem is rooted at.
func (f *Filesystem) Root() string {
	return f.root
}

// Join returns a Filesystem rooted at a subdirectory, sharing the options.
func (f *Filesystem) Join(elem ...string) *Filesystem {
	sub := *f
	sub.root = filepath.Join(append([]string{f.root}, elem...)...)
	return &sub
}

// OpenShared opens rel read-only and blocks until a shared lock is held.
// msg names the locked resource in the blocking notice.
func (f *Filesystem) OpenShared(rel, msg string) (*Lock, error) {
	return f.open(rel, msg, Shared)
}

// OpenExclusive creates rel and its parent directories if needed and blocks
// until an exclusive lock is held.
func (f *Filesystem) OpenExclusive(rel, msg string) (*Lock, error) {
	return f.open(rel, msg, Exclusive)
}

func (f *Filesystem) open(rel, msg string, state State) (*Lock, error) {
	path := filepath.Join(f.root, rel)

	flag := os.O_RDONLY
	if state == Exclusive {
		flag = os.O_RDWR | os.O_CREATE
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrLockOpenFailed.Error()), "path", path)
		}
	}

	lock := &Lock{
		path:  path,
		state: state,
		fl:    flock.New(path, flock.SetFlag(flag), flock.SetPermissions(domain.FilePerm)),
	}

	if f.LockingUnsafe != nil && f.LockingUnsafe(filepath.Dir(path)) {
		if err := touch(path, flag); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrLockOpenFailed.Error()), "path", path)
		}
		return lock, nil
	}

	if err := f.acquire(lock, msg); err != nil {
		return nil, err
	}
	lock.held = true
	return lock, nil
}

// acquire tries a non-blocking lock first and only blocks, after printing a
// notice, when another process holds the file.
func (f *Filesystem) acquire(l *Lock, msg string) error {
	try, block := l.fl.TryRLock, l.fl.RLock
	if l.state == Exclusive {
		try, block = l.fl.TryLock, l.fl.Lock
	}

	ok, err := try()
	switch {
	case ok:
		return nil
	case err != nil && isUnsupported(err):
		return nil
	case err != nil:
		return lockError(err, l.path)
	}

	if !f.quiet && f.notice != nil {
		_ = output.WriteStatus(f.notice, "Blocking", "waiting for file lock on "+msg)
	}

	if err := block(); err != nil {
		if isUnsupported(err) {
			return nil
		}
		return lockError(err, l.path)
	}
	return nil
}

func lockError(err error, path string) error {
	sentinel := domain.ErrLockFailed
	var pe *fs.PathError
	if errors.As(err, &pe) && pe.Op == "open" {
		sentinel = domain.ErrLockOpenFailed
	}
	return zerr.With(zerr.Wrap(err, sentinel.Error()), "path", path)
}

func isUnsupported(err error) bool {
	return errors.Is(err, errors.ErrUnsupported) || isPlatformUnsupported(err)
}

// touch opens path the way a real lock would, so a missing file fails the
// same way on filesystems where locking is skipped.
func touch(path string, flag int) error {
	fh, err := os.OpenFile(path, flag, domain.FilePerm)
	if err != nil {
		return err
	}
	return fh.Close()
}

// Lock is a held advisory lock on one file. Release it with a deferred Close.
type Lock struct {
	path  string
	state State
	fl    *flock.Flock
	held  bool
}

// Path returns the locked file.
func (l *Lock) Path() string {
	return l.path
}

// Parent returns the directory of the locked file.
func (l *Lock) Parent() string {
	return filepath.Dir(l.path)
}

// State returns the kind of lock held.
func (l *Lock) State() State {
	return l.state
}

// Close releases the lock. It is safe to call more than once.
func (l *Lock) Close() error {
	if l == nil || !l.held {
		return nil
	}
	l.held = false
	if err := l.fl.Unlock(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to release file lock"), "path", l.path)
	}
	return nil
}

// RemoveSiblings deletes everything in the locked file's directory except
// the locked file itself.
func (l *Lock) RemoveSiblings() error {
	dir := l.Parent()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrClearFailed.Error()), "path", dir)
	}

	name := filepath.Base(l.path)
	for _, e := range entries {
		if e.Name() == name {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrClearFailed.Error()), "path", p)
		}
	}
	return nil
}
