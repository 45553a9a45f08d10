package sysroot

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// MirrorHost copies the host libraries and binaries of the toolchain into
// the host entry of store, so that build scripts and proc-macros compiled
// against the custom sysroot still find the host standard library. The entry
// is keyed by the toolchain commit. Copy failures are reported as warnings.
func (b *Builder) MirrorHost(ctx context.Context, store ports.SysrootStore, tc domain.Toolchain) (err error) {
	_, span := b.tracer.Start(ctx, "host mirror "+tc.Host)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	want := tc.CommitHash
	if want == "" {
		want = tc.Release
	}

	entry, err := store.LockWrite(tc.Host)
	if err != nil {
		return err
	}
	defer func() { _ = entry.Close() }()

	marker, ok, err := entry.ReadMarker()
	if err != nil {
		return err
	}
	if ok && marker == want {
		return nil
	}

	if err := entry.Clear(); err != nil {
		return err
	}

	src := domain.EntryDir(tc.Sysroot, tc.Host)
	pairs := [][2]string{
		{filepath.Join(src, domain.LibDirName), entry.LibDir()},
		{filepath.Join(src, domain.BinDirName), entry.BinDir()},
	}

	for _, pair := range pairs {
		if err := fs.CopyTree(pair[0], pair[1]); err != nil {
			b.logger.Warn(fmt.Sprintf("couldn't copy the host sysroot from %s: %v", pair[0], err))
		}
	}

	return entry.WriteMarker(want)
}
