// Package sysroot keeps per-target sysroots up to date: it recompiles the
// runtime crates whenever the cache key of a target changes, and mirrors the
// host toolchain's libraries next to them.
package sysroot

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Request describes the sysroot a project needs.
type Request struct {
	Mode          domain.CompilationMode
	Flags         domain.Flags
	Profile       domain.Profile
	CargoFeatures []string
	Toolchain     domain.Toolchain
	Config        domain.Config
	Verbose       bool
}

// Builder rebuilds stale sysroot entries.
type Builder struct {
	hasher ports.KeyHasher
	driver ports.Driver
	logger ports.Logger
	tracer ports.Tracer
}

// NewBuilder creates a new Builder.
func NewBuilder(
	hasher ports.KeyHasher,
	driver ports.Driver,
	logger ports.Logger,
	tracer ports.Tracer,
) *Builder {
	return &Builder{
		hasher: hasher,
		driver: driver,
		logger: logger,
		tracer: tracer,
	}
}

// EnsureFresh makes the entry of req.Mode in store match the cache key of req.
// The entry is write-locked for the whole call. A fresh entry is left
// untouched. Otherwise it is cleared and every sysroot crate is compiled; the
// marker is written only after all of them were promoted into the entry.
func (b *Builder) EnsureFresh(ctx context.Context, store ports.SysrootStore, req Request) (err error) {
	triple := req.Mode.Triple()

	ctx, span := b.tracer.Start(ctx, "sysroot "+triple)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	key, err := b.hasher.ComputeCacheKey(req.Mode, req.Flags, req.Profile, req.Toolchain.CommitHash, req.Config)
	if err != nil {
		return err
	}
	span.SetAttribute("key", key.String())

	entry, err := store.LockWrite(triple)
	if err != nil {
		return err
	}
	defer func() { _ = entry.Close() }()

	marker, ok, err := entry.ReadMarker()
	if err != nil {
		return err
	}
	if ok && marker == key.String() {
		span.SetAttribute("rebuild", false)
		return nil
	}
	span.SetAttribute("rebuild", true)

	if err := entry.Clear(); err != nil {
		return err
	}
	if err := os.MkdirAll(entry.LibDir(), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create sysroot lib directory"), "path", entry.LibDir())
	}

	crates := domain.SysrootCrates(req.Config)
	for i := range crates {
		if err := b.buildCrate(ctx, req, crates[:i+1], entry.LibDir()); err != nil {
			return err
		}
	}

	return entry.WriteMarker(key.String())
}

// buildCrate compiles the last crate of stage in a scratch workspace that
// depends on every crate of stage, and copies the results to libDir.
func (b *Builder) buildCrate(ctx context.Context, req Request, stage []domain.Crate, libDir string) (err error) {
	crate := stage[len(stage)-1]
	triple := req.Mode.Triple()

	ctx, span := b.tracer.Start(ctx, "crate "+crate.Name)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	ws, err := os.MkdirTemp("", domain.TempPrefix)
	if err != nil {
		return zerr.Wrap(err, domain.ErrWorkspaceCreateFailed.Error())
	}
	if _, keep := os.LookupEnv(domain.EnvKeepTemp); keep {
		b.logger.Status("Keeping", ws)
	} else {
		defer func() { _ = os.RemoveAll(ws) }()
	}

	if err := writeWorkspace(ws, req, stage); err != nil {
		return err
	}

	b.logger.Status("Compiling", crate.Name+" ("+triple+" sysroot)")

	job := domain.CrateJob{
		Crate:     crate.Name,
		Workspace: ws,
		Target:    domain.OrigTriple(req.Mode),
		Verbose:   req.Verbose,
	}
	if cross, ok := req.Mode.(domain.Cross); ok && cross.Target.IsCustom() {
		job.TargetPath = filepath.Dir(cross.Target.Descriptor())
	}

	if err := b.driver.BuildCrate(ctx, job); err != nil {
		return err
	}

	return fs.CopyTree(job.DepsDir(triple), libDir)
}

// writeWorkspace lays out the synthetic cargo project of a stage in ws.
func writeWorkspace(ws string, req Request, stage []domain.Crate) error {
	manifest, err := syntheticManifest(stage, req.Toolchain.Src, req.Profile, req.CargoFeatures)
	if err != nil {
		return err
	}

	manifestPath := filepath.Join(ws, domain.ManifestFileName)
	if err := os.WriteFile(manifestPath, manifest, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", manifestPath)
	}

	srcDir := filepath.Join(ws, "src")
	if err := os.MkdirAll(srcDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkspaceCreateFailed.Error()), "path", srcDir)
	}
	libRS := filepath.Join(srcDir, "lib.rs")
	if err := os.WriteFile(libRS, nil, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkspaceCreateFailed.Error()), "path", libRS)
	}

	// The standard library pins its dependencies in the lock file one level
	// above the crate sources.
	lockfile := filepath.Join(filepath.Dir(req.Toolchain.Src), domain.LockFileName)
	return fs.CopyFile(lockfile, filepath.Join(ws, domain.LockFileName))
}
