// Package app implements the application layer for kiln.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/adapters/home"
	"go.trai.ch/kiln/internal/adapters/lockfs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/sysroot"
	"go.trai.ch/zerr"
)

// hostWarning is shown when no target was requested.
const hostWarning = "building for the host system; build scripts of dependencies are likely to break"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	inspector    ports.ToolchainInspector
	driver       ports.Driver
	builder      *sysroot.Builder
	logger       ports.Logger
	notice       io.Writer
	lockOpts     []lockfs.Option
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	inspector ports.ToolchainInspector,
	driver ports.Driver,
	builder *sysroot.Builder,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		inspector:    inspector,
		driver:       driver,
		builder:      builder,
		logger:       log,
		notice:       os.Stderr,
	}
}

// WithNotice redirects the lock contention notice. Used for testing.
func (a *App) WithNotice(w io.Writer) *App {
	a.notice = w
	return a
}

// WithLockOptions adds options to every lock filesystem the App opens.
func (a *App) WithLockOptions(opts ...lockfs.Option) *App {
	a.lockOpts = append(a.lockOpts, opts...)
	return a
}

// plan is a prepared sysroot for one invocation.
type plan struct {
	store *home.Home
	req   sysroot.Request
}

// Build makes sure the sysroot for the invocation is fresh and then runs
// cargo against it while holding read locks on the entries it uses. Targets
// kiln does not understand are handed to cargo unchanged. The returned code
// is cargo's exit code.
func (a *App) Build(ctx context.Context, cwd string, inv Invocation) (int, error) {
	tc, err := a.inspector.Inspect(ctx)
	if err != nil {
		return 1, err
	}

	p, err := a.prepare(ctx, cwd, inv, tc)
	if err != nil {
		return 1, err
	}
	if p == nil {
		return a.driver.Run(ctx, inv.Args, nil)
	}

	if err := a.ensure(ctx, p); err != nil {
		return 1, err
	}

	release, err := a.lockForRun(p)
	if err != nil {
		return 1, err
	}
	defer release()

	flags := p.req.Flags.WithSysroot(p.store.Root())
	env := []string{
		domain.EnvRustFlags + "=" + flags,
		domain.EnvRustDocFlags + "=" + flags,
	}

	return a.driver.Run(ctx, inv.Args, env)
}

// Sysroot brings the sysroot of the invocation up to date and returns its path.
func (a *App) Sysroot(ctx context.Context, cwd string, inv Invocation) (string, error) {
	tc, err := a.inspector.Inspect(ctx)
	if err != nil {
		return "", err
	}

	p, err := a.prepare(ctx, cwd, inv, tc)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", zerr.With(domain.ErrUnknownTarget, "target", inv.Target)
	}

	if err := a.ensure(ctx, p); err != nil {
		return "", err
	}
	return p.store.Root(), nil
}

// Clean empties the sysroot of the project in cwd. Each entry is cleared
// under its write lock, so a build running in another process finishes
// first; the sentinels stay behind.
func (a *App) Clean(_ context.Context, cwd, manifestPath string) error {
	project, err := a.configLoader.LoadProject(cwd, manifestPath)
	if err != nil {
		return err
	}

	root, err := home.Resolve(project.Root, project.Config)
	if err != nil {
		return err
	}

	store := home.New(root, a.notice, false, a.lockOpts...)
	triples, err := store.Triples()
	if err != nil {
		return err
	}
	for _, triple := range triples {
		if err := clearEntry(store, triple); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "triple", triple)
		}
	}

	if err := store.RemoveUnmanaged(); err != nil {
		return err
	}
	a.logger.Status("Removed", root)
	return nil
}

func clearEntry(store *home.Home, triple string) error {
	entry, err := store.LockWrite(triple)
	if err != nil {
		return err
	}
	defer func() { _ = entry.Close() }()

	return entry.Clear()
}

// ensure rebuilds the target entry if needed and, when cross compiling,
// mirrors the host toolchain next to it.
func (a *App) ensure(ctx context.Context, p *plan) error {
	if err := a.builder.EnsureFresh(ctx, p.store, p.req); err != nil {
		return zerr.Wrap(err, domain.ErrSysrootBuildFailed.Error())
	}

	if domain.IsNative(p.req.Mode) {
		return nil
	}
	return a.builder.MirrorHost(ctx, p.store, p.req.Toolchain)
}

// lockForRun takes read locks on the target and host entries so that no
// other process rebuilds them while cargo reads them.
func (a *App) lockForRun(p *plan) (func(), error) {
	triples := []string{p.req.Mode.Triple()}
	if host := p.req.Toolchain.Host; !slices.Contains(triples, host) {
		triples = append(triples, host)
	}

	entries := make([]ports.Entry, 0, len(triples))
	release := func() {
		for _, e := range entries {
			_ = e.Close()
		}
	}

	for _, triple := range triples {
		e, err := p.store.LockRead(triple)
		if err != nil {
			release()
			return nil, err
		}
		entries = append(entries, e)
	}
	return release, nil
}

// prepare resolves everything EnsureFresh needs. It returns nil when the
// target is unknown and the command should go to cargo as is.
func (a *App) prepare(ctx context.Context, cwd string, inv Invocation, tc domain.Toolchain) (*plan, error) {
	project, err := a.configLoader.LoadProject(cwd, inv.ManifestPath)
	if err != nil {
		return nil, err
	}

	cargoCfg, err := a.configLoader.LoadCargoConfig(cwd)
	if err != nil {
		return nil, err
	}

	target := inv.Target
	if target == "" {
		target = cargoCfg.BuildTarget
	}

	mode, err := a.resolveMode(ctx, cwd, target, tc)
	if err != nil || mode == nil {
		return nil, err
	}

	if err := checkToolchain(tc); err != nil {
		return nil, err
	}

	root, err := home.Resolve(project.Root, project.Config)
	if err != nil {
		return nil, err
	}

	return &plan{
		store: home.New(root, a.notice, inv.Quiet, a.lockOpts...),
		req: sysroot.Request{
			Mode:          mode,
			Flags:         domain.ResolveFlags(cargoCfg, mode.Triple()),
			Profile:       project.Profile,
			CargoFeatures: project.CargoFeatures,
			Toolchain:     tc,
			Config:        project.Config,
			Verbose:       inv.Verbose,
		},
	}, nil
}

// resolveMode maps the requested target to a compilation mode, or nil for
// targets kiln cannot build a sysroot for.
func (a *App) resolveMode(ctx context.Context, cwd, target string, tc domain.Toolchain) (domain.CompilationMode, error) {
	if target == "" || target == tc.Host {
		a.logger.Warn(hostWarning)
		return domain.Native{Host: tc.Host}, nil
	}

	if strings.HasSuffix(target, domain.DescriptorExt) {
		path := target
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrDescriptorReadFailed.Error()), "path", path)
		}
		return domain.Cross{Target: domain.CustomTarget(target, path)}, nil
	}

	builtins, err := a.inspector.TargetList(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(builtins, target) {
		return domain.Cross{Target: domain.BuiltinTarget(target)}, nil
	}

	if path := findDescriptor(cwd, target); path != "" {
		return domain.Cross{Target: domain.CustomTarget(target, path)}, nil
	}

	return nil, nil
}

// findDescriptor looks for <target>.json in dir and in RUST_TARGET_PATH.
func findDescriptor(dir, target string) string {
	dirs := []string{dir}
	dirs = append(dirs, filepath.SplitList(os.Getenv(domain.EnvRustTargetPath))...)

	for _, d := range dirs {
		if d == "" {
			continue
		}
		path := filepath.Join(d, target+domain.DescriptorExt)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// checkToolchain rejects toolchains that cannot compile core from source.
func checkToolchain(tc domain.Toolchain) error {
	switch tc.Channel {
	case domain.ChannelStable, domain.ChannelBeta:
		return zerr.With(domain.ErrUnsupportedChannel, "channel", string(tc.Channel))
	case domain.ChannelDev:
		if _, ok := os.LookupEnv(domain.EnvRustSrc); !ok {
			return zerr.With(domain.ErrRustSrcNotFound, "hint", "set "+domain.EnvRustSrc+" for a dev toolchain")
		}
	}

	if info, err := os.Stat(tc.Src); err != nil || !info.IsDir() {
		return zerr.With(domain.ErrRustSrcNotFound, "path", tc.Src)
	}
	return nil
}
