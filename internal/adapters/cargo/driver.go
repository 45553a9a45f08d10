// Package cargo runs the cargo executable, both to compile sysroot crates and
// to hand the user's command over once the sysroot is ready.
package cargo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// strippedEnvVars are removed from the environment of sysroot builds. The
// user's flags are part of the cache key and must not leak into the crates
// through cargo's own configuration channels.
var strippedEnvVars = map[string]struct{}{
	domain.EnvRustFlags:       {},
	domain.EnvRustDocFlags:    {},
	"CARGO_ENCODED_RUSTFLAGS": {},
	"CARGO_BUILD_RUSTFLAGS":   {},
	"CARGO_BUILD_TARGET":      {},
	"CARGO_TARGET_DIR":        {},
	"CARGO_BUILD_TARGET_DIR":  {},
}

// Driver implements ports.Driver by executing cargo.
type Driver struct {
	logger ports.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Driver.
type Option func(*Driver)

// WithStdio replaces the streams attached to passthrough runs.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(d *Driver) {
		d.stdin = stdin
		d.stdout = stdout
		d.stderr = stderr
	}
}

// NewDriver creates a new Driver.
func NewDriver(logger ports.Logger, opts ...Option) *Driver {
	d := &Driver{
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Executable returns the cargo binary to run, honoring $CARGO.
func Executable() string {
	if c := os.Getenv(domain.EnvCargo); c != "" {
		return c
	}
	return "cargo"
}

// BuildCrate compiles one crate of the synthetic sysroot workspace.
func (d *Driver) BuildCrate(ctx context.Context, job domain.CrateJob) error {
	args := []string{
		"rustc",
		"-p", job.Crate,
		"--release",
		"--manifest-path", job.ManifestPath(),
		"--target", job.Target,
	}
	if job.Verbose {
		args = append(args, "-v")
	}
	args = append(args, "--", "-Z", "force-unstable-if-unmarked")

	env := buildEnvironment(os.Environ(), job)
	newCmd := func() *exec.Cmd {
		cmd := exec.CommandContext(ctx, Executable(), args...) //nolint:gosec // cargo is user configured
		cmd.Dir = job.Workspace
		cmd.Env = env
		return cmd
	}

	out := &logWriter{logger: d.logger}
	if err := d.stream(newCmd, out); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.Wrap(err, domain.ErrCrateBuildFailed.Error())
		wrapped = zerr.With(wrapped, "crate", job.Crate)
		wrapped = zerr.With(wrapped, "exit_code", exitCode)
		// Streamed lines are Info records, which -q hides.
		if tail := out.Tail(); tail != "" {
			wrapped = zerr.With(wrapped, "output", tail)
		}
		return wrapped
	}

	return nil
}

// stream runs a command in a pty so cargo keeps its progress output, and
// falls back to plain pipes where no pty can be allocated. Every line goes to
// out.
func (d *Driver) stream(newCmd func() *exec.Cmd, out *logWriter) error {
	defer func() { _ = out.Close() }()

	cmd := newCmd()
	ptmx, err := pty.Start(cmd)
	if err != nil {
		cmd = newCmd()
		cmd.Stdout = out
		cmd.Stderr = out
		return cmd.Run()
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		_, _ = io.Copy(out, ptmx)
	}()

	err = cmd.Wait()
	<-ioDone

	return err
}

// Run hands the user's command to cargo with inherited stdio.
func (d *Driver) Run(ctx context.Context, args, env []string) (int, error) {
	cmd := exec.CommandContext(ctx, Executable(), args...) //nolint:gosec // cargo is user configured
	cmd.Stdin = d.stdin
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr
	cmd.Env = append(os.Environ(), env...)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return 1, zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", cmd.Path)
}

// buildEnvironment derives the environment of a sysroot crate build from sysEnv.
func buildEnvironment(sysEnv []string, job domain.CrateJob) []string {
	env := make([]string, 0, len(sysEnv)+4)
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, stripped := strippedEnvVars[k]; stripped {
			continue
		}
		if k == domain.EnvRustTargetPath && job.TargetPath != "" {
			continue
		}
		env = append(env, entry)
	}

	env = append(env,
		domain.EnvRustFlags+"=-Cembed-bitcode=yes",
		"CARGO_TARGET_DIR="+job.TargetDir(),
		"__CARGO_DEFAULT_LIB_METADATA=kiln",
	)
	if job.TargetPath != "" {
		env = append(env, domain.EnvRustTargetPath+"="+job.TargetPath)
	}

	return env
}

// tailLines is how many trailing output lines a failed crate build keeps.
const tailLines = 40

type logWriter struct {
	logger ports.Logger
	buf    []byte
	tail   []string
}

// Tail returns the last lines written, oldest first.
func (w *logWriter) Tail() string {
	return strings.Join(w.tail, "\n")
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r. Remove it.
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Info(msg)

	if len(w.tail) == tailLines {
		w.tail = w.tail[1:]
	}
	w.tail = append(w.tail, msg)
}
