// Package rustc queries the active Rust toolchain.
package rustc

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Inspector implements ports.ToolchainInspector by running rustc.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Executable returns the rustc binary to run, honoring $RUSTC.
func Executable() string {
	if r := os.Getenv(domain.EnvRustc); r != "" {
		return r
	}
	return "rustc"
}

// Inspect reads the version information and sysroot of rustc. Both queries
// run concurrently and the first failure cancels the other.
func (p *Inspector) Inspect(ctx context.Context) (domain.Toolchain, error) {
	var out, sysroot []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out, err = run(gctx, "-vV")
		return err
	})
	g.Go(func() (err error) {
		sysroot, err = run(gctx, "--print", "sysroot")
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Toolchain{}, err
	}

	tc := parseVersion(out)
	if tc.Host == "" || tc.Release == "" {
		return domain.Toolchain{}, zerr.With(domain.ErrToolchainQueryFailed, "output", strings.TrimSpace(string(out)))
	}
	tc.Sysroot = strings.TrimSpace(string(sysroot))

	if src := os.Getenv(domain.EnvRustSrc); src != "" {
		tc.Src = src
	} else {
		tc.Src = filepath.Join(tc.Sysroot, "lib", "rustlib", "src", "rust", "library")
	}

	return tc, nil
}

// TargetList returns the builtin targets of rustc.
func (p *Inspector) TargetList(ctx context.Context) ([]string, error) {
	out, err := run(ctx, "--print", "target-list")
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(out)), nil
}

func run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, Executable(), args...) //nolint:gosec // rustc is user configured
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrToolchainQueryFailed.Error())
		wrapped = zerr.With(wrapped, "command", strings.Join(append([]string{cmd.Path}, args...), " "))
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = zerr.With(wrapped, "stderr", msg)
		}
		return nil, wrapped
	}
	return out, nil
}

// parseVersion reads the "key: value" lines of rustc -vV.
func parseVersion(out []byte) domain.Toolchain {
	var tc domain.Toolchain

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "host":
			tc.Host = value
		case "release":
			tc.Release = value
		case "commit-hash":
			if value != "unknown" {
				tc.CommitHash = value
			}
		}
	}
	tc.Channel = domain.ParseChannel(tc.Release)

	return tc
}
