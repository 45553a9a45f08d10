package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Status(t *testing.T) {
	tests := []struct {
		name       string
		verb       string
		msg        string
		goldenName string
	}{
		{name: "compiling", verb: "Compiling", msg: "core", goldenName: "status_compiling"},
		{name: "blocking", verb: "Blocking", msg: "waiting for file lock on x86_64-unknown-linux-gnu's sysroot", goldenName: "status_blocking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Status(tt.verb, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("sysroot is up to date")

	g := goldie.New(t)
	g.Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("couldn't copy host sysroot")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name: "zerr chain with metadata",
			err: zerr.With(
				zerr.Wrap(errors.New("exit status 101"), domain.ErrCrateBuildFailed.Error()),
				"crate", "core",
			),
			goldenName: "error_chain_metadata",
		},
		{
			name: "metadata on std cause",
			err: zerr.Wrap(
				zerr.With(errors.New("permission denied"), "path", "/tmp/lock"),
				"failed to open lock file",
			),
			goldenName: "error_chain_std_metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_StdlibChain(t *testing.T) {
	inner := errors.New("no such file or directory")
	outer := fmt.Errorf("failed to read Cargo.toml: %w", inner)

	lg, buf := newTestLogger(t)
	lg.Error(outer)

	assert.Equal(t, "✗ Error: failed to read Cargo.toml: no such file or directory\n", buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String(), "Expected no output for nil error")
}

func TestLogger_Quiet(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetQuiet(true)

	lg.Status("Compiling", "core")
	lg.Info("hidden")
	lg.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Status("Compiling", "alloc")
	lg.Error(zerr.Wrap(errors.New("boom"), "failed to build"))

	out := buf.String()
	assert.Contains(t, out, `"verb":"Compiling"`)
	assert.Contains(t, out, `"msg":"alloc"`)
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"msg":"failed to build: boom"`)
	assert.NotContains(t, out, "✗", "JSON format should not have pretty markers")
}

func TestLogger_SetOutput_Nil(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetOutput(nil)

	require.Equal(t, os.Stderr, lg.Output())
}
