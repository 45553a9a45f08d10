package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/cmd/kiln/commands"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
)

type mockApp struct {
	buildFunc   func(ctx context.Context, cwd string, inv app.Invocation) (int, error)
	sysrootFunc func(ctx context.Context, cwd string, inv app.Invocation) (string, error)
	cleanFunc   func(ctx context.Context, cwd, manifestPath string) error
}

func (m *mockApp) Build(ctx context.Context, cwd string, inv app.Invocation) (int, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, cwd, inv)
	}
	return 0, nil
}

func (m *mockApp) Sysroot(ctx context.Context, cwd string, inv app.Invocation) (string, error) {
	if m.sysrootFunc != nil {
		return m.sysrootFunc(ctx, cwd, inv)
	}
	return "", nil
}

func (m *mockApp) Clean(ctx context.Context, cwd, manifestPath string) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, cwd, manifestPath)
	}
	return nil
}

func newCLI(t *testing.T, a commands.Application) (*commands.CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	lg := logger.New().(*logger.Logger)
	lg.SetOutput(new(bytes.Buffer))

	cli := commands.New(a, lg)
	cli.SetWorkingDir("/work/firmware")
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	return cli, out
}

func TestCommands_Passthrough(t *testing.T) {
	for _, sub := range []string{"build", "check", "test", "doc", "run", "clippy", "rustc"} {
		t.Run(sub, func(t *testing.T) {
			var captured app.Invocation
			var capturedCwd string
			mock := &mockApp{
				buildFunc: func(_ context.Context, cwd string, inv app.Invocation) (int, error) {
					captured = inv
					capturedCwd = cwd
					return 0, nil
				},
			}

			cli, _ := newCLI(t, mock)
			cli.SetArgs([]string{sub, "--target", "thumbv7em-none-eabihf", "--release"})

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, "/work/firmware", capturedCwd)
			assert.Equal(t, []string{sub, "--target", "thumbv7em-none-eabihf", "--release"}, captured.Args)
			assert.Equal(t, "thumbv7em-none-eabihf", captured.Target)
		})
	}
}

func TestCommands_PassthroughExitCode(t *testing.T) {
	mock := &mockApp{
		buildFunc: func(context.Context, string, app.Invocation) (int, error) {
			return 101, nil
		},
	}

	cli, _ := newCLI(t, mock)
	cli.SetArgs([]string{"test", "-q"})

	err := cli.Execute(context.Background())
	var exitErr *commands.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 101, exitErr.Code)
}

func TestCommands_PassthroughError(t *testing.T) {
	mock := &mockApp{
		buildFunc: func(context.Context, string, app.Invocation) (int, error) {
			return 1, errors.New("simulated error")
		},
	}

	cli, _ := newCLI(t, mock)
	cli.SetArgs([]string{"build", "-v"})

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_Sysroot(t *testing.T) {
	var captured app.Invocation
	mock := &mockApp{
		sysrootFunc: func(_ context.Context, _ string, inv app.Invocation) (string, error) {
			captured = inv
			return "/work/firmware/target/sysroot", nil
		},
	}

	cli, out := newCLI(t, mock)
	cli.SetArgs([]string{"sysroot", "--target=riscv32imac-unknown-none-elf"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "riscv32imac-unknown-none-elf", captured.Target)
	assert.Equal(t, "/work/firmware/target/sysroot\n", out.String())
}

func TestCommands_Clean(t *testing.T) {
	var manifest string
	mock := &mockApp{
		cleanFunc: func(_ context.Context, _ string, manifestPath string) error {
			manifest = manifestPath
			return nil
		},
	}

	cli, _ := newCLI(t, mock)
	cli.SetArgs([]string{"clean", "--manifest-path", "other/Cargo.toml"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "other/Cargo.toml", manifest)
}

func TestCommands_Version(t *testing.T) {
	cli, out := newCLI(t, &mockApp{})
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "kiln version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out.String())
}

func TestCommands_UnknownCommand(t *testing.T) {
	cli, _ := newCLI(t, &mockApp{})
	cli.SetArgs([]string{"frobnicate"})

	require.Error(t, cli.Execute(context.Background()))
}
