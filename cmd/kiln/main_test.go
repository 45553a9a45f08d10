package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/sysroot"
	"go.uber.org/mock/gomock"
)

type harness struct {
	loader *mocks.MockConfigLoader
	rustc  *mocks.MockToolchainInspector
	driver *mocks.MockDriver
	logger *mocks.MockLogger
	app    *app.App
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		loader: mocks.NewMockConfigLoader(ctrl),
		rustc:  mocks.NewMockToolchainInspector(ctrl),
		driver: mocks.NewMockDriver(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	builder := sysroot.NewBuilder(mocks.NewMockKeyHasher(ctrl), h.driver, h.logger, telemetry.NewNoOpTracer())
	h.app = app.New(h.loader, h.rustc, h.driver, builder, h.logger).WithNotice(io.Discard)
	return h
}

func (h *harness) provider(context.Context) (*app.Components, func(), error) {
	return &app.Components{App: h.app, Logger: h.logger}, func() {}, nil
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	h := newHarness(t)

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), h.provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_StripsCargoSubcommandName verifies that "cargo kiln version" works.
func TestRun_StripsCargoSubcommandName(t *testing.T) {
	h := newHarness(t)

	exitCode := run(context.Background(), []string{"kiln", "version"}, new(bytes.Buffer), h.provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that errors are logged and map to exit code 1.
func TestRun_ExecutionError(t *testing.T) {
	h := newHarness(t)
	rustcErr := errors.New("rustc not found")
	h.rustc.EXPECT().Inspect(gomock.Any()).Return(domain.Toolchain{}, rustcErr)
	h.logger.EXPECT().Error(rustcErr)

	exitCode := run(context.Background(), []string{"build"}, io.Discard, h.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_PropagatesCargoExitCode verifies that cargo's exit code is returned
// without logging an error.
func TestRun_PropagatesCargoExitCode(t *testing.T) {
	h := newHarness(t)
	cwd := t.TempDir()
	t.Chdir(cwd)

	h.rustc.EXPECT().Inspect(gomock.Any()).Return(domain.Toolchain{Host: "x86_64-unknown-linux-gnu"}, nil)
	h.rustc.EXPECT().TargetList(gomock.Any()).Return([]string{"x86_64-unknown-linux-gnu"}, nil)
	h.loader.EXPECT().LoadProject(gomock.Any(), "").Return(&domain.Project{Root: cwd, Config: domain.DefaultConfig()}, nil)
	h.loader.EXPECT().LoadCargoConfig(gomock.Any()).Return(&domain.CargoConfig{}, nil)
	h.driver.EXPECT().Run(gomock.Any(), []string{"build", "--target", "no-such-target"}, gomock.Nil()).Return(3, nil)

	exitCode := run(context.Background(), []string{"build", "--target", "no-such-target"}, io.Discard, h.provider)
	assert.Equal(t, 3, exitCode)
}

// TestRun_Canceled verifies that a canceled context reaches the command.
func TestRun_Canceled(t *testing.T) {
	h := newHarness(t)
	h.rustc.EXPECT().Inspect(gomock.Any()).DoAndReturn(func(ctx context.Context) (domain.Toolchain, error) {
		<-ctx.Done()
		return domain.Toolchain{}, ctx.Err()
	})
	h.logger.EXPECT().Error(gomock.Any())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exitCode := run(ctx, []string{"check"}, io.Discard, h.provider)
	assert.NotEqual(t, 0, exitCode)
}
