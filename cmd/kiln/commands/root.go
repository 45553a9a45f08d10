// Package commands implements the CLI commands for kiln.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/adapters/detector"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// ExitError carries the exit code of a cargo run that did not succeed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("cargo exited with status %d", e.Code)
}

// CLI represents the command line interface for kiln.
type CLI struct {
	app      Application
	logger   ports.Logger
	rootCmd  *cobra.Command
	getwd    func() (string, error)
	shutdown []func(context.Context) error
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, cwd string, inv app.Invocation) (int, error)
	Sysroot(ctx context.Context, cwd string, inv app.Invocation) (string, error)
	Clean(ctx context.Context, cwd, manifestPath string) error
}

// logConfigurer is implemented by loggers whose verbosity and format can change.
type logConfigurer interface {
	SetQuiet(quiet bool)
	SetVerbose(verbose bool)
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "Build and cache custom Rust sysroots for cargo",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
		getwd:   os.Getwd,
	}

	for _, sub := range passthroughCommands {
		rootCmd.AddCommand(c.newPassthroughCmd(sub.name, sub.short))
	}
	rootCmd.AddCommand(c.newSysrootCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()

	for _, fn := range c.shutdown {
		_ = fn(ctx)
	}
	c.shutdown = nil

	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetWorkingDir pins the directory commands run in. Used for testing.
func (c *CLI) SetWorkingDir(dir string) {
	c.getwd = func() (string, error) { return dir, nil }
}

// configure applies the output options of inv to the logger and, in verbose
// mode, reports how long each sysroot stage took.
func (c *CLI) configure(inv app.Invocation) {
	lc, ok := c.logger.(logConfigurer)
	if !ok {
		return
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), os.Getenv(domain.EnvOutput))
	lc.SetJSON(mode == detector.ModeJSON)
	lc.SetQuiet(inv.Quiet)
	lc.SetVerbose(inv.Verbose)

	if inv.Verbose {
		c.shutdown = append(c.shutdown, telemetry.Setup(c.logger, 0))
	}
}
