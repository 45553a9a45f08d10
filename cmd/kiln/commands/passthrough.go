package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

// passthroughCommands are cargo subcommands kiln runs against the sysroot.
var passthroughCommands = []struct {
	name  string
	short string
}{
	{name: "build", short: "Compile the current package against the custom sysroot"},
	{name: "check", short: "Check the current package against the custom sysroot"},
	{name: "test", short: "Run the tests of the current package"},
	{name: "doc", short: "Document the current package"},
	{name: "run", short: "Run a binary of the current package"},
	{name: "clippy", short: "Lint the current package with clippy"},
	{name: "rustc", short: "Compile the current package with extra rustc flags"},
}

func (c *CLI) newPassthroughCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:                name + " [cargo args]",
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv := app.ParseInvocation(append([]string{name}, args...))
			c.configure(inv)

			cwd, err := c.getwd()
			if err != nil {
				return err
			}

			code, err := c.app.Build(cmd.Context(), cwd, inv)
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
}
