package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newSysrootCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "sysroot [--target <triple>] [--manifest-path <path>]",
		Short:              "Build the sysroot if needed and print its path",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv := app.ParseInvocation(args)
			c.configure(inv)

			cwd, err := c.getwd()
			if err != nil {
				return err
			}

			root, err := c.app.Sysroot(cmd.Context(), cwd, inv)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), root)
			return err
		},
	}
}
