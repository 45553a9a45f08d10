package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the sysroot of the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest-path")
			c.configure(app.Invocation{})

			cwd, err := c.getwd()
			if err != nil {
				return err
			}

			return c.app.Clean(cmd.Context(), cwd, manifestPath)
		},
	}

	cmd.Flags().String("manifest-path", "", "Path to Cargo.toml")

	return cmd
}
