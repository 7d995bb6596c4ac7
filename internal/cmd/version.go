package cmd

import (
	"github.com/dendrascience/txtbundle/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version subcommand, which prints the full build
// information that --version abbreviates.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion(cmd.OutOrStdout(), version.Package)
		},
	}
}
