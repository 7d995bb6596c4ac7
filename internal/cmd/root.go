package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/dendrascience/txtbundle/internal/config"
	"github.com/dendrascience/txtbundle/internal/logging"
	"github.com/dendrascience/txtbundle/version"
	"github.com/spf13/cobra"
)

// app carries the resolved configuration and logger to every subcommand.
// It is filled in by the root command's PersistentPreRunE.
type app struct {
	cfg    config.Config
	logger *log.Logger
}

// fail logs err with its structured fields and hands it back for cobra to
// turn into a non-zero exit.
func (a *app) fail(msg string, err error) error {
	if a.logger != nil {
		logging.LogError(a.logger, msg, err)
	}
	return err
}

// NewRootCmd creates and returns the root cobra command for the txtbundle CLI.
// It sets up all subcommands, command groups, and the shared flags.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "txtbundle",
		Short: "txtbundle - Concatenate files into one delimited text stream and split them back",
		Long: `txtbundle concatenates a set of files into a single self-describing text
stream and splits such a stream back into the original files, byte for byte.

Each file becomes a frame delimited by header and footer lines. Two framings
are available: "length" declares the content size in the header, "sentinel"
escapes content lines that could be mistaken for a delimiter.

Use subcommands to perform different operations:
  - concat: Bundle files matching a glob pattern
  - split: Write the files of a bundle into a directory
  - list: Show the files inside a bundle
  - verify: Check a bundle, optionally against a directory
  - mount: Mount a bundle as a read-only filesystem
  - seed: Generate awkward test files
  - version: Show build information`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a config file (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultConfig().LogLevel, "Log level (debug, info, warn, error)")

	groupBundle := "bundle"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupBundle,
		Title: "Bundle Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	concatCmd := NewConcatCmd(a)
	splitCmd := NewSplitCmd(a)
	listCmd := NewListCmd(a)
	verifyCmd := NewVerifyCmd(a)
	mountCmd := NewMountCmd(a)
	seedCmd := NewSeedCmd(a)
	versionCmd := NewVersionCmd()

	concatCmd.GroupID = groupBundle
	splitCmd.GroupID = groupBundle
	listCmd.GroupID = groupBundle
	verifyCmd.GroupID = groupBundle
	mountCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(concatCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
