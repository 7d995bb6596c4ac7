package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/txtbundle/bundle"
	"github.com/dendrascience/txtbundle/util"
	"github.com/spf13/cobra"
)

// NewSplitCmd creates the split subcommand, which writes the files of a
// bundle into a directory.
func NewSplitCmd(a *app) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "split [INPUT]",
		Short: "Write the files of a bundle into a directory",
		Long: `Decode a bundle and write each of its files into the output directory.

The bundle is read from INPUT, or from stdin when INPUT is omitted or "-".
Nothing is written unless the whole bundle decodes, and existing files are
left alone unless --overwrite is set. If any file cannot be written, none
of the bundle's files are left behind.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return runSplit(cmd, a, input, outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", ".", "Directory to write the files into")
	cmd.Flags().Bool("overwrite", false, "Replace files that already exist")

	return cmd
}

func runSplit(cmd *cobra.Command, a *app, input, outputDir string) error {
	data, err := readInput(cmd, input)
	if err != nil {
		return a.fail("split failed", err)
	}

	b, err := bundle.Split(data, outputDir, util.DirWriter{Overwrite: a.cfg.Overwrite})
	if err != nil {
		return a.fail("split failed", err)
	}

	a.logger.Debug("bundle split", "files", len(b), "bytes", b.Size(), "dir", outputDir)
	return nil
}

// readInput reads a whole bundle from path, or from the command's stdin
// when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, util.ErrExpectedFile)
	}
	return os.ReadFile(path)
}
