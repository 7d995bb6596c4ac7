package cmd

import (
	"path/filepath"

	"github.com/dendrascience/txtbundle/bundle"
	"github.com/dendrascience/txtbundle/util"
	"github.com/spf13/cobra"
)

// NewConcatCmd creates the concat subcommand, which bundles every regular
// file matching a glob pattern into one stream.
func NewConcatCmd(a *app) *cobra.Command {
	var (
		output    string
		directory string
		regex     bool
	)

	cmd := &cobra.Command{
		Use:   "concat PATTERN",
		Short: "Bundle files matching a glob or regex pattern",
		Long: `Bundle every regular file matching PATTERN into a single stream.

Files are added in lexicographic path order and named by their base name, so
two matches with the same base name are an error. The bundle is written to
stdout unless --output is given. A pattern that matches nothing produces a
valid empty bundle.

PATTERN is a glob unless it starts with "^" or --regex is set. A regex is
matched against the names of the files directly inside the search directory.`,
		Example: `  txtbundle concat '*.go' -o bundle.txt
  txtbundle concat '*.md' --framing sentinel -C docs
  txtbundle concat '^test_.*\.py$' -C tests`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConcat(cmd, a, args[0], output, directory, regex)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the bundle to this file instead of stdout")
	cmd.Flags().StringVarP(&directory, "directory", "C", "", "Resolve PATTERN relative to this directory")
	cmd.Flags().BoolVar(&regex, "regex", false, "Treat PATTERN as a regular expression")
	cmd.Flags().String("framing", bundle.LengthPrefixed.String(), "Frame delimiting: length or sentinel")

	return cmd
}

func runConcat(cmd *cobra.Command, a *app, pattern, output, directory string, regex bool) error {
	strategy, err := a.cfg.Strategy()
	if err != nil {
		return a.fail("concat failed", err)
	}
	codec, err := bundle.NewCodec(strategy)
	if err != nil {
		return a.fail("concat failed", err)
	}

	paths, err := util.ResolvePattern(directory, pattern, regex)
	if err != nil {
		return a.fail("concat failed", err)
	}
	paths = excludePath(paths, output)
	if len(paths) == 0 {
		a.logger.Warn("no files matched, writing an empty bundle", "pattern", pattern)
	}

	data, err := bundle.NewEncoder(codec, util.OSReader{}).Encode(paths)
	if err != nil {
		return a.fail("concat failed", err)
	}

	if output == "" || output == "-" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return a.fail("concat failed", err)
		}
	} else if err := util.WriteFileAtomic(output, data, 0o644); err != nil {
		return a.fail("concat failed", err)
	}

	a.logger.Debug("bundle written", "files", len(paths), "bytes", len(data), "framing", strategy)
	return nil
}

// excludePath drops the bundle's own output file from the inputs so that
// re-running concat does not bundle the previous result.
func excludePath(paths []string, output string) []string {
	if output == "" || output == "-" {
		return paths
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return paths
	}
	kept := paths[:0]
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil && abs == out {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
