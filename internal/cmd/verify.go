package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dendrascience/txtbundle/bundle"
	"github.com/dendrascience/txtbundle/util"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify subcommand. It checks that a bundle
// decodes and, with --against, that a directory holds the same files.
func NewVerifyCmd(a *app) *cobra.Command {
	var against string

	cmd := &cobra.Command{
		Use:   "verify [INPUT]",
		Short: "Check a bundle, optionally against a directory",
		Long: `Decode a bundle completely and report whether it is well formed.

With --against DIR, the SHA-256 digest of every file in the bundle is also
compared with that of the file of the same name in DIR. Missing or differing files are listed
and the command fails. Extra files in DIR are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return runVerify(cmd, a, input, against)
		},
	}

	cmd.Flags().StringVar(&against, "against", "", "Directory to compare the bundle's files with")

	return cmd
}

func runVerify(cmd *cobra.Command, a *app, input, against string) error {
	data, err := readInput(cmd, input)
	if err != nil {
		return a.fail("verify failed", err)
	}
	b, err := bundle.Decode(data)
	if err != nil {
		return a.fail("verify failed", err)
	}

	out := cmd.OutOrStdout()
	if against == "" {
		fmt.Fprintf(out, "ok: %d files, %d bytes\n", len(b), b.Size())
		return nil
	}

	mismatches, err := compareDir(b, against)
	if err != nil {
		return a.fail("verify failed", err)
	}
	for _, m := range mismatches {
		fmt.Fprintf(out, "%s: %s\n", m.status, m.name)
	}
	if len(mismatches) > 0 {
		return a.fail("verify failed", fmt.Errorf("%w: %d of %d files differ from %s",
			util.ErrContentMismatch, len(mismatches), len(b), against))
	}
	fmt.Fprintf(out, "ok: %d files match %s\n", len(b), against)
	return nil
}

type mismatch struct {
	name   string
	status string
}

// compareDir reports every record of b whose counterpart in dir is missing
// or has different content.
func compareDir(b bundle.Bundle, dir string) ([]mismatch, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, util.ErrExpectedDirectory)
	}

	var mismatches []mismatch
	for _, rec := range b {
		hash, err := util.GetFileHash(filepath.Join(dir, rec.Name))
		switch {
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, util.ErrExpectedFile):
			mismatches = append(mismatches, mismatch{name: rec.Name, status: "missing"})
		case err != nil:
			return nil, err
		case hash != util.ContentHash(rec.Content):
			mismatches = append(mismatches, mismatch{name: rec.Name, status: "differs"})
		}
	}
	return mismatches, nil
}
