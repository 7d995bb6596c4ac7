package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dendrascience/txtbundle/bundle"
	"github.com/dendrascience/txtbundle/util"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list subcommand, which prints the contents of a
// bundle without writing any files.
func NewListCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "list [INPUT]",
		Short: "Show the files inside a bundle",
		Long: `Decode a bundle and print one row per file: its name, size and a short
content address. The address is a color-hash bucket followed by the start of
the file's SHA-256 digest, so identical files share an address.

The bundle is read from INPUT, or from stdin when INPUT is omitted or "-".
With --output the JSON listing is saved to a file instead; a path without a
.json suffix is treated as a directory and gets a metadata.json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return runList(cmd, a, input, asJSON, output)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the listing as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Save the JSON listing to this file or directory")

	return cmd
}

func runList(cmd *cobra.Command, a *app, input string, asJSON bool, output string) error {
	data, err := readInput(cmd, input)
	if err != nil {
		return a.fail("list failed", err)
	}
	b, err := bundle.Decode(data)
	if err != nil {
		return a.fail("list failed", err)
	}
	strategy := bundle.LengthPrefixed
	if len(data) > 0 {
		// Decode already validated the preamble
		strategy, _ = bundle.DetectStrategy(data)
	}

	meta := util.GenerateMetadata(b, strategy)
	if output != "" {
		if err := meta.Save(output); err != nil {
			return a.fail("list failed", err)
		}
		a.logger.Debug("listing saved", "path", output, "files", meta.FileCount)
		return nil
	}
	if asJSON {
		je := json.NewEncoder(cmd.OutOrStdout())
		je.SetIndent("", "  ")
		if err := je.Encode(meta); err != nil {
			return a.fail("list failed", err)
		}
		return nil
	}
	printListing(cmd.OutOrStdout(), meta)
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true)

func printListing(w io.Writer, meta util.Metadata) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("NAME", "SIZE", "ADDRESS")
	for e := range meta.Iterate {
		t.Row(e.Name, strconv.Itoa(e.Size), e.Address)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d files, %d bytes, framing %s\n", meta.FileCount, meta.TotalSize, meta.Strategy)
}
