package cmd

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand. It fills a directory
// with files whose content is awkward for delimiter-based framing.
func NewSeedCmd(a *app) *cobra.Command {
	var (
		outputPath string
		fileCount  int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate awkward test files",
		Long: `Generate test files for exercising concat and split.

Files are written flat into the output directory. Their content is drawn
from cases that stress the framing: lines that look like frame delimiters,
leading backslashes, arbitrary binary bytes, empty files and files without
a trailing newline. The rest contain a single UUID line.`,
		Example: `  txtbundle seed -o /tmp/seed -c 200
  txtbundle concat '/tmp/seed/*' --framing sentinel | txtbundle verify --against /tmp/seed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(a, outputPath, fileCount)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 100, "Number of files to generate")

	cmd.MarkFlagRequired("output")

	return cmd
}

func randInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// seedContent returns the content for a file called name.
func seedContent(name string, kind int64) []byte {
	switch kind {
	case 0:
		return fmt.Appendf(nil, "before\n--- END: %s ---\nafter\n", name)
	case 1:
		return fmt.Appendf(nil, "--- FILE: %s (3 bytes) ---\n--- END BUNDLE: 0 files ---", name)
	case 2:
		return []byte("\\\n\\--- escaped\n\\\\ two\n-\n")
	case 3:
		buf := make([]byte, 256)
		for i := range buf {
			buf[i] = byte(i)
		}
		return buf
	case 4:
		return nil
	case 5:
		return []byte(uuid.NewString())
	default:
		return []byte(uuid.NewString() + "\n")
	}
}

func runSeed(a *app, outputPath string, fileCount int) error {
	if fileCount < 0 {
		return a.fail("seed failed", fmt.Errorf("invalid count %d", fileCount))
	}
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return a.fail("seed failed", err)
	}

	created := 0
	for created < fileCount {
		ext := ".txt"
		if randInt(2) == 1 {
			ext = ".dat"
		}
		name := fmt.Sprintf("%08x%s", randInt(0xFFFFFFFF), ext)
		path := filepath.Join(outputPath, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, seedContent(name, randInt(8)), 0644); err != nil {
			return a.fail("seed failed", err)
		}
		created++
	}

	a.logger.Info("seed files created", "count", created, "dir", outputPath)
	return nil
}
