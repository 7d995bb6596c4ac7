package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dendrascience/txtbundle/bundlefs"
	"github.com/dendrascience/txtbundle/version"
	"github.com/spf13/cobra"
)

// ErrMountOverlap is returned when the bundle file would be hidden by its
// own mount.
var ErrMountOverlap = errors.New("bundle file lies inside the mountpoint")

// NewMountCmd creates and returns the mount subcommand for the txtbundle CLI.
func NewMountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mount BUNDLE MOUNTPOINT",
		Short: "Mount a bundle as a read-only filesystem",
		Long: `Mount a bundle read-only at MOUNTPOINT using FUSE.

Each file of the bundle appears as a regular file directly under MOUNTPOINT.
The bundle is decoded in full before mounting, so a damaged bundle is
reported and nothing is mounted. Interrupt the command to unmount.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(cmd.Context(), a, args[0], args[1])
		},
	}
}

func runMount(ctx context.Context, a *app, bundlePath, mountpoint string) error {
	if isWithin(bundlePath, mountpoint) {
		return a.fail("mount failed", fmt.Errorf("%w: %s", ErrMountOverlap, bundlePath))
	}

	filesystem, err := bundlefs.Load(bundlePath)
	if err != nil {
		return a.fail("mount failed", err)
	}

	a.logger.Info("mounting bundle", "version", version.GetVersion(), "bundle", bundlePath,
		"mountpoint", mountpoint, "files", filesystem.Len())
	if err := bundlefs.Serve(ctx, mountpoint, filesystem); err != nil && !errors.Is(err, context.Canceled) {
		return a.fail("mount failed", err)
	}
	a.logger.Info("unmounted", "mountpoint", mountpoint)
	return nil
}

// isWithin reports whether path equals dir or lies below it.
func isWithin(path, dir string) bool {
	p, err1 := filepath.Abs(path)
	d, err2 := filepath.Abs(dir)
	if err1 != nil || err2 != nil {
		return false
	}
	if p == d {
		return true
	}
	return strings.HasPrefix(p, d+string(filepath.Separator))
}
