package bundlefs

import (
	"context"
	"errors"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// Serve mounts filesystem read-only at mountpoint and serves it until ctx
// is cancelled or the kernel unmounts it.
func Serve(ctx context.Context, mountpoint string, filesystem *FS) error {
	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("txtbundle"),
		fuse.Subtype("txtbundle"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	served := make(chan error, 1)
	go func() {
		served <- fs.Serve(c, filesystem)
	}()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
		if err := fuse.Unmount(mountpoint); err != nil {
			return errors.Join(ctx.Err(), err)
		}
		return <-served
	}
}
