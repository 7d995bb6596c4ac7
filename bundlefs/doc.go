// Package bundlefs serves a decoded txtbundle stream as a read-only FUSE
// filesystem.
//
// The mount has a single directory containing one regular file per record,
// listed in bundle order. Files are mode 0444, the directory 0555, and all
// timestamps equal the modification time of the bundle file. Content is kept
// in memory for the lifetime of the mount.
package bundlefs
