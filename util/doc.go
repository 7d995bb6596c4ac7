// Package util provides the filesystem collaborators around the bundle codec.
//
// The bundle package is a pure parser and encoder; everything that touches
// the disk lives here:
//
// Input:
//   - ResolveGlob expands a pattern into a sorted list of regular files
//   - OSReader reads whole files for the Encoder and rejects directories
//
// Output:
//   - DirWriter materializes a decoded bundle all-or-nothing, staging every
//     file in a uuid-named directory before moving it into place
//   - Existing files are never replaced unless Overwrite is set
//
// Inspection:
//   - SHA-256 content digests and short bucketed content addresses
//   - Metadata summaries of a bundle, persisted as JSON
//
// Inode allocation for the read-only mount also lives here so that every
// mounted node gets a stable, unique number.
package util
