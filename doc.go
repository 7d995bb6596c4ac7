// Package main provides the txtbundle command-line interface.
//
// txtbundle concatenates a flat set of files into one delimited text stream
// and splits such a stream back into byte-identical files. The stream is
// plain text wherever the input files are, so a bundle can be pasted into a
// chat, diffed or stored alongside the sources.
//
// The binary supports these subcommands:
//   - concat: Bundle files matching a glob pattern
//   - split: Write the files of a bundle into a directory
//   - list: Show the files inside a bundle
//   - verify: Check a bundle, optionally against a directory
//   - mount: Mount a bundle as a read-only FUSE filesystem
//   - seed: Generate awkward test files
package main
