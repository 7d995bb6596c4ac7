// Package cmd implements the txtbundle command-line interface.
//
// Every subcommand is built by a NewXxxCmd constructor and attached to the
// root command returned by NewRootCmd. The root command resolves the
// configuration (flags, TXTBUNDLE_* environment, optional --config file)
// and builds the stderr logger before any subcommand runs.
//
// Failures are logged with a stable "kind" field and, where known, the
// offending path or stream offset and line, then returned so the process
// exits non-zero.
package cmd
