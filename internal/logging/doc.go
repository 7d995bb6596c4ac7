// Package logging builds the charmbracelet/log logger used by the CLI and
// turns txtbundle errors into structured log fields.
package logging
