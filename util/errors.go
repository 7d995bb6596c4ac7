package util

import (
	"errors"
	"fmt"
)

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Pattern errors
	ErrInvalidPattern    = errors.New("invalid glob pattern")
	ErrInvalidRegex      = errors.New("invalid regex pattern")
	ErrSearchDirNotFound = errors.New("search directory not found")

	// Write errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrPathConflict     = errors.New("path conflict")

	// Verify errors
	ErrContentMismatch = errors.New("content mismatch")
)

// WriteError reports a failure to materialize one output path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
