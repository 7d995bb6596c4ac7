package logging

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dendrascience/txtbundle/bundle"
	"github.com/dendrascience/txtbundle/util"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "txtbundle",
		Level:  lvl,
	}), nil
}

// ErrorFields flattens err into key/value pairs for structured logging:
// always "kind", plus "path", "offset", "line" and "name" when the error
// carries them.
func ErrorFields(err error) []any {
	fields := []any{"kind", Kind(err)}

	var encErr *bundle.EncodeError
	var decErr *bundle.DecodeError
	var writeErr *util.WriteError
	switch {
	case errors.As(err, &encErr):
		fields = append(fields, "path", encErr.Path)
	case errors.As(err, &decErr):
		fields = append(fields, "offset", decErr.Offset, "line", decErr.Line)
		if decErr.Name != "" {
			fields = append(fields, "name", decErr.Name)
		}
	case errors.As(err, &writeErr):
		fields = append(fields, "path", writeErr.Path)
	}
	return fields
}

// Kind extends bundle.ErrorKind with the filesystem error classes.
func Kind(err error) string {
	switch {
	case errors.Is(err, util.ErrPathConflict):
		return "path_conflict"
	case errors.Is(err, util.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, util.ErrInvalidPattern):
		return "invalid_pattern"
	case errors.Is(err, util.ErrInvalidRegex):
		return "invalid_regex"
	case errors.Is(err, util.ErrSearchDirNotFound):
		return "search_directory_not_found"
	case errors.Is(err, util.ErrContentMismatch):
		return "content_mismatch"
	}
	return bundle.ErrorKind(err)
}

// LogError reports err on logger at error level with ErrorFields attached.
func LogError(logger *log.Logger, msg string, err error) {
	fields := append(ErrorFields(err), "err", err)
	logger.Error(msg, fields...)
}
