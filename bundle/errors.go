package bundle

import (
	"errors"
	"fmt"
)

// Sentinel errors for package bundle.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Decode errors
	ErrMalformedHeader   = errors.New("malformed header")
	ErrTruncatedStream   = errors.New("truncated stream")
	ErrDuplicateFileName = errors.New("duplicate file name")
	ErrTrailingGarbage   = errors.New("trailing garbage")
	ErrInvalidName       = errors.New("invalid file name")

	// Encode errors
	ErrFileUnreadable = errors.New("file unreadable")

	// Codec errors
	ErrUnknownStrategy = errors.New("unknown framing strategy")
)

// EncodeError reports a failure to bundle one input path.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports where in a stream parsing failed. Offset is the byte
// offset of the offending line and Line is its 1-based line number.
type DecodeError struct {
	Offset int
	Line   int
	Name   string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("decode line %d (offset %d, file %q): %v", e.Line, e.Offset, e.Name, e.Err)
	}
	return fmt.Sprintf("decode line %d (offset %d): %v", e.Line, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// decodeErr builds a DecodeError for data at off, counting lines up to off.
func decodeErr(data []byte, off int, name string, err error, detail string) error {
	if off > len(data) {
		off = len(data)
	}
	line := 1
	for _, b := range data[:off] {
		if b == '\n' {
			line++
		}
	}
	if detail != "" {
		err = fmt.Errorf("%w: %s", err, detail)
	}
	return &DecodeError{Offset: off, Line: line, Name: name, Err: err}
}

// ErrorKind maps an error from this package to a stable snake_case label
// suitable for log fields. Unknown errors map to "error".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, ErrTruncatedStream):
		return "truncated_stream"
	case errors.Is(err, ErrDuplicateFileName):
		return "duplicate_file_name"
	case errors.Is(err, ErrTrailingGarbage):
		return "trailing_garbage"
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ErrFileUnreadable):
		return "file_unreadable"
	case errors.Is(err, ErrUnknownStrategy):
		return "unknown_strategy"
	}
	return "error"
}
