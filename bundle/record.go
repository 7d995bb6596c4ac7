package bundle

import (
	"fmt"
	"strings"
)

// FileRecord is one named file inside a bundle.
type FileRecord struct {
	Name    string
	Content []byte
}

// Bundle is an ordered set of file records. Order is significant: it is the
// glob order on encode and the frame order on decode.
type Bundle []FileRecord

// Names returns the record names in bundle order.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b))
	for _, rec := range b {
		names = append(names, rec.Name)
	}
	return names
}

// Size returns the total content size in bytes.
func (b Bundle) Size() int {
	total := 0
	for _, rec := range b {
		total += len(rec.Content)
	}
	return total
}

// ValidateName reports whether name can be used as a record name. Names are
// flat: no path separators, no line breaks, no NUL, and not "." or "..".
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.ContainsAny(name, "\x00\r\n"):
		return fmt.Errorf("%w: %q contains a control character", ErrInvalidName, name)
	}
	return nil
}
