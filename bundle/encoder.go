package bundle

import (
	"errors"
	"path/filepath"
)

// FileReader reads the full content of one file.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// FileWriter materializes a decoded bundle into dir. Implementations must
// be all-or-nothing: on error no file of the bundle is left behind.
type FileWriter interface {
	WriteFiles(dir string, b Bundle) error
}

// Encoder bundles files from disk into one stream.
type Encoder struct {
	Codec  Codec
	Reader FileReader
}

// NewEncoder returns an Encoder using codec c and reader r.
func NewEncoder(c Codec, r FileReader) *Encoder {
	return &Encoder{Codec: c, Reader: r}
}

// Encode reads every path in order and returns the encoded stream. Each
// record is named after the base name of its path. The first unreadable
// path aborts the whole bundle.
func (e *Encoder) Encode(paths []string) ([]byte, error) {
	b, err := e.Collect(paths)
	if err != nil {
		return nil, err
	}
	return EncodeStream(e.Codec, b)
}

// Collect reads paths into a Bundle without encoding it.
func (e *Encoder) Collect(paths []string) (Bundle, error) {
	b := make(Bundle, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		if err := ValidateName(name); err != nil {
			return nil, &EncodeError{Path: path, Err: err}
		}
		if prev, dup := seen[name]; dup {
			return nil, &EncodeError{Path: path, Err: errors.Join(ErrDuplicateFileName,
				errors.New("same name as "+prev))}
		}
		seen[name] = path

		content, err := e.Reader.ReadFile(path)
		if err != nil {
			return nil, &EncodeError{Path: path, Err: errors.Join(ErrFileUnreadable, err)}
		}
		b = append(b, FileRecord{Name: name, Content: content})
	}
	return b, nil
}
