package bundle

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// lengthCodec frames content with an explicit byte count:
//
//	--- FILE: <name> (<n> bytes) ---\n<content>\n--- END: <name> ---\n
type lengthCodec struct{}

func (lengthCodec) Strategy() Strategy { return LengthPrefixed }

func (lengthCodec) AppendFrame(dst []byte, name string, content []byte) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return dst, err
	}
	dst = append(dst, fileStartPrefix...)
	dst = append(dst, name...)
	dst = append(dst, fileStartMiddle...)
	dst = strconv.AppendInt(dst, int64(len(content)), 10)
	dst = append(dst, fileStartBytesSuffix...)
	dst = append(dst, '\n')
	dst = append(dst, content...)
	dst = append(dst, '\n')
	dst = append(dst, endLine(name)...)
	return dst, nil
}

func (lengthCodec) ReadFrame(data []byte, off int) (FileRecord, int, error) {
	line, next, ok := readLine(data, off)
	if !ok {
		return FileRecord{}, 0, decodeErr(data, off, "", ErrTruncatedStream, "incomplete frame header")
	}
	name, n, err := parseLengthHeader(line)
	if err != nil {
		return FileRecord{}, 0, decodeErr(data, off, "", err, "")
	}
	if err := ValidateName(name); err != nil {
		return FileRecord{}, 0, decodeErr(data, off, name, err, "")
	}
	if avail := len(data) - next; n > avail {
		return FileRecord{}, 0, decodeErr(data, off, name, ErrTruncatedStream,
			fmt.Sprintf("declared %d bytes, %d available", n, avail))
	}
	content := bytes.Clone(data[next : next+n])
	end, err := expectLine(data, next+n, name, "\n"+endLine(name), "end line")
	if err != nil {
		return FileRecord{}, 0, err
	}
	return FileRecord{Name: name, Content: content}, end, nil
}

// parseLengthHeader splits a header line into name and byte count. The name
// is everything between the prefix and the last " (", so names may contain
// delimiter text.
func parseLengthHeader(line string) (string, int, error) {
	if len(line) < len(fileStartPrefix)+len(fileStartBytesSuffix) ||
		!strings.HasPrefix(line, fileStartPrefix) ||
		!strings.HasSuffix(line, fileStartBytesSuffix) {
		return "", 0, fmt.Errorf("%w: not a length-prefixed file header", ErrMalformedHeader)
	}
	body := line[len(fileStartPrefix) : len(line)-len(fileStartBytesSuffix)]
	i := strings.LastIndex(body, fileStartMiddle)
	if i < 0 {
		return "", 0, fmt.Errorf("%w: missing byte count", ErrMalformedHeader)
	}
	n, ok := parseCount(body[i+len(fileStartMiddle):])
	if !ok {
		return "", 0, fmt.Errorf("%w: invalid byte count %q", ErrMalformedHeader, body[i+len(fileStartMiddle):])
	}
	return body[:i], n, nil
}
