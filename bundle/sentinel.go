package bundle

import (
	"bytes"
	"fmt"
	"strings"
)

const escapeByte = '\\'

// sentinelCodec frames content with an end line and no length:
//
//	--- FILE: <name> ---\n<stuffed content>\n--- END: <name> ---\n
//
// Stuffing prefixes every content line that begins with '-' or '\' with '\',
// so no body line can begin with '-' and the end line is unambiguous. The
// longest escape is one byte, which keeps the look-ahead bounded.
type sentinelCodec struct{}

func (sentinelCodec) Strategy() Strategy { return EscapedSentinel }

func (sentinelCodec) AppendFrame(dst []byte, name string, content []byte) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return dst, err
	}
	dst = append(dst, fileStartPrefix...)
	dst = append(dst, name...)
	dst = append(dst, fileStartSuffix...)
	dst = append(dst, '\n')
	dst = stuff(dst, content)
	dst = append(dst, '\n')
	dst = append(dst, endLine(name)...)
	return dst, nil
}

func (sentinelCodec) ReadFrame(data []byte, off int) (FileRecord, int, error) {
	line, start, ok := readLine(data, off)
	if !ok {
		return FileRecord{}, 0, decodeErr(data, off, "", ErrTruncatedStream, "incomplete frame header")
	}
	name, err := parseSentinelHeader(line)
	if err != nil {
		return FileRecord{}, 0, decodeErr(data, off, "", err, "")
	}
	if err := ValidateName(name); err != nil {
		return FileRecord{}, 0, decodeErr(data, off, name, err, "")
	}

	// Walk body lines until one starts with '-'.
	p := start
	for {
		if p >= len(data) {
			return FileRecord{}, 0, decodeErr(data, start, name, ErrTruncatedStream, "missing end line")
		}
		if data[p] == '-' {
			break
		}
		i := bytes.IndexByte(data[p:], '\n')
		if i < 0 {
			return FileRecord{}, 0, decodeErr(data, start, name, ErrTruncatedStream, "missing end line")
		}
		p += i + 1
	}
	if p == start {
		return FileRecord{}, 0, decodeErr(data, p, name, ErrMalformedHeader, "end line without content separator")
	}
	content, ok := unstuff(data[start : p-1])
	if !ok {
		return FileRecord{}, 0, decodeErr(data, start, name, ErrMalformedHeader, "invalid escape in content")
	}
	end, err := expectLine(data, p, name, endLine(name), "end line")
	if err != nil {
		return FileRecord{}, 0, err
	}
	return FileRecord{Name: name, Content: content}, end, nil
}

func parseSentinelHeader(line string) (string, error) {
	if len(line) < len(fileStartPrefix)+len(fileStartSuffix) ||
		!strings.HasPrefix(line, fileStartPrefix) ||
		!strings.HasSuffix(line, fileStartSuffix) {
		return "", fmt.Errorf("%w: not a sentinel file header", ErrMalformedHeader)
	}
	return line[len(fileStartPrefix) : len(line)-len(fileStartSuffix)], nil
}

// stuff appends content to dst, escaping lines that start with '-' or '\'.
func stuff(dst, content []byte) []byte {
	lineStart := true
	for _, b := range content {
		if lineStart && (b == '-' || b == escapeByte) {
			dst = append(dst, escapeByte)
		}
		dst = append(dst, b)
		lineStart = b == '\n'
	}
	return dst
}

// unstuff reverses stuff. An escape byte must be followed by '-' or '\';
// anything else could not have been produced by stuff.
func unstuff(body []byte) ([]byte, bool) {
	out := make([]byte, 0, len(body))
	lineStart := true
	for i := 0; i < len(body); i++ {
		b := body[i]
		if lineStart && b == escapeByte {
			if i+1 >= len(body) || (body[i+1] != '-' && body[i+1] != escapeByte) {
				return nil, false
			}
			i++
			b = body[i]
		}
		out = append(out, b)
		lineStart = b == '\n'
	}
	return out, true
}
