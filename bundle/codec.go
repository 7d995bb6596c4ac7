package bundle

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// WireVersion is the version of the stream grammar written into every
// preamble. Streams with any other version are rejected.
const WireVersion = 1

const (
	fileStartPrefix      = "--- FILE: "
	fileStartMiddle      = " ("
	fileStartBytesSuffix = " bytes) ---"
	fileStartSuffix      = " ---"
	fileEndPrefix        = "--- END: "
	fileEndSuffix        = " ---"
	preamblePrefix       = "--- TXTBUNDLE "
	preambleSuffix       = " ---"
	trailerPrefix        = "--- END BUNDLE: "
	trailerSuffix        = " files ---"
	delimiterLead        = "--- "
)

// Strategy selects how frames mark the end of their content.
type Strategy int

const (
	// LengthPrefixed frames declare the content length in the header.
	LengthPrefixed Strategy = iota
	// EscapedSentinel frames end at an end line; content is line-stuffed.
	EscapedSentinel
)

func (s Strategy) String() string {
	switch s {
	case LengthPrefixed:
		return "length"
	case EscapedSentinel:
		return "sentinel"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy accepts the wire names ("length", "sentinel") and their long
// forms ("length-prefixed", "escaped-sentinel").
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "length", "length-prefixed":
		return LengthPrefixed, nil
	case "sentinel", "escaped-sentinel":
		return EscapedSentinel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Codec encodes and decodes single frames for one framing strategy.
type Codec interface {
	// Strategy identifies the framing written to the stream preamble.
	Strategy() Strategy
	// AppendFrame appends the frame for one file to dst.
	AppendFrame(dst []byte, name string, content []byte) ([]byte, error)
	// ReadFrame parses the frame starting at data[off:] and returns the
	// record and the offset just past the frame.
	ReadFrame(data []byte, off int) (FileRecord, int, error)
}

// NewCodec returns the codec for s.
func NewCodec(s Strategy) (Codec, error) {
	switch s {
	case LengthPrefixed:
		return lengthCodec{}, nil
	case EscapedSentinel:
		return sentinelCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
}

// EncodeFrame returns the encoding of a single frame.
func EncodeFrame(c Codec, name string, content []byte) ([]byte, error) {
	return c.AppendFrame(nil, name, content)
}

func endLine(name string) string {
	return fileEndPrefix + name + fileEndSuffix + "\n"
}

// readLine returns the line starting at off without its newline, and the
// offset of the following line. ok is false when no newline terminates it.
func readLine(data []byte, off int) (line string, next int, ok bool) {
	i := bytes.IndexByte(data[off:], '\n')
	if i < 0 {
		return string(data[off:]), len(data), false
	}
	return string(data[off : off+i]), off + i + 1, true
}

// isProperPrefix reports whether rest could be the beginning of want.
func isProperPrefix(rest []byte, want string) bool {
	return len(rest) < len(want) && strings.HasPrefix(want, string(rest))
}

// expectLine checks that data[off:] starts with want. A shorter tail that is
// a prefix of want is a truncation; anything else is malformed.
func expectLine(data []byte, off int, name, want, what string) (int, error) {
	rest := data[off:]
	if bytes.HasPrefix(rest, []byte(want)) {
		return off + len(want), nil
	}
	if isProperPrefix(rest, want) {
		return 0, decodeErr(data, off, name, ErrTruncatedStream, "incomplete "+what)
	}
	return 0, decodeErr(data, off, name, ErrMalformedHeader, "expected "+what)
}

// parseCount parses a canonical non-negative decimal: digits only and no
// leading zeros, so each count has exactly one spelling.
func parseCount(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
