package bundle

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// EncodeStream encodes b as a complete stream: preamble, one frame per
// record in order, trailer. Duplicate names are rejected here so that a
// stream this package writes always decodes.
func EncodeStream(c Codec, b Bundle) ([]byte, error) {
	out := appendPreamble(nil, c.Strategy())
	seen := make(map[string]struct{}, len(b))
	for _, rec := range b {
		if _, dup := seen[rec.Name]; dup {
			return nil, &EncodeError{Path: rec.Name, Err: ErrDuplicateFileName}
		}
		seen[rec.Name] = struct{}{}

		var err error
		out, err = c.AppendFrame(out, rec.Name, rec.Content)
		if err != nil {
			return nil, &EncodeError{Path: rec.Name, Err: err}
		}
	}
	return appendTrailer(out, len(b)), nil
}

// DecodeStream parses a complete stream. It either returns every record or
// an error; it never returns a partial bundle. A zero-byte stream is an
// empty bundle.
func DecodeStream(data []byte) (Bundle, error) {
	if len(data) == 0 {
		return Bundle{}, nil
	}
	c, off, err := readPreamble(data)
	if err != nil {
		return nil, err
	}

	b := Bundle{}
	seen := make(map[string]int)
	for {
		rest := data[off:]
		switch {
		case bytes.HasPrefix(rest, []byte(fileStartPrefix)):
			rec, next, err := c.ReadFrame(data, off)
			if err != nil {
				return nil, err
			}
			if first, dup := seen[rec.Name]; dup {
				return nil, decodeErr(data, off, rec.Name, ErrDuplicateFileName,
					fmt.Sprintf("already declared by frame %d", first+1))
			}
			seen[rec.Name] = len(b)
			b = append(b, rec)
			off = next

		case bytes.HasPrefix(rest, []byte(trailerPrefix)):
			count, next, err := readTrailer(data, off)
			if err != nil {
				return nil, err
			}
			if count != len(b) {
				return nil, decodeErr(data, off, "", ErrMalformedHeader,
					fmt.Sprintf("trailer declares %d files, stream has %d", count, len(b)))
			}
			if next != len(data) {
				return nil, decodeErr(data, next, "", ErrTrailingGarbage,
					fmt.Sprintf("%d bytes after bundle trailer", len(data)-next))
			}
			return b, nil

		case len(rest) == 0:
			return nil, decodeErr(data, off, "", ErrTruncatedStream, "missing bundle trailer")

		case isProperPrefix(rest, fileStartPrefix), isProperPrefix(rest, trailerPrefix):
			return nil, decodeErr(data, off, "", ErrTruncatedStream, "incomplete delimiter line")

		case bytes.HasPrefix(rest, []byte(delimiterLead)):
			return nil, decodeErr(data, off, "", ErrMalformedHeader, "unrecognized delimiter line")

		default:
			return nil, decodeErr(data, off, "", ErrTrailingGarbage, "bytes outside any frame")
		}
	}
}

// DetectStrategy reads only the preamble of data.
func DetectStrategy(data []byte) (Strategy, error) {
	c, _, err := readPreamble(data)
	if err != nil {
		return 0, err
	}
	return c.Strategy(), nil
}

func appendPreamble(dst []byte, s Strategy) []byte {
	dst = append(dst, preamblePrefix...)
	dst = strconv.AppendInt(dst, WireVersion, 10)
	dst = append(dst, ' ')
	dst = append(dst, s.String()...)
	dst = append(dst, preambleSuffix...)
	return append(dst, '\n')
}

func appendTrailer(dst []byte, count int) []byte {
	dst = append(dst, trailerPrefix...)
	dst = strconv.AppendInt(dst, int64(count), 10)
	dst = append(dst, trailerSuffix...)
	return append(dst, '\n')
}

func readPreamble(data []byte) (Codec, int, error) {
	line, next, ok := readLine(data, 0)
	if !ok {
		if isProperPrefix(data, preamblePrefix) || strings.HasPrefix(line, preamblePrefix) {
			return nil, 0, decodeErr(data, 0, "", ErrTruncatedStream, "incomplete bundle preamble")
		}
		return nil, 0, decodeErr(data, 0, "", ErrMalformedHeader, "missing bundle preamble")
	}
	if !strings.HasPrefix(line, preamblePrefix) || !strings.HasSuffix(line, preambleSuffix) ||
		len(line) < len(preamblePrefix)+len(preambleSuffix) {
		return nil, 0, decodeErr(data, 0, "", ErrMalformedHeader, "missing bundle preamble")
	}
	fields := strings.Split(line[len(preamblePrefix):len(line)-len(preambleSuffix)], " ")
	if len(fields) != 2 {
		return nil, 0, decodeErr(data, 0, "", ErrMalformedHeader, "preamble needs version and strategy")
	}
	if v, ok := parseCount(fields[0]); !ok || v != WireVersion {
		return nil, 0, decodeErr(data, 0, "", ErrMalformedHeader,
			fmt.Sprintf("unsupported wire version %q", fields[0]))
	}
	s, err := ParseStrategy(fields[1])
	if err != nil || s.String() != fields[1] {
		return nil, 0, decodeErr(data, 0, "", ErrMalformedHeader,
			fmt.Sprintf("unknown framing %q", fields[1]))
	}
	c, err := NewCodec(s)
	if err != nil {
		return nil, 0, decodeErr(data, 0, "", err, "")
	}
	return c, next, nil
}

func readTrailer(data []byte, off int) (int, int, error) {
	line, next, ok := readLine(data, off)
	if !ok {
		return 0, 0, decodeErr(data, off, "", ErrTruncatedStream, "incomplete bundle trailer")
	}
	if !strings.HasSuffix(line, trailerSuffix) || len(line) < len(trailerPrefix)+len(trailerSuffix) {
		return 0, 0, decodeErr(data, off, "", ErrMalformedHeader, "invalid bundle trailer")
	}
	count, ok := parseCount(line[len(trailerPrefix) : len(line)-len(trailerSuffix)])
	if !ok {
		return 0, 0, decodeErr(data, off, "", ErrMalformedHeader, "invalid file count in bundle trailer")
	}
	return count, next, nil
}
