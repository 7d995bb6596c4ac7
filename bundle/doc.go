// Package bundle implements the txtbundle wire format: the framing that lets
// a flat set of files travel as one byte stream and come back byte-for-byte.
//
// A stream is a preamble line, one frame per file and a trailer line:
//
//	--- TXTBUNDLE 1 length ---
//	--- FILE: a.txt (5 bytes) ---
//	hello
//	--- END: a.txt ---
//	--- END BUNDLE: 1 files ---
//
// Two framing strategies share the Codec interface:
//   - LengthPrefixed: the header declares the exact content length, so content
//     is never scanned and may contain anything, delimiter text included.
//   - EscapedSentinel: the header carries only the name; content lines that
//     begin with '-' or '\' are prefixed with '\' so the end line is the first
//     body line that starts with '-'.
//
// The preamble names the strategy, so DecodeStream needs no configuration.
// A zero-byte stream decodes to an empty Bundle.
//
// Everything in this package is a pure function of its inputs. Reading files
// and writing them back out is delegated to the FileReader and FileWriter
// collaborators.
package bundle
