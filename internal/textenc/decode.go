// Package textenc decodes ID3v2 text payloads.
//
// Every ID3v2 text frame starts with a one-byte encoding marker; the rest
// of the frame is text in that encoding. The decoders come from
// golang.org/x/text, which handles BOM detection and invalid sequences
// without panicking on adversarial input.
package textenc

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ID3v2 text encoding markers.
const (
	EncodingLatin1  byte = 0 // ISO-8859-1
	EncodingUTF16   byte = 1 // UTF-16 with BOM
	EncodingUTF16BE byte = 2 // UTF-16 big-endian, no BOM (v2.4)
	EncodingUTF8    byte = 3 // UTF-8 (v2.4)
)

// Decode converts a tag text payload to a Go string given its encoding
// marker byte.
//
// Unknown markers fall back to Latin-1, the ID3v2.2/2.3 default. Decoding
// never fails: undecodable input is returned byte-for-byte so a mangled
// frame still yields something searchable rather than an error.
//
// Decoders are constructed per call; the x/text transformers carry state
// and must not be shared across concurrent parses.
func Decode(data []byte, encoding byte) string {
	if len(data) == 0 {
		return ""
	}

	switch encoding {
	case EncodingUTF16:
		// A BOM selects the byte order when present; ID3v2 text without
		// one is read big-endian, matching how taggers in the wild write
		// encoding 1.
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(data); err == nil {
			return string(out)
		}
	case EncodingUTF16BE:
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		if out, err := dec.Bytes(data); err == nil {
			return string(out)
		}
	case EncodingUTF8:
		return string(data)
	default: // EncodingLatin1 and anything unrecognized
		if out, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
			return string(out)
		}
	}

	return string(data)
}

// TerminatorSize returns the width of a NUL terminator for the encoding:
// two bytes for the UTF-16 variants, one for everything else.
func TerminatorSize(encoding byte) int {
	if encoding == EncodingUTF16 || encoding == EncodingUTF16BE {
		return 2
	}
	return 1
}

// FindTerminator locates the NUL terminator in raw (still encoded) bytes.
//
// Returns -1 when no terminator exists. UTF-16 terminators are two aligned
// zero bytes; single-byte encodings use one.
func FindTerminator(data []byte, encoding byte) int {
	if TerminatorSize(encoding) == 2 {
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1
	}
	return strings.IndexByte(string(data), 0)
}
