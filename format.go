package trackmeta

import (
	"io"

	"github.com/simonhull/trackmeta/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to keep one definition.
type Format = types.Format

// Supported formats.
const (
	FormatUnknown = types.FormatUnknown
	FormatMP3     = types.FormatMP3
	FormatOgg     = types.FormatOgg
	FormatOpus    = types.FormatOpus
	FormatFLAC    = types.FormatFLAC
	FormatM4A     = types.FormatM4A
)

// DetectFormat determines the audio container by examining magic bytes.
//
// For Ogg containers the first page is peeked to tell Opus from Vorbis.
// Returns *UnsupportedFormatError for unrecognizable signatures.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}

// FormatFromPath classifies a file by its extension alone.
func FormatFromPath(path string) Format {
	return types.FormatFromPath(path)
}
