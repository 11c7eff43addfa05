package types

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/simonhull/trackmeta/internal/binary"
)

// Format represents the detected audio container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatMP3 represents MPEG audio files with ID3 tags.
	FormatMP3
	// FormatOgg represents Ogg Vorbis audio files.
	FormatOgg
	// FormatOpus represents Ogg Opus audio files.
	FormatOpus
	// FormatFLAC represents FLAC audio files.
	FormatFLAC
	// FormatM4A represents MP4 audio files. Recognized but never parsed.
	FormatM4A
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatOgg:
		return "Ogg Vorbis"
	case FormatOpus:
		return "Opus"
	case FormatFLAC:
		return "FLAC"
	case FormatM4A:
		return "M4A"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMP3:
		return []string{".mp3"}
	case FormatOgg:
		return []string{".ogg", ".oga"}
	case FormatOpus:
		return []string{".opus"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatM4A:
		return []string{".m4a"}
	default:
		return nil
	}
}

// FormatFromPath classifies a file by its extension alone.
//
// Used as a fallback when the container probe is inconclusive, and as the
// dispatch key for cover extraction (the extension decides which extractor
// runs, matching how callers name downloaded files).
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return FormatMP3
	case ".ogg", ".oga":
		return FormatOgg
	case ".opus":
		return FormatOpus
	case ".flac":
		return FormatFLAC
	case ".m4a":
		return FormatM4A
	default:
		return FormatUnknown
	}
}

// DetectFormat determines the audio container by examining magic bytes.
//
// Detection is a cheap probe of the file signature; it does not validate
// the full structure. For Ogg containers it additionally peeks into the
// first page to tell Opus from Vorbis.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	if string(magic) == "fLaC" {
		return FormatFLAC, nil
	}

	if string(magic[:3]) == "ID3" {
		return FormatMP3, nil
	}

	// MP3 frame sync without a leading ID3 tag.
	if magic[0] == 0xFF && (magic[1]&0xE0) == 0xE0 {
		return FormatMP3, nil
	}

	if string(magic) == "OggS" {
		// Peek at the first packet for the codec magic.
		// Page header: 27 bytes fixed + segment table (segment count at 26).
		if size >= 36 {
			if segCount, err := binary.Read[uint8](sr, 26, "segment count"); err == nil {
				packetOffset := int64(27 + int(segCount))
				if packetOffset+8 <= size {
					codecMagic := make([]byte, 8)
					if err := sr.ReadAt(codecMagic, packetOffset, "codec magic"); err == nil {
						if string(codecMagic) == "OpusHead" {
							return FormatOpus, nil
						}
					}
				}
			}
		}
		return FormatOgg, nil
	}

	// MP4 containers are recognized so callers get a precise "unsupported"
	// answer instead of a generic one.
	if size >= 12 {
		ftyp := make([]byte, 4)
		if err := sr.ReadAt(ftyp, 4, "ftyp atom type"); err == nil && string(ftyp) == "ftyp" {
			return FormatM4A, nil
		}
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unrecognized file signature",
	}
}
