// Package mp3 parses ID3 tags and MPEG frame headers.
//
// Tag data comes from files of unknown provenance, so every declared size
// is checked against the bytes actually present before slicing. A frame
// that claims more data than the tag holds ends the walk cleanly with
// whatever was parsed so far.
package mp3

import (
	"encoding/binary"
	"strings"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/parsing"
	"github.com/simonhull/trackmeta/internal/textenc"
	"github.com/simonhull/trackmeta/internal/types"
)

// ID3v2 tag header flags.
const (
	id3v2FlagUnsync         = 0x80
	id3v2FlagExtendedHeader = 0x40
	id3v2FlagFooter         = 0x10
)

// ID3v2.3 frame format flags (second flag byte).
const (
	id3v23FlagCompression = 0x80
	id3v23FlagEncryption  = 0x40
	id3v23FlagGrouping    = 0x20
)

// ID3v2.4 frame format flags (second flag byte).
const (
	id3v24FlagGrouping    = 0x40
	id3v24FlagCompression = 0x08
	id3v24FlagEncryption  = 0x04
	id3v24FlagUnsync      = 0x02
	id3v24FlagDataLen     = 0x01
)

// ParseID3v2 reads the ID3v2 tag at the start of the file and extracts
// descriptive metadata from its text frames.
//
// Handles v2.2 (3-character frame IDs), v2.3, and v2.4. Returns
// *types.NoTagError when the file carries no ID3v2 header.
func ParseID3v2(sr *binutil.SafeReader) (types.Metadata, error) {
	var meta types.Metadata

	header := make([]byte, 10)
	if err := sr.ReadAt(header, 0, "ID3v2 header"); err != nil {
		return meta, &types.NoTagError{Path: sr.Path(), Kind: "ID3v2 tag"}
	}

	if string(header[0:3]) != "ID3" {
		return meta, &types.NoTagError{Path: sr.Path(), Kind: "ID3v2 tag"}
	}

	version := header[3]
	flags := header[5]
	unsync := flags&id3v2FlagUnsync != 0
	extended := flags&id3v2FlagExtendedHeader != 0
	footer := flags&id3v2FlagFooter != 0

	size := syncsafeToInt(header[6:10])
	tagData := make([]byte, size)
	if err := sr.ReadAt(tagData, 10, "ID3v2 tag data"); err != nil {
		return meta, &types.CorruptedTagError{
			Path:   sr.Path(),
			Reason: "declared tag size exceeds file",
			Offset: 10,
		}
	}

	// A v2.4 footer is a 10-byte mirror of the header at the end of the
	// tag, identified by "3DI". Strip it before walking frames.
	if footer && len(tagData) >= 10 {
		footerStart := len(tagData) - 10
		if string(tagData[footerStart:footerStart+3]) == "3DI" {
			tagData = tagData[:footerStart]
		}
	}

	if extended {
		if skip := extendedHeaderSize(tagData, version); skip > 0 && skip < len(tagData) {
			tagData = tagData[skip:]
		}
	}

	if version == 2 {
		parseID3v22Frames(tagData, &meta, unsync)
	} else {
		parseID3v23Frames(tagData, &meta, version, unsync)
	}

	return meta, nil
}

// parseID3v22Frames walks ID3v2.2 frames: 3-character IDs, 3-byte sizes,
// no per-frame flags.
func parseID3v22Frames(data []byte, meta *types.Metadata, tagUnsync bool) {
	pos := 0
	for pos+6 < len(data) {
		frameID := string(data[pos : pos+3])
		if frameID[0] == 0 {
			break // padding
		}

		frameSize := int(data[pos+3])<<16 | int(data[pos+4])<<8 | int(data[pos+5])
		if frameSize <= 0 || pos+6+frameSize > len(data) {
			break
		}

		frameData := data[pos+6 : pos+6+frameSize]
		if tagUnsync {
			frameData = removeUnsync(frameData)
		}
		value := frameText(frameData)

		switch frameID {
		case "TT2":
			meta.Title = value
		case "TP1":
			meta.Artist = value
		case "TP2":
			meta.AlbumArtist = value
		case "TAL":
			meta.Album = value
		case "TYE":
			meta.Year = value
			if len(value) >= 4 {
				meta.Date = value
			}
		case "TCO":
			meta.Genre = cleanGenre(value)
		case "TRK":
			meta.TrackNumber = parsing.TrackNumber(value)
		case "TPA":
			meta.DiscNumber = parsing.TrackNumber(value)
		}

		pos += 6 + frameSize
	}
}

// parseID3v23Frames walks ID3v2.3 and v2.4 frames: 4-character IDs, 4-byte
// sizes (plain big-endian in v2.3, syncsafe in v2.4), 2 flag bytes.
func parseID3v23Frames(data []byte, meta *types.Metadata, version byte, tagUnsync bool) {
	pos := 0
	for pos+10 < len(data) {
		frameID := string(data[pos : pos+4])
		if frameID[0] == 0 {
			break // padding
		}

		var frameSize int
		if version == 4 {
			frameSize = syncsafeToInt(data[pos+4 : pos+8])
		} else {
			frameSize = int(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		}

		if frameSize <= 0 || pos+10+frameSize > len(data) {
			break
		}

		frameData := data[pos+10 : pos+10+frameSize]
		formatFlags := data[pos+9]

		if version == 3 {
			if formatFlags&(id3v23FlagCompression|id3v23FlagEncryption) != 0 {
				pos += 10 + frameSize
				continue
			}
			if formatFlags&id3v23FlagGrouping != 0 {
				if len(frameData) < 1 {
					pos += 10 + frameSize
					continue
				}
				frameData = frameData[1:] // skip group ID
			}
			if tagUnsync {
				frameData = removeUnsync(frameData)
			}
		} else if version == 4 {
			if formatFlags&id3v24FlagGrouping != 0 {
				if len(frameData) < 1 {
					pos += 10 + frameSize
					continue
				}
				frameData = frameData[1:] // skip group ID
			}
			if formatFlags&id3v24FlagDataLen != 0 {
				if len(frameData) < 4 {
					pos += 10 + frameSize
					continue
				}
				frameData = frameData[4:]
			}
			if formatFlags&id3v24FlagUnsync != 0 || tagUnsync {
				frameData = removeUnsync(frameData)
			}
			if formatFlags&(id3v24FlagCompression|id3v24FlagEncryption) != 0 {
				pos += 10 + frameSize
				continue
			}
		}

		value := frameText(frameData)

		switch frameID {
		case "TIT2":
			meta.Title = value
		case "TPE1":
			meta.Artist = value
		case "TPE2":
			meta.AlbumArtist = value
		case "TALB":
			meta.Album = value
		case "TYER", "TDRC":
			meta.Year = value
			if len(value) >= 4 {
				meta.Date = value
			}
		case "TCON":
			meta.Genre = cleanGenre(value)
		case "TRCK":
			meta.TrackNumber = parsing.TrackNumber(value)
		case "TPOS":
			meta.DiscNumber = parsing.TrackNumber(value)
		case "TSRC":
			meta.ISRC = value
		}

		pos += 10 + frameSize
	}
}

// frameText decodes a text frame payload: one encoding marker byte followed
// by text. Returns the first value of a NUL-separated list.
func frameText(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	s := textenc.Decode(data[1:], data[0])
	if idx := strings.IndexByte(s, 0); idx >= 0 {
		s = s[:idx]
	}
	return s
}

// removeUnsync reverses ID3v2 unsynchronization: every 0xFF 0x00 pair
// collapses back to 0xFF.
func removeUnsync(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		b := data[i]
		out = append(out, b)
		if b == 0xFF && i+1 < len(data) && data[i+1] == 0x00 {
			i++
		}
	}
	return out
}

// extendedHeaderSize returns the total number of bytes to skip for the
// extended header at the start of tag data.
//
// v2.3 declares the size excluding its own 4 size bytes (plain big-endian);
// v2.4 declares it including them (syncsafe). Taggers get this wrong often
// enough that the declared size is only trusted when it fits: declared+4
// when that fits, bare declared as fallback, zero otherwise.
func extendedHeaderSize(data []byte, version byte) int {
	if len(data) < 4 {
		return 0
	}
	var size int
	switch version {
	case 3:
		size = int(binary.BigEndian.Uint32(data[:4]))
	case 4:
		size = syncsafeToInt(data[:4])
	default:
		return 0
	}
	if size <= 0 {
		return 0
	}
	total := size + 4
	if total <= len(data) {
		return total
	}
	if size <= len(data) {
		return size
	}
	return 0
}

// syncsafeToInt decodes a 4-byte syncsafe integer (7 data bits per byte,
// high bit always clear so the size can never look like an MPEG sync word).
func syncsafeToInt(b []byte) int {
	if len(b) < 4 {
		return 0
	}
	return int(b[0]&0x7F)<<21 | int(b[1]&0x7F)<<14 | int(b[2]&0x7F)<<7 | int(b[3]&0x7F)
}
