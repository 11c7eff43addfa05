package mp3

import (
	"encoding/binary"
	"io"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/registry"
	"github.com/simonhull/trackmeta/internal/textenc"
	"github.com/simonhull/trackmeta/internal/types"
)

func init() {
	registry.Register(types.FormatMP3, &CoverExtractor{})
}

// CoverExtractor pulls embedded pictures out of ID3v2 APIC / PIC frames.
type CoverExtractor struct{}

// ExtractCover walks the ID3v2 tag for the first picture frame and returns
// its raw image bytes.
//
// Returns *types.NoTagError when the file has no ID3v2 tag or the tag
// carries no picture.
func (e *CoverExtractor) ExtractCover(r io.ReaderAt, size int64, path string) (*types.Cover, error) {
	sr := binutil.NewSafeReader(r, size, path)

	header := make([]byte, 10)
	if err := sr.ReadAt(header, 0, "ID3v2 header"); err != nil {
		return nil, &types.NoTagError{Path: path, Kind: "ID3v2 tag"}
	}
	if string(header[0:3]) != "ID3" {
		return nil, &types.NoTagError{Path: path, Kind: "ID3v2 tag"}
	}

	version := header[3]
	tagSize := syncsafeToInt(header[6:10])

	tagData := make([]byte, tagSize)
	if err := sr.ReadAt(tagData, 10, "ID3v2 tag data"); err != nil {
		return nil, &types.CorruptedTagError{
			Path:   path,
			Reason: "declared tag size exceeds file",
			Offset: 10,
		}
	}

	frameIDLen, headerLen := 4, 10
	if version == 2 {
		frameIDLen, headerLen = 3, 6
	}

	pos := 0
	for pos+headerLen < len(tagData) {
		frameID := string(tagData[pos : pos+frameIDLen])
		if frameID[0] == 0 {
			break // padding
		}

		var frameSize int
		switch version {
		case 2:
			frameSize = int(tagData[pos+3])<<16 | int(tagData[pos+4])<<8 | int(tagData[pos+5])
		case 4:
			frameSize = syncsafeToInt(tagData[pos+4 : pos+8])
		default:
			frameSize = int(binary.BigEndian.Uint32(tagData[pos+4 : pos+8]))
		}

		if frameSize <= 0 || pos+headerLen+frameSize > len(tagData) {
			break
		}

		if frameID == "APIC" || frameID == "PIC" {
			frameData := tagData[pos+headerLen : pos+headerLen+frameSize]
			if cover := parsePictureFrame(frameData, version); cover != nil {
				return cover, nil
			}
		}

		pos += headerLen + frameSize
	}

	return nil, &types.NoTagError{Path: path, Kind: "cover art"}
}

// parsePictureFrame decodes an APIC (v2.3/2.4) or PIC (v2.2) frame body:
// encoding byte, MIME type, picture type byte, description, image data.
//
// Returns nil when the frame is too short or the image payload is empty.
func parsePictureFrame(data []byte, version byte) *types.Cover {
	if len(data) < 4 {
		return nil
	}

	pos := 0
	encoding := data[pos]
	pos++

	var mimeType string
	if version == 2 {
		// v2.2 stores a 3-byte image format code instead of a MIME string.
		if pos+3 > len(data) {
			return nil
		}
		switch string(data[pos : pos+3]) {
		case "PNG":
			mimeType = "image/png"
		default: // "JPG" and unknown codes
			mimeType = "image/jpeg"
		}
		pos += 3
	} else {
		end := pos
		for end < len(data) && data[end] != 0 {
			end++
		}
		mimeType = string(data[pos:end])
		pos = end + 1
	}

	if pos >= len(data) {
		return nil
	}

	// Picture type byte (front cover, back cover, ...) is not needed; the
	// first picture wins regardless of type.
	pos++

	// Description is NUL-terminated in the frame's text encoding.
	rest := data[pos:]
	term := textenc.FindTerminator(rest, encoding)
	if term < 0 {
		return nil
	}
	pos += term + textenc.TerminatorSize(encoding)

	if pos >= len(data) {
		return nil
	}

	return &types.Cover{Data: data[pos:], MIME: mimeType}
}
