// Package flac handles FLAC picture blocks: parsing the raw block format
// that Ogg streams embed in comments, and extracting pictures from .flac
// containers.
package flac

import (
	"encoding/binary"

	"github.com/simonhull/trackmeta/internal/types"
)

// Picture block caps. The block format allows 32-bit lengths; nothing
// legitimate approaches them.
const (
	maxPictureMIMELength = 256
	maxPictureDescLength = 10000
	maxPictureDataLength = 10000000
)

// ParsePictureBlock decodes a FLAC PICTURE metadata block: big-endian
// picture type, length-prefixed MIME and description, 16 bytes of image
// geometry, then the length-prefixed image data.
//
// Returns nil when the block is truncated or a declared length is
// implausible.
func ParsePictureBlock(data []byte) *types.Cover {
	if len(data) < 32 {
		return nil
	}

	pos := 4 // picture type is not needed; the first picture wins

	mimeLen := binary.BigEndian.Uint32(data[pos : pos+4])
	pos += 4
	if mimeLen > maxPictureMIMELength || pos+int(mimeLen) > len(data) {
		return nil
	}
	mimeType := string(data[pos : pos+int(mimeLen)])
	pos += int(mimeLen)

	if pos+4 > len(data) {
		return nil
	}
	descLen := binary.BigEndian.Uint32(data[pos : pos+4])
	pos += 4
	if descLen > maxPictureDescLength || pos+int(descLen) > len(data) {
		return nil
	}
	pos += int(descLen)

	// Width, height, color depth, palette size.
	pos += 16
	if pos+4 > len(data) {
		return nil
	}

	dataLen := binary.BigEndian.Uint32(data[pos : pos+4])
	pos += 4
	if dataLen > maxPictureDataLength || pos+int(dataLen) > len(data) {
		return nil
	}

	return &types.Cover{
		Data: data[pos : pos+int(dataLen)],
		MIME: mimeType,
	}
}
