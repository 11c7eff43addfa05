package ogg

import (
	"encoding/base64"
	"encoding/binary"
	"io"
	"strings"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/flac"
	"github.com/simonhull/trackmeta/internal/registry"
	"github.com/simonhull/trackmeta/internal/types"
)

func init() {
	e := &CoverExtractor{}
	registry.Register(types.FormatOgg, e)
	registry.Register(types.FormatOpus, e)
}

// pictureKey prefixes the Vorbis comment entry that carries embedded art:
// a base64-encoded FLAC picture block.
const pictureKey = "METADATA_BLOCK_PICTURE="

// maxPictureComment caps a picture-bearing comment entry. Unlike text
// comments these legitimately run to megabytes.
const maxPictureComment = 10000000

// CoverExtractor pulls embedded pictures out of Ogg Vorbis and Opus tag
// packets.
type CoverExtractor struct{}

// ExtractCover walks the stream head for a tag packet and decodes its
// METADATA_BLOCK_PICTURE entry.
//
// Returns *types.NoTagError when no packet carries a usable picture.
func (e *CoverExtractor) ExtractCover(r io.ReaderAt, size int64, path string) (*types.Cover, error) {
	sr := binutil.NewSafeReader(r, size, path)

	packets, err := CollectPackets(sr, DefaultMetadataPacketLimit, DefaultMetadataPageLimit)
	if err != nil && len(packets) == 0 {
		return nil, err
	}

	streamType := DetectStreamType(packets)
	for _, pkt := range packets {
		comments := commentPayload(pkt, streamType)
		if comments == nil {
			continue
		}
		if cover := findPicture(comments); cover != nil {
			return cover, nil
		}
	}

	return nil, &types.NoTagError{Path: path, Kind: "cover art"}
}

// findPicture walks a comment block for a METADATA_BLOCK_PICTURE entry and
// parses the FLAC picture block inside it. Text comments use the tight
// length cap from the metadata parser; here the cap is the picture cap,
// since the image itself rides in the entry.
func findPicture(data []byte) *types.Cover {
	if len(data) < 8 {
		return nil
	}

	vendorLen := binary.LittleEndian.Uint32(data[0:4])
	if vendorLen > uint32(len(data)-4) {
		return nil
	}
	pos := 4 + int(vendorLen)

	if pos+4 > len(data) {
		return nil
	}
	commentCount := binary.LittleEndian.Uint32(data[pos : pos+4])
	pos += 4

	for i := uint32(0); i < commentCount && i < 100; i++ {
		if pos+4 > len(data) {
			break
		}
		commentLen := binary.LittleEndian.Uint32(data[pos : pos+4])
		pos += 4

		if commentLen > maxPictureComment || pos+int(commentLen) > len(data) {
			break
		}

		comment := data[pos : pos+int(commentLen)]
		pos += int(commentLen)

		if len(comment) <= len(pictureKey) {
			continue
		}
		if !strings.EqualFold(string(comment[:len(pictureKey)]), pictureKey) {
			continue
		}

		decoded, err := decodePictureBase64(comment[len(pictureKey):])
		if err != nil {
			continue
		}

		if cover := flac.ParsePictureBlock(decoded); cover != nil {
			return cover
		}
	}

	return nil
}

// decodePictureBase64 decodes the picture payload tolerantly: taggers wrap
// the base64 with newlines and sometimes drop the padding.
func decodePictureBase64(src []byte) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, string(src))

	if decoded, err := base64.StdEncoding.DecodeString(cleaned); err == nil {
		return decoded, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(cleaned, "="))
}
