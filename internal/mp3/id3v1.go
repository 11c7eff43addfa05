package mp3

import (
	"strings"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// id3v1Size is the fixed size of an ID3v1 tag at the end of the file.
const id3v1Size = 128

// ParseID3v1 reads the fixed 128-byte ID3v1 tag from the end of the file.
//
// Returns *types.NoTagError when the file is shorter than 128 bytes or the
// trailer doesn't start with "TAG".
func ParseID3v1(sr *binutil.SafeReader) (types.Metadata, error) {
	var meta types.Metadata

	if sr.Size() < id3v1Size {
		return meta, &types.NoTagError{Path: sr.Path(), Kind: "ID3v1 tag"}
	}

	tag := make([]byte, id3v1Size)
	if err := sr.ReadAt(tag, sr.Size()-id3v1Size, "ID3v1 tag"); err != nil {
		return meta, err
	}

	if string(tag[0:3]) != "TAG" {
		return meta, &types.NoTagError{Path: sr.Path(), Kind: "ID3v1 tag"}
	}

	meta.Title = trimField(tag[3:33])
	meta.Artist = trimField(tag[33:63])
	meta.Album = trimField(tag[63:93])
	meta.Year = trimField(tag[93:97])

	// ID3v1.1 reuses the last comment byte as a track number, signalled by
	// a zero byte right before it.
	if tag[125] == 0 && tag[126] != 0 {
		meta.TrackNumber = int(tag[126])
	}

	if genreIndex := int(tag[127]); genreIndex < len(id3v1Genres) {
		meta.Genre = id3v1Genres[genreIndex]
	}

	return meta, nil
}

// trimField strips the space or NUL padding ID3v1 writers fill fixed-width
// fields with.
func trimField(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}
