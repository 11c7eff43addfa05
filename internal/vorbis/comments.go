// Package vorbis parses Vorbis comment blocks.
//
// The same block format carries metadata for both Ogg Vorbis (inside the
// 0x03 "vorbis" header packet) and Opus (inside the "OpusTags" packet);
// callers strip the per-codec magic before handing the block over.
package vorbis

import (
	"encoding/binary"
	"strings"

	"github.com/simonhull/trackmeta/internal/parsing"
	"github.com/simonhull/trackmeta/internal/types"
)

// Parsing caps. A comment block is supposed to be small; anything past
// these limits is either corrupt or hostile, and the walk stops with what
// it has.
const (
	maxComments      = 100
	maxCommentLength = 10000
)

// ParseComments extracts metadata from a Vorbis comment block: a
// length-prefixed vendor string, a comment count, then length-prefixed
// "KEY=VALUE" entries. All lengths are little-endian.
//
// Malformed input never fails; the walk stops at the first entry that
// doesn't fit and keeps everything parsed before it.
func ParseComments(data []byte, meta *types.Metadata) {
	if len(data) < 4 {
		return
	}

	vendorLen := binary.LittleEndian.Uint32(data[0:4])
	if vendorLen > uint32(len(data)-4) {
		return
	}
	pos := 4 + int(vendorLen)

	if pos+4 > len(data) {
		return
	}
	commentCount := binary.LittleEndian.Uint32(data[pos : pos+4])
	pos += 4

	for i := uint32(0); i < commentCount && i < maxComments; i++ {
		if pos+4 > len(data) {
			break
		}
		commentLen := binary.LittleEndian.Uint32(data[pos : pos+4])
		pos += 4

		if commentLen > maxCommentLength || pos+int(commentLen) > len(data) {
			break
		}

		comment := string(data[pos : pos+int(commentLen)])
		pos += int(commentLen)

		key, value, found := strings.Cut(comment, "=")
		if !found {
			continue
		}

		applyComment(strings.ToUpper(key), value, meta)
	}
}

// applyComment maps one comment entry onto the metadata struct. Field
// names in the wild are wildly inconsistent; the aliases below cover what
// common taggers actually write.
func applyComment(key, value string, meta *types.Metadata) {
	switch key {
	case "TITLE":
		meta.Title = value
	case "ARTIST":
		meta.Artist = value
	case "ALBUMARTIST", "ALBUM_ARTIST", "ALBUM ARTIST":
		meta.AlbumArtist = value
	case "ALBUM":
		meta.Album = value
	case "DATE", "YEAR":
		meta.Date = value
		if len(value) >= 4 {
			meta.Year = value[:4]
		}
	case "GENRE":
		meta.Genre = value
	case "TRACKNUMBER", "TRACK":
		meta.TrackNumber = parsing.TrackNumber(value)
	case "DISCNUMBER", "DISC":
		meta.DiscNumber = parsing.TrackNumber(value)
	case "ISRC":
		meta.ISRC = value
	}
}
