// Package types holds the shared data model for tag and quality extraction.
//
// Keeping these types in an internal package lets the format packages
// (internal/mp3, internal/ogg, ...) share them without importing the root
// package. The root package re-exports them as aliases.
package types

// Metadata represents descriptive tag fields extracted from an audio file.
//
// Metadata is produced fresh per parse call and never shared between calls.
// Empty strings and zero numbers mean "unknown" - the tag did not carry
// that field, or it could not be decoded.
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Genre       string
	Year        string // "2019" - first four digits of the date when known
	Date        string // Full date value as written in the tag (may equal Year)
	ISRC        string
	TrackNumber int
	DiscNumber  int
}

// Empty reports whether the metadata carries neither a title nor an artist.
//
// A tag block that yields neither is treated as "no tag found" by the
// callers in the root package.
func (m *Metadata) Empty() bool {
	return m.Title == "" && m.Artist == ""
}

// FillMissing returns a copy of primary with selected empty fields filled
// from fallback.
//
// This is the ID3v2-then-ID3v1 merge policy: v2 values always win, and only
// Title, Artist, Album, Year, and Genre are eligible for backfill (ID3v1
// cannot carry the other fields reliably). The merge is a pure function -
// neither input is mutated.
func FillMissing(primary, fallback Metadata) Metadata {
	merged := primary
	if merged.Title == "" {
		merged.Title = fallback.Title
	}
	if merged.Artist == "" {
		merged.Artist = fallback.Artist
	}
	if merged.Album == "" {
		merged.Album = fallback.Album
	}
	if merged.Year == "" {
		merged.Year = fallback.Year
	}
	if merged.Genre == "" {
		merged.Genre = fallback.Genre
	}
	return merged
}
