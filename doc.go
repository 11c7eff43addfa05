// Package trackmeta extracts metadata, quality facts, and embedded cover
// art from audio files.
//
// trackmeta reads, it never writes: tags are parsed from MP3 (ID3v2.2,
// v2.3, v2.4 and ID3v1), Ogg Vorbis, and Opus files without touching the
// audio payload, and cover images come out exactly as the tagger embedded
// them.
//
// # Quick Start
//
// Reading tags from an MP3:
//
//	meta, err := trackmeta.ReadID3Tags("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s - %s\n", meta.Artist, meta.Title)
//
// Or let the library classify the container first:
//
//	meta, err := trackmeta.ReadMetadata("song.opus")
//
// # Supported Formats
//
//   - MP3: ID3v2.2/2.3/2.4 text frames, ID3v1 fallback, APIC/PIC covers
//   - Ogg Vorbis / Opus: Vorbis comments, METADATA_BLOCK_PICTURE covers
//   - FLAC: embedded picture blocks (cover extraction only)
//
// M4A files are recognized but deliberately unsupported.
//
// # Graceful Degradation
//
// Files in the wild are truncated, over-declared, and occasionally
// hostile. Parsers here stop at the first structural inconsistency and
// return everything extracted up to that point; they never panic and
// never read past a declared boundary. A file with no tag at all yields
// *NoTagError rather than garbage.
//
// # Cover Caching
//
// SaveCoverToCache extracts a file's cover once and parks it on disk,
// keyed by path, size, and modification time:
//
//	coverPath, err := trackmeta.SaveCoverToCache("song.ogg", cacheDir)
//
// Repeat calls for an unchanged file return the cached path without
// re-parsing the audio file.
package trackmeta
