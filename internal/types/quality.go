package types

import "time"

// MP3Quality represents coarse audio-quality facts for an MPEG audio file.
//
// The values come from the first valid frame header after the ID3v2 tag.
// Duration is an estimate with whole-second resolution, derived from the
// file size and the frame's bitrate.
type MP3Quality struct {
	SampleRate int           // Hz
	BitDepth   int           // Always 16 - PCM equivalent of decoded MPEG audio
	Bitrate    int           // bits/sec, 0 when the bitrate index is unknown
	Duration   time.Duration // Estimated, 0 when bitrate is unknown
}

// OggQuality represents coarse audio-quality facts for an Ogg Vorbis or
// Opus file.
//
// Duration is a rough estimate assuming an average bitrate (Ogg headers do
// not carry a reliable total length without walking the whole stream).
type OggQuality struct {
	SampleRate int           // Hz
	BitDepth   int           // Always 16
	Duration   time.Duration // Estimated from file size and assumed bitrate
}
