package mp3

import (
	"time"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// frameScanLimit bounds how far past the ID3v2 tag the sync-word search
// goes. A valid file has its first MPEG frame within a few bytes of the
// tag; 10 KB of slack covers sloppy encoders without scanning whole files
// of garbage.
const frameScanLimit = 10000

// mpegSampleRates maps (version index, sample-rate index) to Hz. Row order
// follows the two version bits: MPEG 2.5, reserved, MPEG 2, MPEG 1.
var mpegSampleRates = [4][3]int{
	{11025, 12000, 8000},
	{0, 0, 0},
	{22050, 24000, 16000},
	{44100, 48000, 32000},
}

// mpeg1Layer3Bitrates maps the 4-bit bitrate index to kbps for MPEG 1
// Layer III. Index 0 means "free format", index 15 is forbidden.
var mpeg1Layer3Bitrates = [16]int{
	0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0,
}

// Quality scans for the first MPEG audio frame and reports coarse quality
// facts: sample rate, bitrate, and a duration estimated from file size.
//
// The estimate assumes constant bitrate; VBR files get the duration their
// first frame's bitrate implies. When no sync word turns up within the scan
// window the result is a zero-value struct with a nil error, matching how
// players treat files with unreadable audio but usable tags.
func Quality(sr *binutil.SafeReader) (types.MP3Quality, error) {
	var q types.MP3Quality

	header := make([]byte, 10)
	if err := sr.ReadAt(header, 0, "MP3 file header"); err != nil {
		return q, err
	}

	var audioStart int64
	if string(header[0:3]) == "ID3" {
		audioStart = 10 + int64(syncsafeToInt(header[6:10]))
	}

	windowLen := sr.Size() - audioStart
	if windowLen > frameScanLimit+3 {
		windowLen = frameScanLimit + 3
	}
	if windowLen < 4 {
		return q, nil
	}

	window := make([]byte, windowLen)
	if err := sr.ReadAt(window, audioStart, "MPEG frame scan window"); err != nil {
		return q, err
	}

	for i := 0; i < frameScanLimit && i+4 <= len(window); i++ {
		// Sync word: 11 set bits.
		if window[i] != 0xFF || window[i+1]&0xE0 != 0xE0 {
			continue
		}

		version := (window[i+1] >> 3) & 0x03
		layer := (window[i+1] >> 1) & 0x03
		bitrateIdx := (window[i+2] >> 4) & 0x0F
		sampleRateIdx := (window[i+2] >> 2) & 0x03

		if sampleRateIdx < 3 {
			q.SampleRate = mpegSampleRates[version][sampleRateIdx]
		}

		// Only MPEG 1 Layer III gets a bitrate; other combinations use
		// different tables and almost never appear as ".mp3" in practice.
		if version == 3 && layer == 1 {
			q.Bitrate = mpeg1Layer3Bitrates[bitrateIdx] * 1000
		}

		// Decoded MPEG audio is 16-bit PCM.
		q.BitDepth = 16

		if q.Bitrate > 0 {
			audioSize := sr.Size() - audioStart - id3v1Size
			if audioSize > 0 {
				q.Duration = time.Duration(audioSize*8/int64(q.Bitrate)) * time.Second
			}
		}

		break
	}

	return q, nil
}
