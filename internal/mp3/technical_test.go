package mp3

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binutil "github.com/simonhull/trackmeta/internal/binary"
)

func TestQuality_MPEG1Layer3(t *testing.T) {
	// Empty ID3v2 tag, then a frame header with bitrate index 9 (128 kbps)
	// and sample-rate index 0 (44100 Hz), then enough zero "audio" that
	// the duration estimate lands on exactly 10 seconds:
	// (fileSize - audioStart - 128) * 8 / 128000 = 10.
	audio := make([]byte, 160000)
	audio[0], audio[1], audio[2] = 0xFF, 0xFB, 0x90

	data := buildID3v2(3, 0)
	data = append(data, audio...)
	data = append(data, make([]byte, 128)...)

	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")
	q, err := Quality(sr)
	require.NoError(t, err)

	assert.Equal(t, 44100, q.SampleRate)
	assert.Equal(t, 128000, q.Bitrate)
	assert.Equal(t, 16, q.BitDepth)
	assert.Equal(t, 10*time.Second, q.Duration)
}

func TestQuality_SyncAfterJunk(t *testing.T) {
	// The sync word sits a few hundred bytes into the scan window.
	audio := make([]byte, 4096)
	audio[300], audio[301], audio[302] = 0xFF, 0xFB, 0x90

	data := append(buildID3v2(3, 0), audio...)

	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")
	q, err := Quality(sr)
	require.NoError(t, err)
	assert.Equal(t, 44100, q.SampleRate)
	assert.Equal(t, 128000, q.Bitrate)
}

func TestQuality_NoFrameFound(t *testing.T) {
	data := append(buildID3v2(3, 0), make([]byte, 2048)...)

	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")
	q, err := Quality(sr)
	require.NoError(t, err)

	assert.Zero(t, q.SampleRate)
	assert.Zero(t, q.Bitrate)
	assert.Zero(t, q.BitDepth)
	assert.Zero(t, q.Duration)
}

func TestQuality_MPEG2NoBitrate(t *testing.T) {
	// Version bits 10 (MPEG 2): sample rate resolves, bitrate table does
	// not apply.
	audio := make([]byte, 1024)
	audio[0], audio[1], audio[2] = 0xFF, 0xF3, 0x90

	data := append(buildID3v2(3, 0), audio...)

	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.mp3")
	q, err := Quality(sr)
	require.NoError(t, err)
	assert.Equal(t, 22050, q.SampleRate)
	assert.Zero(t, q.Bitrate)
	assert.Equal(t, 16, q.BitDepth)
}
