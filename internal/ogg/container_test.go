package ogg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// buildPage assembles one Ogg page from a lacing table and its payload.
func buildPage(headerType byte, lacing []byte, payload []byte) []byte {
	header := make([]byte, 27)
	copy(header, "OggS")
	header[5] = headerType
	header[26] = byte(len(lacing))

	page := append(header, lacing...)
	return append(page, payload...)
}

// lacingFor returns the lacing values for a single packet of n bytes:
// 255s followed by the final short value.
func lacingFor(n int) []byte {
	var lacing []byte
	for n >= 255 {
		lacing = append(lacing, 255)
		n -= 255
	}
	return append(lacing, byte(n))
}

func streamReader(data []byte) *binutil.SafeReader {
	return binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.ogg")
}

func TestCollectPackets_Lacing(t *testing.T) {
	// [255, 255, 10] must reassemble into one 520-byte packet.
	payload := bytes.Repeat([]byte{0xAB}, 520)
	stream := buildPage(0, []byte{255, 255, 10}, payload)

	packets, err := CollectPackets(streamReader(stream), 30, 80)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, payload, packets[0])
}

func TestCollectPackets_MultiplePacketsPerPage(t *testing.T) {
	payload := append([]byte("first"), "second!"...)
	stream := buildPage(0, []byte{5, 7}, payload)

	packets, err := CollectPackets(streamReader(stream), 30, 80)
	require.NoError(t, err)
	require.Len(t, packets, 2)
	assert.Equal(t, []byte("first"), packets[0])
	assert.Equal(t, []byte("second!"), packets[1])
}

func TestCollectPackets_PacketSpansPages(t *testing.T) {
	part1 := bytes.Repeat([]byte{1}, 255)
	part2 := []byte("tail")

	stream := buildPage(0, []byte{255}, part1)
	stream = append(stream, buildPage(headerTypeContinuation, []byte{4}, part2)...)

	packets, err := CollectPackets(streamReader(stream), 30, 80)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, append(part1, part2...), packets[0])
}

func TestCollectPackets_DesyncDropsPartial(t *testing.T) {
	// An open packet followed by a non-continuation page means pages went
	// missing; the partial must be discarded, not glued to the next packet.
	partial := bytes.Repeat([]byte{9}, 255)

	stream := buildPage(0, []byte{255}, partial)
	stream = append(stream, buildPage(0, []byte{3}, []byte("abc"))...)

	packets, err := CollectPackets(streamReader(stream), 30, 80)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, []byte("abc"), packets[0])
}

func TestCollectPackets_MaxPacketsBound(t *testing.T) {
	var stream []byte
	for i := 0; i < 5; i++ {
		stream = append(stream, buildPage(0, []byte{1}, []byte{byte(i)})...)
	}

	packets, err := CollectPackets(streamReader(stream), 3, 80)
	require.NoError(t, err)
	assert.Len(t, packets, 3)
}

func TestCollectPackets_TruncatedStreamReturnsPartial(t *testing.T) {
	stream := buildPage(0, []byte{4}, []byte("good"))
	stream = append(stream, "OggS\x00"...) // next page cut off mid-header

	packets, err := CollectPackets(streamReader(stream), 30, 80)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, []byte("good"), packets[0])
}

func TestCollectPackets_NotOgg(t *testing.T) {
	_, err := CollectPackets(streamReader([]byte("ID3\x04\x00this is not ogg data at all")), 30, 80)

	var corrupted *types.CorruptedTagError
	require.ErrorAs(t, err, &corrupted)
}

func TestCollectPackets_ZeroTerminatedLacing(t *testing.T) {
	// A packet of exactly 255 bytes ends with a zero lacing value.
	payload := bytes.Repeat([]byte{7}, 255)
	stream := buildPage(0, []byte{255, 0}, payload)

	packets, err := CollectPackets(streamReader(stream), 30, 80)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Len(t, packets[0], 255)
}

func TestDetectStreamType(t *testing.T) {
	opusHead := append([]byte("OpusHead"), make([]byte, 11)...)
	vorbisIdent := append([]byte{0x01}, "vorbis"...)
	vorbisIdent = append(vorbisIdent, make([]byte, 23)...)

	tests := []struct {
		name    string
		packets [][]byte
		want    StreamType
	}{
		{"opus", [][]byte{opusHead}, StreamOpus},
		{"vorbis", [][]byte{vorbisIdent}, StreamVorbis},
		{"opus wins over later vorbis", [][]byte{opusHead, vorbisIdent}, StreamOpus},
		{"unknown", [][]byte{[]byte("mystery bytes")}, StreamUnknown},
		{"empty", nil, StreamUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectStreamType(tt.packets))
		})
	}
}
