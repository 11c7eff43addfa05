package ogg

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// buildCommentBlock assembles a raw Vorbis comment block.
func buildCommentBlock(comments ...string) []byte {
	vendor := "test vendor"
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vendor)))
	buf = append(buf, vendor...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(comments)))
	for _, c := range comments {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(c)))
		buf = append(buf, c...)
	}
	return buf
}

// opusHeadPacket builds an identification header with the given original
// sample rate.
func opusHeadPacket(sampleRate uint32) []byte {
	pkt := make([]byte, 19)
	copy(pkt, "OpusHead")
	pkt[8] = 1 // version
	pkt[9] = 2 // channels
	binary.LittleEndian.PutUint32(pkt[12:16], sampleRate)
	return pkt
}

// vorbisIdentPacket builds a 0x01 "vorbis" identification header.
func vorbisIdentPacket(sampleRate uint32) []byte {
	pkt := make([]byte, 30)
	pkt[0] = 0x01
	copy(pkt[1:], "vorbis")
	binary.LittleEndian.PutUint32(pkt[12:16], sampleRate)
	return pkt
}

// packetsToStream lays packets out one per page.
func packetsToStream(packets ...[]byte) []byte {
	var stream []byte
	for _, pkt := range packets {
		stream = append(stream, buildPage(0, lacingFor(len(pkt)), pkt)...)
	}
	return stream
}

func oggReader(data []byte, path string) *binutil.SafeReader {
	return binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), path)
}

func TestReadComments_Opus(t *testing.T) {
	tags := append([]byte("OpusTags"), buildCommentBlock(
		"TITLE=Windowlicker",
		"ARTIST=Aphex Twin",
	)...)
	stream := packetsToStream(opusHeadPacket(44100), tags)

	meta, err := ReadComments(oggReader(stream, "test.opus"), DefaultMetadataPacketLimit, DefaultMetadataPageLimit)
	require.NoError(t, err)
	assert.Equal(t, "Windowlicker", meta.Title)
	assert.Equal(t, "Aphex Twin", meta.Artist)
}

func TestReadComments_Vorbis(t *testing.T) {
	tags := append([]byte{0x03}, "vorbis"...)
	tags = append(tags, buildCommentBlock(
		"TITLE=Roygbiv",
		"ARTIST=Boards of Canada",
		"ALBUM=Music Has the Right to Children",
	)...)
	stream := packetsToStream(vorbisIdentPacket(44100), tags)

	meta, err := ReadComments(oggReader(stream, "test.ogg"), DefaultMetadataPacketLimit, DefaultMetadataPageLimit)
	require.NoError(t, err)
	assert.Equal(t, "Roygbiv", meta.Title)
	assert.Equal(t, "Boards of Canada", meta.Artist)
	assert.Equal(t, "Music Has the Right to Children", meta.Album)
}

func TestReadComments_UnknownStreamTriesBothShapes(t *testing.T) {
	// No identification header at all; the OpusTags packet must still be
	// found.
	tags := append([]byte("OpusTags"), buildCommentBlock("TITLE=Found")...)
	stream := packetsToStream([]byte("garbage header"), tags)

	meta, err := ReadComments(oggReader(stream, "test.ogg"), DefaultMetadataPacketLimit, DefaultMetadataPageLimit)
	require.NoError(t, err)
	assert.Equal(t, "Found", meta.Title)
}

func TestReadComments_NoTags(t *testing.T) {
	stream := packetsToStream(opusHeadPacket(48000))

	_, err := ReadComments(oggReader(stream, "test.opus"), DefaultMetadataPacketLimit, DefaultMetadataPageLimit)

	var noTag *types.NoTagError
	require.ErrorAs(t, err, &noTag)
	assert.Equal(t, "Vorbis comments", noTag.Kind)
}

func TestReadComments_NotAnOggFile(t *testing.T) {
	_, err := ReadComments(oggReader([]byte("definitely not an ogg bitstream"), "test.ogg"), 30, 80)
	assert.Error(t, err)
}

func TestQuality_Opus(t *testing.T) {
	stream := packetsToStream(opusHeadPacket(44100))
	sr := oggReader(stream, "test.opus")

	q, err := Quality(sr, DefaultQualityPacketLimit, DefaultQualityPageLimit)
	require.NoError(t, err)

	assert.Equal(t, 44100, q.SampleRate)
	assert.Equal(t, 16, q.BitDepth)
	wantDur := time.Duration(int64(len(stream))*8/opusAverageBitrate) * time.Second
	assert.Equal(t, wantDur, q.Duration)
}

func TestQuality_OpusZeroRateFallsBackTo48k(t *testing.T) {
	stream := packetsToStream(opusHeadPacket(0))

	q, err := Quality(oggReader(stream, "test.opus"), DefaultQualityPacketLimit, DefaultQualityPageLimit)
	require.NoError(t, err)
	assert.Equal(t, 48000, q.SampleRate)
}

func TestQuality_Vorbis(t *testing.T) {
	stream := packetsToStream(vorbisIdentPacket(44100))

	q, err := Quality(oggReader(stream, "test.ogg"), DefaultQualityPacketLimit, DefaultQualityPageLimit)
	require.NoError(t, err)
	assert.Equal(t, 44100, q.SampleRate)
	assert.Equal(t, 16, q.BitDepth)
}

func TestQuality_UnknownStreamUsesExtension(t *testing.T) {
	// Headers are unrecognizable; only the assumed average bitrate (and
	// with it the duration estimate) depends on the extension fallback.
	junk := bytes.Repeat([]byte{0x42}, 160)
	// Pad the file out so the two bitrate assumptions produce visibly
	// different estimates.
	stream := append(packetsToStream(junk), make([]byte, 400000)...)

	asOpus, err := Quality(oggReader(stream, "mystery.opus"), DefaultQualityPacketLimit, DefaultQualityPageLimit)
	require.NoError(t, err)
	asVorbis, err := Quality(oggReader(stream, "mystery.ogg"), DefaultQualityPacketLimit, DefaultQualityPageLimit)
	require.NoError(t, err)

	size := int64(len(stream))
	assert.Equal(t, time.Duration(size*8/opusAverageBitrate)*time.Second, asOpus.Duration)
	assert.Equal(t, time.Duration(size*8/vorbisAverageBitrate)*time.Second, asVorbis.Duration)
	assert.Zero(t, asOpus.SampleRate)
	assert.Zero(t, asVorbis.SampleRate)
}
