package ogg

import (
	"encoding/binary"
	"strings"
	"time"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
	"github.com/simonhull/trackmeta/internal/vorbis"
)

// Default demux bounds. Metadata can sit a few pages in when the tag
// packet carries embedded art; quality needs only the identification
// header, which always rides the very first page.
const (
	DefaultMetadataPageLimit   = 80
	DefaultMetadataPacketLimit = 30
	DefaultQualityPageLimit    = 10
	DefaultQualityPacketLimit  = 5
)

// Average bitrates for the file-size duration estimate, in bits per
// second. Nothing in the stream head states a duration, so this is the
// same rough guess players make before decoding.
const (
	opusAverageBitrate   = 128000
	vorbisAverageBitrate = 160000
)

// ReadComments finds the tag packet in the stream head and extracts its
// Vorbis comment metadata.
//
// Opus streams carry comments in an "OpusTags" packet, Vorbis streams in
// the 0x03 "vorbis" header packet. When codec detection fails both shapes
// are tried. Returns *types.NoTagError when no tag packet yields a title
// or artist.
func ReadComments(sr *binutil.SafeReader, maxPackets, maxPages int) (types.Metadata, error) {
	var meta types.Metadata

	packets, err := CollectPackets(sr, maxPackets, maxPages)
	if err != nil && len(packets) == 0 {
		return meta, err
	}

	streamType := DetectStreamType(packets)
	for _, pkt := range packets {
		if comments := commentPayload(pkt, streamType); comments != nil {
			vorbis.ParseComments(comments, &meta)
			break
		}
	}

	if meta.Empty() {
		return meta, &types.NoTagError{Path: sr.Path(), Kind: "Vorbis comments"}
	}

	return meta, nil
}

// commentPayload returns the comment block inside a tag packet, with the
// per-codec magic stripped, or nil when the packet is not a tag packet for
// the detected codec.
func commentPayload(pkt []byte, streamType StreamType) []byte {
	isOpusTags := len(pkt) > 8 && string(pkt[0:8]) == "OpusTags"
	isVorbisComments := len(pkt) > 7 && pkt[0] == 0x03 && string(pkt[1:7]) == "vorbis"

	switch streamType {
	case StreamOpus:
		if isOpusTags {
			return pkt[8:]
		}
	case StreamVorbis:
		if isVorbisComments {
			return pkt[7:]
		}
	default:
		if isVorbisComments {
			return pkt[7:]
		}
		if isOpusTags {
			return pkt[8:]
		}
	}
	return nil
}

// Quality reads the identification header for the sample rate and
// estimates duration from file size and an assumed average bitrate.
//
// An unidentifiable stream falls back to the file extension: ".opus"
// means Opus, anything else is treated as Vorbis.
func Quality(sr *binutil.SafeReader, maxPackets, maxPages int) (types.OggQuality, error) {
	var q types.OggQuality

	packets, err := CollectPackets(sr, maxPackets, maxPages)
	if err != nil && len(packets) == 0 {
		return q, err
	}

	streamType := DetectStreamType(packets)
	if streamType == StreamUnknown {
		if strings.HasSuffix(strings.ToLower(sr.Path()), ".opus") {
			streamType = StreamOpus
		} else {
			streamType = StreamVorbis
		}
	}

	if streamType == StreamOpus {
		for _, pkt := range packets {
			if len(pkt) >= 19 && string(pkt[0:8]) == "OpusHead" {
				q.SampleRate = int(binary.LittleEndian.Uint32(pkt[12:16]))
				if q.SampleRate == 0 {
					// OpusHead reports the original input rate; Opus
					// itself always decodes at 48 kHz.
					q.SampleRate = 48000
				}
				q.BitDepth = 16
				break
			}
		}
	} else {
		for _, pkt := range packets {
			if len(pkt) > 29 && pkt[0] == 0x01 && string(pkt[1:7]) == "vorbis" {
				q.SampleRate = int(binary.LittleEndian.Uint32(pkt[12:16]))
				q.BitDepth = 16
				break
			}
		}
	}

	avgBitrate := vorbisAverageBitrate
	if streamType == StreamOpus {
		avgBitrate = opusAverageBitrate
	}
	q.Duration = time.Duration(sr.Size()*8/int64(avgBitrate)) * time.Second

	return q, nil
}
