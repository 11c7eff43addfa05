// Package ogg demuxes Ogg container pages and reads Vorbis/Opus metadata.
//
// Only the head of a stream is ever touched: metadata and quality both
// live in the first few packets, so page and packet counts are bounded and
// the audio payload is never reassembled.
package ogg

import (
	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// headerTypeContinuation marks a page whose first segment continues a
// packet from the previous page.
const headerTypeContinuation = 0x01

// maxPacketSize caps a single reassembled packet. Header packets are tiny;
// a tag packet can carry embedded art but never legitimately reaches 10 MB
// in the pages we read.
const maxPacketSize = 10 * 1024 * 1024

// Page is one Ogg page: the header type flags, the lacing table, and the
// raw segment payload.
type Page struct {
	HeaderType   byte
	SegmentTable []byte
	Data         []byte
}

// readPage parses the page at off and returns it along with the offset of
// the next page.
func readPage(sr *binutil.SafeReader, off int64) (*Page, int64, error) {
	header := make([]byte, 27)
	if err := sr.ReadAt(header, off, "Ogg page header"); err != nil {
		return nil, 0, err
	}

	if string(header[0:4]) != "OggS" {
		return nil, 0, &types.CorruptedTagError{
			Path:   sr.Path(),
			Reason: "missing OggS capture pattern",
			Offset: off,
		}
	}

	headerType := header[5]
	numSegments := int(header[26])

	segmentTable := make([]byte, numSegments)
	if err := sr.ReadAt(segmentTable, off+27, "Ogg segment table"); err != nil {
		return nil, 0, err
	}

	var pageSize int
	for _, seg := range segmentTable {
		pageSize += int(seg)
	}

	data := make([]byte, pageSize)
	if err := sr.ReadAt(data, off+27+int64(numSegments), "Ogg page data"); err != nil {
		return nil, 0, err
	}

	page := &Page{
		HeaderType:   headerType,
		SegmentTable: segmentTable,
		Data:         data,
	}
	return page, off + 27 + int64(numSegments) + int64(pageSize), nil
}

// CollectPackets reads pages from the start of the stream and reassembles
// logical packets from the lacing tables: segments of 255 bytes continue a
// packet, a shorter segment ends it.
//
// The walk is bounded by maxPages and maxPackets. A non-continuation page
// arriving while a packet is still open means the stream lost pages; the
// partial packet is dropped and assembly resynchronizes. Packets past
// maxPacketSize are skipped rather than failing the whole read. Running
// out of pages mid-stream returns whatever packets completed.
func CollectPackets(sr *binutil.SafeReader, maxPackets, maxPages int) ([][]byte, error) {
	var packets [][]byte
	var cur []byte
	skipPacket := false

	var off int64
	for pageNum := 0; pageNum < maxPages && len(packets) < maxPackets; pageNum++ {
		page, next, err := readPage(sr, off)
		if err != nil {
			if len(packets) > 0 {
				return packets, nil
			}
			return nil, err
		}
		off = next

		if page.HeaderType&headerTypeContinuation == 0 && len(cur) > 0 {
			cur = nil
			skipPacket = false
		}

		dataOff := 0
		for _, seg := range page.SegmentTable {
			segLen := int(seg)
			if dataOff+segLen > len(page.Data) {
				return packets, &types.CorruptedTagError{
					Path:   sr.Path(),
					Reason: "segment overruns page data",
				}
			}

			if skipPacket {
				dataOff += segLen
				if segLen < 255 {
					skipPacket = false
				}
				continue
			}

			if len(cur)+segLen > maxPacketSize {
				cur = nil
				skipPacket = true
				dataOff += segLen
				if segLen < 255 {
					skipPacket = false
				}
				continue
			}

			cur = append(cur, page.Data[dataOff:dataOff+segLen]...)
			dataOff += segLen

			if segLen < 255 {
				if len(cur) > 0 {
					packets = append(packets, cur)
				}
				cur = nil
				if len(packets) >= maxPackets {
					return packets, nil
				}
			}
		}
	}

	return packets, nil
}

// StreamType identifies the codec carried by an Ogg stream.
type StreamType int

const (
	StreamUnknown StreamType = iota
	StreamOpus
	StreamVorbis
)

// DetectStreamType inspects header packets for codec magic: "OpusHead"
// for Opus, 0x01 "vorbis" for Vorbis.
func DetectStreamType(packets [][]byte) StreamType {
	for _, p := range packets {
		if len(p) >= 8 && string(p[0:8]) == "OpusHead" {
			return StreamOpus
		}
		if len(p) > 7 && p[0] == 0x01 && string(p[1:7]) == "vorbis" {
			return StreamVorbis
		}
	}
	return StreamUnknown
}
