package flac

import (
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"

	"github.com/simonhull/trackmeta/internal/registry"
	"github.com/simonhull/trackmeta/internal/types"
)

func init() {
	registry.Register(types.FormatFLAC, &CoverExtractor{})
}

// CoverExtractor pulls embedded pictures out of FLAC containers.
//
// Container walking is delegated to github.com/mewkiz/flac; only the
// picture selection and MIME sniffing are local.
type CoverExtractor struct{}

// ExtractCover returns the first picture block in the container,
// preferring the front cover when one is marked.
//
// Declared MIME types in the wild are unreliable ("image/jpg", empty
// strings), so the type is sniffed from the image magic bytes instead.
func (e *CoverExtractor) ExtractCover(r io.ReaderAt, size int64, path string) (*types.Cover, error) {
	stream, err := flac.Parse(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, &types.CorruptedTagError{Path: path, Reason: err.Error()}
	}

	var first, front *meta.Picture
	for _, block := range stream.Blocks {
		pic, ok := block.Body.(*meta.Picture)
		if !ok || pic == nil || len(pic.Data) == 0 {
			continue
		}
		if first == nil {
			first = pic
		}
		// 3 is "Cover (front)" in the FLAC picture type table.
		if pic.Type == 3 {
			front = pic
			break
		}
	}

	pic := front
	if pic == nil {
		pic = first
	}
	if pic == nil {
		return nil, &types.NoTagError{Path: path, Kind: "cover art"}
	}

	return &types.Cover{
		Data: pic.Data,
		MIME: types.SniffImageMIME(pic.Data),
	}, nil
}
