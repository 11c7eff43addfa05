// Package registry manages format-specific cover extractors.
//
// Format packages register themselves during initialization (init
// functions), so the root package dispatches by format without importing
// every container parser directly.
package registry

import (
	"io"

	"github.com/simonhull/trackmeta/internal/types"
)

// CoverExtractor is the interface all cover-capable format packages implement.
type CoverExtractor interface {
	// ExtractCover pulls the first embedded cover image out of the file.
	ExtractCover(r io.ReaderAt, size int64, path string) (*types.Cover, error)
}

// extractors maps formats to their cover extractors.
var extractors = make(map[types.Format]CoverExtractor)

// Register registers a cover extractor for a format.
func Register(format types.Format, e CoverExtractor) {
	extractors[format] = e
}

// Get returns the cover extractor for a given format.
// Returns nil if no extractor is registered for the format.
func Get(format types.Format) CoverExtractor {
	return extractors[format]
}
