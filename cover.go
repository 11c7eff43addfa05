package trackmeta

import (
	"fmt"
	"os"

	"github.com/simonhull/trackmeta/internal/registry"
	"github.com/simonhull/trackmeta/internal/types"

	// Registered cover extractors.
	_ "github.com/simonhull/trackmeta/internal/flac"
	_ "github.com/simonhull/trackmeta/internal/mp3"
	_ "github.com/simonhull/trackmeta/internal/ogg"
)

// Cover is an alias to types.Cover.
// Re-exporting from internal/types to keep one definition.
type Cover = types.Cover

// ExtractCover pulls the embedded cover image out of an audio file.
//
// The extension picks the container walk: .mp3 files are searched for
// APIC/PIC frames, .ogg/.oga/.opus for a METADATA_BLOCK_PICTURE comment,
// .flac for picture blocks. The image bytes come back exactly as stored;
// nothing is re-encoded.
//
// Returns *NoTagError when the file has no embedded art and
// *UnsupportedFormatError for extensions without an extractor (.m4a
// included, deliberately).
func ExtractCover(path string) (*Cover, error) {
	format := FormatFromPath(path)

	extractor := registry.Get(format)
	if extractor == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: "no cover extractor for format " + format.String(),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return extractor.ExtractCover(f, stat.Size(), path)
}
