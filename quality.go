package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// MP3Quality is an alias to types.MP3Quality.
// Re-exporting from internal/types to keep one definition.
type MP3Quality = types.MP3Quality

// OggQuality is an alias to types.OggQuality.
// Re-exporting from internal/types to keep one definition.
type OggQuality = types.OggQuality
