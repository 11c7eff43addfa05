package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// Metadata is an alias to types.Metadata.
// Re-exporting from internal/types keeps the format packages and the
// public API on one definition.
type Metadata = types.Metadata
