package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// NoTagError is an alias to types.NoTagError.
// Re-exporting from internal/types to keep one definition.
type NoTagError = types.NoTagError

// CorruptedTagError is an alias to types.CorruptedTagError.
// Re-exporting from internal/types to keep one definition.
type CorruptedTagError = types.CorruptedTagError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to keep one definition.
type UnsupportedFormatError = types.UnsupportedFormatError
