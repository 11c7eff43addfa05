package types

import "fmt"

// NoTagError is returned when a file carries no tag of the requested kind.
//
// This is the "nothing to report" case, not a parse failure: the file may
// be a perfectly valid audio file that simply was never tagged. Callers
// typically treat it as an empty result.
type NoTagError struct {
	Path string
	Kind string // "ID3", "ID3v1", "Vorbis comment", "cover art"
}

func (e *NoTagError) Error() string {
	return fmt.Sprintf("%s: no %s found", e.Path, e.Kind)
}

// CorruptedTagError is returned when tag structure is invalid: a magic
// mismatch, a declared size that exceeds the remaining bytes, or invalid
// base64 in an embedded picture.
type CorruptedTagError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedTagError) Error() string {
	return fmt.Sprintf("%s: corrupted tag at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// UnsupportedFormatError is returned for containers this library explicitly
// does not handle, such as M4A cover extraction.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}
