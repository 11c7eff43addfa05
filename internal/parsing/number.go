// Package parsing holds small text parsing helpers shared by the tag
// readers.
package parsing

import (
	"strconv"
	"strings"
)

// TrackNumber parses a track or disc number field into an int.
//
// Tags commonly store these as "3", "3/12" (position of total), or with
// stray whitespace. Only the position before the slash is kept; the total
// is discarded. Anything unparseable yields 0, which callers treat as
// "not present".
func TrackNumber(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		s = s[:idx]
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
