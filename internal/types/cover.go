package types

import (
	"bytes"
	"image"

	// Registered so Cover.Dimensions can probe the formats that appear in
	// the wild inside APIC frames and FLAC picture blocks.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Cover holds a raw embedded cover image as it was stored in the tag.
//
// Data is the undecoded image file (JPEG, PNG, occasionally WebP). MIME is
// the type declared by the tag, or sniffed from magic bytes when the tag
// carries none.
type Cover struct {
	Data []byte
	MIME string
}

// Dimensions probes the image header for its pixel size.
//
// Only the image config is decoded, never the pixel data, so this is cheap
// even for multi-megabyte covers. Returns (0, 0, false) when the data is
// not a recognizable JPEG, PNG, or WebP image.
func (c *Cover) Dimensions() (width, height int, ok bool) {
	if len(c.Data) == 0 {
		return 0, 0, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(c.Data))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}

// SniffImageMIME guesses a cover's MIME type from its magic bytes.
//
// Used for FLAC covers, where the picture bytes come back from the
// container parser without a trustworthy MIME declaration. Anything that
// is not a PNG is reported as JPEG, which matches how players treat
// unlabeled cover data.
func SniffImageMIME(data []byte) string {
	if len(data) > 8 && string(data[1:4]) == "PNG" {
		return "image/png"
	}
	return "image/jpeg"
}
