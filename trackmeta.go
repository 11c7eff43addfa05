package trackmeta

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/mp3"
	"github.com/simonhull/trackmeta/internal/ogg"
	"github.com/simonhull/trackmeta/internal/types"
)

// openFile opens path and wraps it in a bounds-checked reader. The caller
// owns the returned close function.
func openFile(path string) (*binutil.SafeReader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat file: %w", err)
	}

	return binutil.NewSafeReader(f, stat.Size(), path), f.Close, nil
}

// ReadID3Tags reads descriptive metadata from an MP3 file.
//
// ID3v2 is the primary source. When it yields no title or no artist, the
// ID3v1 trailer backfills the fields ID3v1 can carry (title, artist,
// album, year, genre); ID3v2 values always win where present. Returns
// *NoTagError when neither tag produces a title or an artist.
func ReadID3Tags(path string) (*Metadata, error) {
	sr, closeFile, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	meta, err := mp3.ParseID3v2(sr)
	if err != nil && !isTagError(err) {
		return nil, err
	}

	if meta.Title == "" || meta.Artist == "" {
		if v1, err := mp3.ParseID3v1(sr); err == nil {
			meta = types.FillMissing(meta, v1)
		}
	}

	if meta.Empty() {
		return nil, &NoTagError{Path: path, Kind: "ID3 tags"}
	}

	return &meta, nil
}

// GetMP3Quality reads coarse quality facts from an MP3 file: sample rate,
// bitrate, bit depth, and an estimated duration.
//
// A file whose audio region contains no recognizable MPEG frame returns a
// zero-value MP3Quality with a nil error.
func GetMP3Quality(path string) (*MP3Quality, error) {
	sr, closeFile, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	q, err := mp3.Quality(sr)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ReadOggVorbisComments reads descriptive metadata from an Ogg Vorbis or
// Opus file's comment packet.
//
// Returns *NoTagError when the stream head carries no usable comments.
func ReadOggVorbisComments(path string, opts ...Option) (*Metadata, error) {
	sr, closeFile, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	packets, pages := resolveOptions(ogg.DefaultMetadataPacketLimit, ogg.DefaultMetadataPageLimit, opts)
	meta, err := ogg.ReadComments(sr, packets, pages)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetOggQuality reads coarse quality facts from an Ogg Vorbis or Opus
// file: sample rate from the identification header and a duration
// estimated from file size.
func GetOggQuality(path string, opts ...Option) (*OggQuality, error) {
	sr, closeFile, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	packets, pages := resolveOptions(ogg.DefaultQualityPacketLimit, ogg.DefaultQualityPageLimit, opts)
	q, err := ogg.Quality(sr, packets, pages)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ReadMetadata classifies the file's container and routes to the right
// tag pipeline.
//
// Classification probes magic bytes first and falls back to the file
// extension when the probe is inconclusive. FLAC and M4A carry no ID3 or
// Ogg comment pipeline here and return *UnsupportedFormatError.
func ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var format Format
	if stat, statErr := f.Stat(); statErr == nil {
		format, err = types.DetectFormat(f, stat.Size(), path)
		if err != nil {
			format = FormatFromPath(path)
		}
	} else {
		format = FormatFromPath(path)
	}
	f.Close()

	switch format {
	case FormatMP3:
		return ReadID3Tags(path)
	case FormatOgg, FormatOpus:
		return ReadOggVorbisComments(path)
	default:
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no metadata pipeline for format %s", format),
		}
	}
}

// ReadMany reads metadata from multiple files concurrently.
//
// Results are positionally aligned with paths. Files that fail to parse
// leave a nil slot instead of failing the batch; only context
// cancellation aborts the whole read.
func ReadMany(ctx context.Context, paths ...string) ([]*Metadata, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Metadata, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			meta, err := ReadMetadata(path)
			if err != nil {
				// Untagged or unsupported files are expected in a batch.
				return nil
			}

			results[i] = meta
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// isTagError reports whether err is a structural tag problem rather than
// an IO failure, i.e. the file was readable but its tag was absent or
// unusable.
func isTagError(err error) bool {
	var noTag *types.NoTagError
	var corrupted *types.CorruptedTagError
	return errors.As(err, &noTag) || errors.As(err, &corrupted)
}
