// Command coverscan warms a cover cache for a music library: it walks a
// directory tree, extracts the embedded cover of every supported audio
// file, and saves each one under the cache directory keyed by file
// identity. Re-running it over an unchanged library is cheap because
// already-cached covers are skipped.
package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/trackmeta"
)

func main() {
	root := flag.String("root", ".", "Music library root to scan")
	cacheDir := flag.String("cache", "covers", "Directory for cached cover images")
	workers := flag.Int("workers", runtime.NumCPU(), "Concurrent extraction workers")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	paths, err := collectAudioFiles(*root)
	if err != nil {
		log.Fatal().Err(err).Str("root", *root).Msg("Failed to scan library")
	}
	if len(paths) == 0 {
		log.Info().Str("root", *root).Msg("No audio files found")
		return
	}

	log.Info().
		Str("root", *root).
		Str("cache", *cacheDir).
		Int("files", len(paths)).
		Int("workers", *workers).
		Msg("Warming cover cache")

	saved, missing := warmCache(context.Background(), paths, *cacheDir, *workers)

	log.Info().
		Int64("cached", saved).
		Int64("without_cover", missing).
		Msg("Done")
}

// audioExtensions lists the file types the cover extractors understand.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".ogg":  true,
	".oga":  true,
	".opus": true,
	".flac": true,
}

func collectAudioFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if audioExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// warmCache extracts and caches covers concurrently, reporting progress
// on the terminal. Files without a cover are counted, not treated as
// failures.
func warmCache(ctx context.Context, paths []string, cacheDir string, workers int) (saved, missing int64) {
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Extracting covers"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			defer bar.Add(1)

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			cached, err := trackmeta.SaveCoverToCache(path, cacheDir)
			if err != nil {
				atomic.AddInt64(&missing, 1)
				log.Debug().Err(err).Str("file", path).Msg("No cover cached")
				return nil
			}

			atomic.AddInt64(&saved, 1)
			log.Debug().Str("file", path).Str("cover", cached).Msg("Cover cached")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Cache warm aborted")
	}
	return saved, missing
}
