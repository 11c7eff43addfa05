// Command tagdump prints everything trackmeta can read from a file:
// metadata, quality facts, and cover info. Useful when checking what a
// particular tagger actually wrote.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/simonhull/trackmeta"
)

func main() {
	quality := flag.Bool("quality", false, "also print quality facts")
	cover := flag.Bool("cover", false, "also print embedded cover info")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tagdump [-quality] [-cover] <file>...")
		os.Exit(1)
	}

	exitCode := 0
	for _, path := range flag.Args() {
		if err := dump(path, *quality, *cover); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func dump(path string, withQuality, withCover bool) error {
	fmt.Printf("== %s\n", path)

	meta, err := trackmeta.ReadMetadata(path)
	if err != nil {
		return err
	}

	printField("Title", meta.Title)
	printField("Artist", meta.Artist)
	printField("Album", meta.Album)
	printField("AlbumArtist", meta.AlbumArtist)
	printField("Genre", meta.Genre)
	printField("Year", meta.Year)
	printField("Date", meta.Date)
	printField("ISRC", meta.ISRC)
	if meta.TrackNumber != 0 {
		fmt.Printf("  %-12s %d\n", "Track", meta.TrackNumber)
	}
	if meta.DiscNumber != 0 {
		fmt.Printf("  %-12s %d\n", "Disc", meta.DiscNumber)
	}

	if withQuality {
		if err := dumpQuality(path); err != nil {
			fmt.Fprintf(os.Stderr, "  quality: %v\n", err)
		}
	}

	if withCover {
		if err := dumpCover(path); err != nil {
			fmt.Fprintf(os.Stderr, "  cover: %v\n", err)
		}
	}

	return nil
}

func dumpQuality(path string) error {
	switch trackmeta.FormatFromPath(path) {
	case trackmeta.FormatMP3:
		q, err := trackmeta.GetMP3Quality(path)
		if err != nil {
			return err
		}
		fmt.Printf("  %-12s %d Hz, %d kbps, ~%s\n", "Quality", q.SampleRate, q.Bitrate/1000, q.Duration)
	case trackmeta.FormatOgg, trackmeta.FormatOpus:
		q, err := trackmeta.GetOggQuality(path)
		if err != nil {
			return err
		}
		fmt.Printf("  %-12s %d Hz, ~%s\n", "Quality", q.SampleRate, q.Duration)
	default:
		return fmt.Errorf("no quality reader for %s", trackmeta.FormatFromPath(path))
	}
	return nil
}

func dumpCover(path string) error {
	cover, err := trackmeta.ExtractCover(path)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s, %d bytes", cover.MIME, len(cover.Data))
	if w, h, ok := cover.Dimensions(); ok {
		line += fmt.Sprintf(", %dx%d", w, h)
	}
	fmt.Printf("  %-12s %s\n", "Cover", line)
	return nil
}

func printField(name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Printf("  %-12s %s\n", name, value)
}
