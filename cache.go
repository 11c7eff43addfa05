package trackmeta

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SaveCoverToCache extracts a file's embedded cover and saves it under
// cacheDir, returning the path of the cached image.
//
// The cache key hashes the source path together with its size and
// modification time, so editing or replacing the audio file naturally
// produces a fresh cache entry; stale entries are left behind rather than
// evicted (the cache is bounded by library size). When the keyed image
// already exists it is returned without re-parsing the audio file.
func SaveCoverToCache(filePath, cacheDir string) (string, error) {
	cacheKey := filePath
	if stat, err := os.Stat(filePath); err == nil {
		cacheKey = fmt.Sprintf("%s|%d|%d", filePath, stat.Size(), stat.ModTime().UnixNano())
	}
	hash := xxhash.Sum64String(cacheKey)

	jpgPath := filepath.Join(cacheDir, fmt.Sprintf("cover_%x.jpg", hash))
	pngPath := filepath.Join(cacheDir, fmt.Sprintf("cover_%x.png", hash))

	if _, err := os.Stat(jpgPath); err == nil {
		return jpgPath, nil
	}
	if _, err := os.Stat(pngPath); err == nil {
		return pngPath, nil
	}

	cover, err := ExtractCover(filePath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	cachePath := jpgPath
	if strings.Contains(cover.MIME, "png") {
		cachePath = pngPath
	}

	if err := os.WriteFile(cachePath, cover.Data, 0o644); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}

	return cachePath, nil
}
