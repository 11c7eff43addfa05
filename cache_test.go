package trackmeta

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMP3WithCover builds an ID3v2.3 file whose only frame is an APIC
// with the given MIME and image bytes.
func buildMP3WithCover(mime string, image []byte) []byte {
	payload := []byte{0}
	payload = append(payload, mime...)
	payload = append(payload, 0, 3) // MIME terminator, picture type
	payload = append(payload, 0)    // empty description
	payload = append(payload, image...)

	frame := make([]byte, 10+len(payload))
	copy(frame, "APIC")
	binary.BigEndian.PutUint32(frame[4:8], uint32(len(payload)))
	copy(frame[10:], payload)

	size := len(frame)
	tag := []byte{
		'I', 'D', '3', 3, 0, 0,
		byte(size >> 21 & 0x7F), byte(size >> 14 & 0x7F),
		byte(size >> 7 & 0x7F), byte(size & 0x7F),
	}
	return append(tag, frame...)
}

func TestExtractCover_MP3(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3}
	path := writeTempFile(t, "art.mp3", buildMP3WithCover("image/jpeg", image))

	cover, err := ExtractCover(path)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", cover.MIME)
	assert.Equal(t, image, cover.Data)
}

func TestExtractCover_M4AUnsupported(t *testing.T) {
	path := writeTempFile(t, "song.m4a", make([]byte, 64))

	_, err := ExtractCover(path)

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
}

func TestExtractCover_UnknownExtension(t *testing.T) {
	path := writeTempFile(t, "notes.txt", []byte("hello"))

	_, err := ExtractCover(path)

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
}

func TestSaveCoverToCache(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 9, 8, 7}
	path := writeTempFile(t, "art.mp3", buildMP3WithCover("image/jpeg", image))
	cacheDir := filepath.Join(t.TempDir(), "covers")

	cached, err := SaveCoverToCache(path, cacheDir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(cached, ".jpg"))

	data, err := os.ReadFile(cached)
	require.NoError(t, err)
	assert.Equal(t, image, data)
}

func TestSaveCoverToCache_Idempotent(t *testing.T) {
	image := []byte{0xFF, 0xD8, 1}
	path := writeTempFile(t, "art.mp3", buildMP3WithCover("image/jpeg", image))
	cacheDir := t.TempDir()

	first, err := SaveCoverToCache(path, cacheDir)
	require.NoError(t, err)

	// A second call for the unchanged file must hit the cache: same path,
	// and the cached image must not have been rewritten.
	info, err := os.Stat(first)
	require.NoError(t, err)

	second, err := SaveCoverToCache(path, cacheDir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	after, err := os.Stat(first)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())
}

func TestSaveCoverToCache_MTimeInvalidates(t *testing.T) {
	image := []byte{0xFF, 0xD8, 2}
	path := writeTempFile(t, "art.mp3", buildMP3WithCover("image/jpeg", image))
	cacheDir := t.TempDir()

	first, err := SaveCoverToCache(path, cacheDir)
	require.NoError(t, err)

	newTime := time.Now().Add(2 * time.Hour)
	require.NoError(t, os.Chtimes(path, newTime, newTime))

	second, err := SaveCoverToCache(path, cacheDir)
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "changed mtime must produce a fresh cache entry")
}

func TestSaveCoverToCache_PNGExtension(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	path := writeTempFile(t, "art.mp3", buildMP3WithCover("image/png", image))

	cached, err := SaveCoverToCache(path, t.TempDir())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(cached, ".png"))
}

func TestSaveCoverToCache_NoCover(t *testing.T) {
	path := writeTempFile(t, "plain.mp3", buildID3v23(
		[2]string{"TIT2", "No Art"},
	))

	_, err := SaveCoverToCache(path, t.TempDir())
	assert.Error(t, err)
}

func TestSaveCoverToCache_CreatesCacheDir(t *testing.T) {
	image := []byte{0xFF, 0xD8, 5}
	path := writeTempFile(t, "art.mp3", buildMP3WithCover("image/jpeg", image))
	cacheDir := filepath.Join(t.TempDir(), "a", "b", "covers")

	cached, err := SaveCoverToCache(path, cacheDir)
	require.NoError(t, err)
	assert.DirExists(t, cacheDir)
	assert.FileExists(t, cached)
}
