package binary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeReader_ReadAt(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.bin")

	buf := make([]byte, 3)
	require.NoError(t, sr.ReadAt(buf, 1, "middle bytes"))
	assert.Equal(t, []byte{0x02, 0x03, 0x04}, buf)
}

func TestSafeReader_Bounds(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.bin")

	tests := []struct {
		name string
		off  int64
		n    int
	}{
		{"negative offset", -1, 1},
		{"offset at end", 4, 1},
		{"offset past end", 100, 1},
		{"read crosses end", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sr.ReadAt(make([]byte, tt.n), tt.off, "oob")
			assert.Error(t, err)
		})
	}
}

func TestRead_BigEndian(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.bin")

	b, err := Read[uint8](sr, 0, "byte")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x12), b)

	u16, err := Read[uint16](sr, 0, "uint16")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u32, err := Read[uint32](sr, 0, "uint32")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), u32)

	_, err = Read[uint64](sr, 0, "uint64 past end")
	assert.Error(t, err)
}
