package wavhdr

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// chunkHeaderSize is the size of a chunk ID plus its little-endian size field.
const chunkHeaderSize = 8

// cursor reads little-endian fields from a buffer with bounds checks.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.off < 0 || n < 0 || c.off > len(c.buf) || len(c.buf)-c.off < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, buffer is %d bytes",
			ErrTruncatedBuffer, n, c.off, len(c.buf))
	}

	out := c.buf[c.off : c.off+n]
	c.off += n

	return out, nil
}

func (c *cursor) id() ([4]byte, error) {
	var id [4]byte

	b, err := c.take(4)
	if err != nil {
		return id, err
	}

	copy(id[:], b)

	return id, nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// paddedSize rounds a chunk size up to the RIFF word boundary.
func paddedSize(size uint32) int64 {
	return int64(size) + int64(size%2)
}

// nextChunkOffset returns the offset after the chunk at offset with the given
// payload size. A missing pad byte at the end of buf is tolerated.
func nextChunkOffset(buf []byte, offset int, size uint32) int {
	return min(offset+chunkHeaderSize+int(paddedSize(size)), len(buf))
}

// framesDuration converts a per-channel sample count into a duration.
func framesDuration(frames uint32, sampleRate uint32) time.Duration {
	if sampleRate == 0 {
		return 0
	}

	return time.Duration(math.Round(float64(frames) / float64(sampleRate) * float64(time.Second)))
}

// bytesDuration converts a byte count at a given byte rate into a duration.
func bytesDuration(n uint64, bytesPerSec uint32) time.Duration {
	if bytesPerSec == 0 {
		return 0
	}

	return time.Duration(math.Round(float64(n) / float64(bytesPerSec) * float64(time.Second)))
}
