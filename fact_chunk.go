package wavhdr

import "fmt"

const factSampleLengthSize = 4

// FactChunk holds the per-channel sample count of a compressed WAVE file.
type FactChunk struct {
	ChunkID      [4]byte
	Size         uint32
	SampleLength uint32
}

// ParseFactChunk parses the fact chunk starting at offset, normally the
// offset returned by ParseFmtChunk, and returns the offset of the next chunk.
// The whole declared payload must be in buf. The chunk ID is not checked.
func ParseFactChunk(buf []byte, offset int) (FactChunk, int, error) {
	c := &cursor{buf: buf, off: offset}

	id, err := c.id()
	if err != nil {
		return FactChunk{}, 0, fmt.Errorf("failed to read fact chunk ID: %w", err)
	}

	size, err := c.u32()
	if err != nil {
		return FactChunk{}, 0, fmt.Errorf("failed to read fact chunk size: %w", err)
	}

	body, err := c.take(int(size))
	if err != nil {
		return FactChunk{}, 0, fmt.Errorf("failed to read fact chunk body: %w", err)
	}

	fact, err := decodeFactBody(id, size, body)
	if err != nil {
		return FactChunk{}, 0, err
	}

	return fact, nextChunkOffset(buf, offset, size), nil
}

func decodeFactBody(id [4]byte, size uint32, body []byte) (FactChunk, error) {
	if size < factSampleLengthSize {
		return FactChunk{}, fmt.Errorf("%w: fact chunk declares %d bytes, need %d",
			ErrTruncatedBuffer, size, factSampleLengthSize)
	}

	c := &cursor{buf: body}

	sampleLength, err := c.u32()
	if err != nil {
		return FactChunk{}, fmt.Errorf("failed to read fact sample length: %w", err)
	}

	return FactChunk{ChunkID: id, Size: size, SampleLength: sampleLength}, nil
}
