package wavhdr

import (
	"fmt"
	"io"
)

// ChunkWalker iterates over the sub-chunks of an in-memory RIFF file.
type ChunkWalker struct {
	buf []byte
	off int
}

// NewChunkWalker returns a walker that starts reading chunk headers at offset,
// usually RiffHeaderSize.
func NewChunkWalker(buf []byte, offset int) *ChunkWalker {
	return &ChunkWalker{buf: buf, off: offset}
}

// Offset returns the position of the next chunk header.
func (w *ChunkWalker) Offset() int {
	return w.off
}

// Next returns the next chunk and advances past its padded payload.
// It returns io.EOF once fewer than 8 bytes remain.
func (w *ChunkWalker) Next() (Chunk, error) {
	if w.off < 0 || len(w.buf)-w.off < chunkHeaderSize {
		return Chunk{}, io.EOF
	}

	c := &cursor{buf: w.buf, off: w.off}

	// can't fail, the header length was checked above
	id, _ := c.id()
	size, _ := c.u32()

	if int64(len(w.buf)-c.off) < int64(size) {
		return Chunk{}, fmt.Errorf("%w: chunk %q at offset %d declares %d bytes, %d left",
			ErrTruncatedBuffer, id[:], w.off, size, len(w.buf)-c.off)
	}

	chunk := Chunk{
		ID:     id,
		Tag:    ResolveTag(id),
		Offset: w.off,
		Size:   size,
		Data:   w.buf[c.off : c.off+int(size)],
	}

	// a missing pad byte after the final chunk is tolerated
	w.off = nextChunkOffset(w.buf, w.off, size)

	return chunk, nil
}
