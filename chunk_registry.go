package wavhdr

import "fmt"

// ChunkHandler is a typed handler for RIFF/WAV chunks.
type ChunkHandler interface {
	CanHandle(tag ChunkTag, chunkID [4]byte) bool
	Decode(f *File, ch Chunk) error
}

// ChunkRegistry resolves chunks to handlers.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

// NewChunkRegistry returns a registry with the fmt, fact and data handlers.
func NewChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: []ChunkHandler{
			&fmtChunkHandler{},
			&factChunkHandler{},
			&dataChunkHandler{},
		},
	}
}

// Register appends a handler to the registry. It runs after the built-in
// handlers, including for fmt, fact and data chunks.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// Decode dispatches a chunk to every matching handler in registration order
// and stops at the first error. It reports whether any handler matched.
func (r *ChunkRegistry) Decode(f *File, ch Chunk) (bool, error) {
	if r == nil || f == nil {
		return false, nil
	}

	handled := false

	for _, handler := range r.handlers {
		if !handler.CanHandle(ch.Tag, ch.ID) {
			continue
		}

		handled = true

		if err := handler.Decode(f, ch); err != nil {
			return true, fmt.Errorf("chunk %q at offset %d: %w", ch.ID[:], ch.Offset, err)
		}
	}

	return handled, nil
}

type fmtChunkHandler struct{}

func (h *fmtChunkHandler) CanHandle(tag ChunkTag, _ [4]byte) bool {
	return tag == TagFmt
}

func (h *fmtChunkHandler) Decode(f *File, ch Chunk) error {
	if f.hasFmt {
		return nil
	}

	fmtChunk, err := decodeFmtBody(ch.ID, ch.Size, ch.Data)
	if err != nil {
		return err
	}

	f.Fmt = fmtChunk
	f.hasFmt = true

	return nil
}

type factChunkHandler struct{}

func (h *factChunkHandler) CanHandle(tag ChunkTag, _ [4]byte) bool {
	return tag == TagFact
}

func (h *factChunkHandler) Decode(f *File, ch Chunk) error {
	if f.Fact != nil {
		return nil
	}

	fact, err := decodeFactBody(ch.ID, ch.Size, ch.Data)
	if err != nil {
		return err
	}

	f.Fact = &fact

	return nil
}

type dataChunkHandler struct{}

func (h *dataChunkHandler) CanHandle(tag ChunkTag, _ [4]byte) bool {
	return tag == TagData
}

func (h *dataChunkHandler) Decode(f *File, ch Chunk) error {
	if f.HasData {
		return nil
	}

	f.HasData = true
	f.DataOffset = ch.Offset + chunkHeaderSize
	f.DataSize = ch.Size

	return nil
}
