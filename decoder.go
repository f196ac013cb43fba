package wavhdr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// Decoder parses WAVE headers from a stream without buffering the sample data.
type Decoder struct {
	r      io.Reader
	parser *riff.Parser
	opts   Options

	offset    int
	remaining int64
}

// NewDecoder creates a decoder for the passed wav reader.
// Note that the reader doesn't get rewinded as the container is processed.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
		opts:   newOptions(opts),
	}
}

// Decode reads the RIFF header and every sub-chunk, skipping over sample data.
// The result matches Parse on the same bytes.
func (d *Decoder) Decode() (*File, error) {
	hdr, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	asm := newAssembler(hdr, d.opts)

	for {
		chunk, err := d.NextChunk()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if err := asm.add(chunk); err != nil {
			return nil, err
		}
	}

	return asm.finish()
}

func (d *Decoder) readHeader() (RiffHeader, error) {
	id, size, err := d.parser.IDnSize()
	if err != nil {
		return RiffHeader{}, fmt.Errorf("failed to read chunk ID and size: %w", truncated(err))
	}

	d.parser.ID = id
	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return RiffHeader{}, fmt.Errorf("failed to read format: %w", truncated(err))
	}

	hdr := RiffHeader{
		ChunkID:    id,
		ChunkSize:  uint64(size) + 4,
		WaveID:     d.parser.Format,
		WaveChunks: size,
	}

	if err := hdr.Validate(); err != nil {
		return RiffHeader{}, err
	}

	d.offset = RiffHeaderSize
	d.remaining = int64(hdr.FileSize()) - RiffHeaderSize

	return hdr, nil
}

// NextChunk reads the next chunk within the declared RIFF size. The data
// chunk is skipped and returned without payload. It returns io.EOF at the end.
func (d *Decoder) NextChunk() (Chunk, error) {
	if d.remaining < chunkHeaderSize {
		return Chunk{}, io.EOF
	}

	id, size, err := d.parser.IDnSize()
	if err != nil {
		// a partial trailing header ends the walk, like ChunkWalker
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Chunk{}, io.EOF
		}

		return Chunk{}, fmt.Errorf("error reading chunk header - %w", err)
	}

	d.remaining -= chunkHeaderSize
	if int64(size) > d.remaining {
		return Chunk{}, fmt.Errorf("%w: chunk %q at offset %d declares %d bytes, %d left",
			ErrTruncatedBuffer, id[:], d.offset, size, d.remaining)
	}

	// all RIFF chunks must be word aligned, the padding byte isn't part of size
	chnk := &riff.Chunk{
		ID:   id,
		Size: int(paddedSize(size)),
		R:    io.LimitReader(d.r, paddedSize(size)),
	}

	out := Chunk{ID: id, Tag: ResolveTag(id), Offset: d.offset, Size: size}

	if out.Tag == TagData {
		if _, err := io.CopyN(io.Discard, chnk, int64(size)); err != nil {
			return Chunk{}, fmt.Errorf("failed to skip data chunk: %w", truncated(err))
		}
	} else {
		// grow with the bytes actually read, the declared size isn't trusted
		data, err := io.ReadAll(io.LimitReader(chnk, int64(size)))
		if err != nil {
			return Chunk{}, fmt.Errorf("failed to read chunk %q: %w", id[:], truncated(err))
		}

		if len(data) < int(size) {
			return Chunk{}, fmt.Errorf("%w: chunk %q at offset %d declares %d bytes, got %d",
				ErrTruncatedBuffer, id[:], d.offset, size, len(data))
		}

		out.Data = data
	}

	chnk.Drain()

	d.offset += chunkHeaderSize + int(paddedSize(size))
	d.remaining -= paddedSize(size)

	return out, nil
}

// truncated maps a short read to ErrTruncatedBuffer. io.EOF is dropped from
// the chain so a cut payload can't pass for the end of the chunk list.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncatedBuffer, err)
	}

	return err
}
