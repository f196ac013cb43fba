package wavhdr

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// File is the parsed header information of a WAVE file.
type File struct {
	Header RiffHeader
	Fmt    FmtChunk
	// Fact is nil when the file has no fact chunk.
	Fact *FactChunk

	HasData bool
	// DataOffset is the offset of the first sample byte.
	DataOffset int
	DataSize   uint32

	// Chunks lists every sub-chunk seen, in file order.
	Chunks []ChunkInfo

	hasFmt bool
}

// Parse parses the header chunks of an in-memory WAVE file.
func Parse(buf []byte, opts ...Option) (*File, error) {
	o := newOptions(opts)

	hdr, err := ParseRiffHeader(buf)
	if err != nil {
		return nil, err
	}

	if err := hdr.Validate(); err != nil {
		return nil, err
	}

	// ignore trailing bytes past the declared RIFF size
	end := len(buf)
	if size := hdr.FileSize(); size < uint64(end) {
		end = int(size)
	}

	asm := newAssembler(hdr, o)
	walker := NewChunkWalker(buf[:end], RiffHeaderSize)

	for {
		chunk, err := walker.Next()
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

// ParseFile reads the file at path into memory and parses it.
func ParseFile(path string, opts ...Option) (*File, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := Parse(buf, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// HasFmt reports whether a fmt chunk was decoded.
func (f *File) HasFmt() bool {
	return f != nil && f.hasFmt
}

// Duration returns the playing time, from the fact sample length for
// non-PCM codecs and from the data size otherwise.
func (f *File) Duration() (time.Duration, error) {
	if !f.HasFmt() {
		return 0, fmt.Errorf("%w: %q", ErrMissingChunk, CIDFmt[:])
	}

	if f.Fact != nil && f.Fmt.EffectiveFormatTag() != CodecPCM && f.Fmt.SampleRate > 0 {
		return framesDuration(f.Fact.SampleLength, f.Fmt.SampleRate), nil
	}

	if f.HasData && f.Fmt.AvgBytesPerSec > 0 {
		return bytesDuration(uint64(f.DataSize), f.Fmt.AvgBytesPerSec), nil
	}

	return 0, ErrNoDuration
}

// Frames returns the number of sample frames, from the fact sample length
// for non-PCM codecs and from the whole blocks of the data chunk otherwise.
func (f *File) Frames() (int64, error) {
	if !f.HasFmt() {
		return 0, fmt.Errorf("%w: %q", ErrMissingChunk, CIDFmt[:])
	}

	if f.Fact != nil && f.Fmt.EffectiveFormatTag() != CodecPCM {
		return int64(f.Fact.SampleLength), nil
	}

	if f.HasData && f.Fmt.BlockAlign > 0 {
		return int64(f.DataSize / uint32(f.Fmt.BlockAlign)), nil
	}

	return 0, ErrNoDuration
}

// assembler feeds walked chunks into a File and applies the layout and fact rules.
type assembler struct {
	opts Options
	file *File
}

func newAssembler(hdr RiffHeader, opts Options) *assembler {
	return &assembler{opts: opts, file: &File{Header: hdr}}
}

func (a *assembler) add(ch Chunk) error {
	index := len(a.file.Chunks)
	a.file.Chunks = append(a.file.Chunks, ch.Info())

	if a.opts.Layout == LayoutFixed {
		if err := a.checkFixedLayout(index, ch); err != nil {
			return err
		}
	}

	_, err := a.opts.Registry.Decode(a.file, ch)

	return err
}

func (a *assembler) checkFixedLayout(index int, ch Chunk) error {
	switch {
	case index == 0 && ch.Tag != TagFmt:
		return fmt.Errorf("%w: got %q at offset %d, want %q", ErrUnexpectedTag, ch.ID[:], ch.Offset, CIDFmt[:])
	case index == 1 && ch.Tag != TagFact && a.factRequired():
		return fmt.Errorf("%w: got %q at offset %d, want %q", ErrUnexpectedTag, ch.ID[:], ch.Offset, CIDFact[:])
	}

	return nil
}

func (a *assembler) factRequired() bool {
	switch a.opts.FactPolicy {
	case FactRequired:
		return true
	case FactOptional:
		return false
	default:
		return a.file.hasFmt && a.file.Fmt.EffectiveFormatTag() != CodecPCM
	}
}

func (a *assembler) finish() (*File, error) {
	if !a.file.hasFmt {
		return nil, fmt.Errorf("%w: %q", ErrMissingChunk, CIDFmt[:])
	}

	if a.file.Fact == nil && a.factRequired() {
		return nil, fmt.Errorf("%w: %q required for %s (policy %s)",
			ErrMissingChunk, CIDFact[:], a.file.Fmt.FormatTag, a.opts.FactPolicy)
	}

	return a.file, nil
}
