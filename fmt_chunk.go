package wavhdr

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-audio/audio"
	"github.com/google/uuid"
)

// FmtChunkStart is the offset of the fmt chunk in a canonical WAVE file.
const FmtChunkStart = RiffHeaderSize

const (
	fmtSizeBase       = 16
	fmtSizeExtended   = 18
	fmtSizeExtensible = 40

	extensibleCbSize = 22
)

const (
	ksSubFormatGUIDTail0  = 0x00
	ksSubFormatGUIDTail1  = 0x00
	ksSubFormatGUIDTail2  = 0x10
	ksSubFormatGUIDTail3  = 0x00
	ksSubFormatGUIDTail4  = 0x80
	ksSubFormatGUIDTail5  = 0x00
	ksSubFormatGUIDTail6  = 0x00
	ksSubFormatGUIDTail7  = 0xAA
	ksSubFormatGUIDTail8  = 0x00
	ksSubFormatGUIDTail9  = 0x38
	ksSubFormatGUIDTail10 = 0x9B
	ksSubFormatGUIDTail11 = 0x71
)

// FmtChunk stores the parsed WAV fmt chunk, including extensible metadata.
type FmtChunk struct {
	ChunkID        [4]byte
	Size           uint32
	FormatTag      Codec
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	// CbSize is only read when Size is 18 or 40.
	CbSize     uint16
	Extensible *FmtExtensible
}

// FmtExtensible stores WAVE_FORMAT_EXTENSIBLE extra fields.
type FmtExtensible struct {
	ValidBitsPerSample uint16
	ChannelMask        ChannelMask
	SubFormat          [16]byte
}

// ParseFmtChunk parses the fmt chunk starting at offset and returns it along
// with the offset of the next chunk.
func ParseFmtChunk(buf []byte, offset int) (FmtChunk, int, error) {
	c := &cursor{buf: buf, off: offset}

	id, err := c.id()
	if err != nil {
		return FmtChunk{}, 0, fmt.Errorf("failed to read fmt chunk ID: %w", err)
	}

	size, err := c.u32()
	if err != nil {
		return FmtChunk{}, 0, fmt.Errorf("failed to read fmt chunk size: %w", err)
	}

	if err := checkFmtSize(size); err != nil {
		return FmtChunk{}, 0, err
	}

	// fields are decoded in order so a bad cbSize is reported ahead of a
	// short extensible tail
	end := min(c.off+int(size), len(buf))

	fmtChunk, err := decodeFmtBody(id, size, buf[c.off:end])
	if err != nil {
		return FmtChunk{}, 0, err
	}

	return fmtChunk, nextChunkOffset(buf, offset, size), nil
}

func checkFmtSize(size uint32) error {
	switch size {
	case fmtSizeBase, fmtSizeExtended, fmtSizeExtensible:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidChunkSize, size)
	}
}

// decodeFmtBody decodes the payload of a fmt chunk whose header was already read.
func decodeFmtBody(id [4]byte, size uint32, body []byte) (FmtChunk, error) {
	if err := checkFmtSize(size); err != nil {
		return FmtChunk{}, err
	}

	fmtChunk := FmtChunk{ChunkID: id, Size: size}
	c := &cursor{buf: body}

	formatTag, err := c.u16()
	if err != nil {
		return FmtChunk{}, fmt.Errorf("failed to read wav format: %w", err)
	}

	fmtChunk.FormatTag = Codec(formatTag)

	if fmtChunk.NumChannels, err = c.u16(); err != nil {
		return FmtChunk{}, fmt.Errorf("failed to read channels: %w", err)
	}

	if fmtChunk.SampleRate, err = c.u32(); err != nil {
		return FmtChunk{}, fmt.Errorf("failed to read sample rate: %w", err)
	}

	if fmtChunk.AvgBytesPerSec, err = c.u32(); err != nil {
		return FmtChunk{}, fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	if fmtChunk.BlockAlign, err = c.u16(); err != nil {
		return FmtChunk{}, fmt.Errorf("failed to read block align: %w", err)
	}

	if fmtChunk.BitsPerSample, err = c.u16(); err != nil {
		return FmtChunk{}, fmt.Errorf("failed to read bit depth: %w", err)
	}

	if size >= fmtSizeExtended {
		if fmtChunk.CbSize, err = c.u16(); err != nil {
			return FmtChunk{}, fmt.Errorf("failed to read fmt extension size: %w", err)
		}

		if size == fmtSizeExtended && fmtChunk.CbSize != 0 {
			return FmtChunk{}, fmt.Errorf("%w: chunk size 18 requires cbSize 0, got %d",
				ErrInvalidExtensionSize, fmtChunk.CbSize)
		}
	}

	if size == fmtSizeExtensible {
		if fmtChunk.CbSize != extensibleCbSize {
			return FmtChunk{}, fmt.Errorf("%w: chunk size 40 requires cbSize 22, got %d",
				ErrInvalidExtensionSize, fmtChunk.CbSize)
		}

		ext, err := decodeFmtExtensible(c)
		if err != nil {
			return FmtChunk{}, err
		}

		fmtChunk.Extensible = ext
	}

	if err := fmtChunk.Validate(); err != nil {
		return FmtChunk{}, err
	}

	return fmtChunk, nil
}

func decodeFmtExtensible(c *cursor) (*FmtExtensible, error) {
	ext := &FmtExtensible{}

	var err error
	if ext.ValidBitsPerSample, err = c.u16(); err != nil {
		return nil, fmt.Errorf("failed to read valid bits per sample: %w", err)
	}

	mask, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("failed to read channel mask: %w", err)
	}

	ext.ChannelMask = ChannelMask(mask)

	guid, err := c.take(len(ext.SubFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to read sub format: %w", err)
	}

	copy(ext.SubFormat[:], guid)

	return ext, nil
}

// Validate applies the codec-specific layout rules.
func (f FmtChunk) Validate() error {
	switch f.FormatTag {
	case CodecALaw, CodecMuLaw:
		if f.BitsPerSample != 8 {
			return fmt.Errorf("%w: %s requires 8 bits per sample, got %d",
				ErrInvalidBitsForCodec, f.FormatTag, f.BitsPerSample)
		}
	case CodecExtensible:
		if f.NumChannels == 0 {
			return fmt.Errorf("%w: zero channels", ErrInvalidExtensibleLayout)
		}

		if bits := 8 * uint32(f.BlockAlign) / uint32(f.NumChannels); bits != uint32(f.BitsPerSample) {
			return fmt.Errorf("%w: 8*%d/%d = %d, bits per sample is %d",
				ErrInvalidExtensibleLayout, f.BlockAlign, f.NumChannels, bits, f.BitsPerSample)
		}
	}

	return nil
}

// HasExtensionSize reports whether the chunk carries a cbSize field.
func (f FmtChunk) HasExtensionSize() bool {
	return f.Size >= fmtSizeExtended
}

func (f FmtChunk) Clone() FmtChunk {
	out := f
	if f.Extensible != nil {
		ext := *f.Extensible
		out.Extensible = &ext
	}

	return out
}

// EffectiveFormatTag returns the sub-format codec for extensible chunks and
// the format tag otherwise.
func (f FmtChunk) EffectiveFormatTag() Codec {
	if f.FormatTag == CodecExtensible && f.Extensible != nil {
		return Codec(binary.LittleEndian.Uint16(f.Extensible.SubFormat[:2]))
	}

	return f.FormatTag
}

// AudioFormat describes the stream as a go-audio format.
func (f FmtChunk) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: int(f.NumChannels),
		SampleRate:  int(f.SampleRate),
	}
}

// PCMBuffer returns an empty go-audio buffer describing how the samples of
// the stream decode: DataType names the store a decoder fills and
// SourceBitDepth the container width in bytes. DataType is DataTypeUnknown
// when go-audio has no store for the codec, and SourceBitDepth is 0 when the
// block alignment isn't a whole number of bytes per channel.
func (f FmtChunk) PCMBuffer() *audio.PCMBuffer {
	buf := &audio.PCMBuffer{
		Format:   f.AudioFormat(),
		DataType: f.pcmDataType(),
	}

	if f.NumChannels > 0 && f.BlockAlign%f.NumChannels == 0 {
		if width := f.BlockAlign / f.NumChannels; width <= 8 {
			buf.SourceBitDepth = uint8(width)
		}
	}

	return buf
}

func (f FmtChunk) pcmDataType() audio.PCMDataFormat {
	bits := f.BitsPerSample

	switch f.EffectiveFormatTag() {
	case CodecPCM:
		switch {
		case bits == 0:
			return audio.DataTypeUnknown
		case bits <= 8:
			return audio.DataTypeI8
		case bits <= 16:
			return audio.DataTypeI16
		case bits <= 32:
			return audio.DataTypeI32
		}
	case CodecIEEEFloat:
		switch bits {
		case 32:
			return audio.DataTypeF32
		case 64:
			return audio.DataTypeF64
		}
	case CodecALaw, CodecMuLaw:
		// companded bytes expand to 16-bit linear samples
		return audio.DataTypeI16
	}

	return audio.DataTypeUnknown
}

// SubFormatGUID returns the sub-format as a UUID. The on-disk GUID stores
// its first three fields little-endian.
func (e FmtExtensible) SubFormatGUID() uuid.UUID {
	var u uuid.UUID

	g := e.SubFormat
	u[0], u[1], u[2], u[3] = g[3], g[2], g[1], g[0]
	u[4], u[5] = g[5], g[4]
	u[6], u[7] = g[7], g[6]
	copy(u[8:], g[8:])

	return u
}

// IsStandardSubFormat reports whether the sub-format is a KSDATAFORMAT GUID
// derived from a 16-bit format tag.
func (e FmtExtensible) IsStandardSubFormat() bool {
	base := makeSubFormatGUID(0)

	return bytes.Equal(e.SubFormat[2:], base[2:])
}

func makeSubFormatGUID(formatTag Codec) [16]byte {
	var guid [16]byte
	binary.LittleEndian.PutUint32(guid[:4], uint32(formatTag))
	guid[4] = ksSubFormatGUIDTail0
	guid[5] = ksSubFormatGUIDTail1
	guid[6] = ksSubFormatGUIDTail2
	guid[7] = ksSubFormatGUIDTail3
	guid[8] = ksSubFormatGUIDTail4
	guid[9] = ksSubFormatGUIDTail5
	guid[10] = ksSubFormatGUIDTail6
	guid[11] = ksSubFormatGUIDTail7
	guid[12] = ksSubFormatGUIDTail8
	guid[13] = ksSubFormatGUIDTail9
	guid[14] = ksSubFormatGUIDTail10
	guid[15] = ksSubFormatGUIDTail11

	return guid
}
