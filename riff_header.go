package wavhdr

import "fmt"

// RiffHeaderSize is the size of the RIFF/WAVE envelope at the start of a file.
const RiffHeaderSize = 12

// RiffHeader is the outer RIFF chunk header of a WAVE file.
type RiffHeader struct {
	ChunkID [4]byte
	// ChunkSize is the declared size plus the 4 bytes of the form type.
	ChunkSize uint64
	WaveID    [4]byte
	// WaveChunks is the raw declared size field.
	WaveChunks uint32
}

// ParseRiffHeader reads the RIFF header from the first 12 bytes of buf.
// Tags are not checked; see Validate.
func ParseRiffHeader(buf []byte) (RiffHeader, error) {
	var (
		hdr RiffHeader
		err error
	)

	c := &cursor{buf: buf}

	if hdr.ChunkID, err = c.id(); err != nil {
		return RiffHeader{}, fmt.Errorf("failed to read RIFF chunk ID: %w", err)
	}

	if hdr.WaveChunks, err = c.u32(); err != nil {
		return RiffHeader{}, fmt.Errorf("failed to read RIFF chunk size: %w", err)
	}

	if hdr.WaveID, err = c.id(); err != nil {
		return RiffHeader{}, fmt.Errorf("failed to read WAVE ID: %w", err)
	}

	hdr.ChunkSize = uint64(hdr.WaveChunks) + 4

	return hdr, nil
}

// Validate checks the RIFF and WAVE identifiers.
func (h RiffHeader) Validate() error {
	if h.ChunkID != CIDRiff {
		return fmt.Errorf("%w: got %q, want %q", ErrUnexpectedTag, h.ChunkID[:], CIDRiff[:])
	}

	if h.WaveID != CIDWave {
		return fmt.Errorf("%w: got form type %q, want %q", ErrUnexpectedTag, h.WaveID[:], CIDWave[:])
	}

	return nil
}

// FileSize is the total file size implied by the header.
func (h RiffHeader) FileSize() uint64 {
	return uint64(h.WaveChunks) + chunkHeaderSize
}
