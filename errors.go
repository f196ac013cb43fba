package wavhdr

import "errors"

var (
	// ErrTruncatedBuffer is returned when the buffer ends before a field.
	ErrTruncatedBuffer = errors.New("truncated buffer")
	// ErrInvalidChunkSize is returned when the fmt chunk size is not 16, 18 or 40.
	ErrInvalidChunkSize = errors.New("invalid fmt chunk size")
	// ErrInvalidExtensionSize is returned when cbSize does not match the fmt chunk size.
	ErrInvalidExtensionSize = errors.New("invalid fmt extension size")
	// ErrInvalidBitsForCodec is returned for A-law/mu-law data that is not 8 bits.
	ErrInvalidBitsForCodec = errors.New("invalid bits per sample for codec")
	// ErrInvalidExtensibleLayout is returned when a WAVE_FORMAT_EXTENSIBLE
	// block alignment does not match its channel count and sample width.
	ErrInvalidExtensibleLayout = errors.New("invalid extensible layout")
	// ErrUnexpectedTag is returned when a chunk ID is not the one expected.
	ErrUnexpectedTag = errors.New("unexpected chunk tag")
	// ErrMissingChunk is returned when a required chunk is absent.
	ErrMissingChunk = errors.New("missing chunk")
	// ErrNoDuration is returned when the file carries nothing to derive a duration from.
	ErrNoDuration = errors.New("can't derive duration")
)
