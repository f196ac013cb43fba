package wavhdr

// Chunk is a RIFF sub-chunk located by a walk over a file.
type Chunk struct {
	ID  [4]byte
	Tag ChunkTag
	// Offset is the position of the chunk header from the start of the file.
	Offset int
	// Size is the declared payload size, without the padding byte.
	Size uint32
	// Data is the payload. In the buffer path it aliases the input buffer;
	// the streaming Decoder leaves it nil for the data chunk.
	Data []byte
}

// ChunkInfo is an inventory entry for a chunk seen during parsing.
type ChunkInfo struct {
	ID     [4]byte
	Tag    ChunkTag
	Offset int
	Size   uint32
}

func (c Chunk) Info() ChunkInfo {
	return ChunkInfo{ID: c.ID, Tag: c.Tag, Offset: c.Offset, Size: c.Size}
}

func (ci ChunkInfo) String() string {
	return string(ci.ID[:])
}
