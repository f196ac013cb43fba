package wavhdr

import "github.com/go-audio/riff"

var (
	// CIDRiff is the chunk ID of the outer RIFF chunk.
	CIDRiff = riff.RiffID
	// CIDWave is the form type of a RIFF/WAVE file.
	CIDWave = riff.WavFormatID
	// CIDFmt is the chunk ID for the format chunk.
	CIDFmt = riff.FmtID
	// CIDFact is the chunk ID for the fact chunk.
	CIDFact = [4]byte{'f', 'a', 'c', 't'}
	// CIDData is the chunk ID for the data chunk.
	CIDData = riff.DataFormatID
	// CIDCue is the chunk ID for the cue chunk.
	CIDCue = [4]byte{'c', 'u', 'e', 0x20}
	// CIDPlst is the chunk ID for the playlist chunk.
	CIDPlst = [4]byte{'p', 'l', 's', 't'}
	// CIDLabl is the chunk ID for an associated data list label.
	CIDLabl = [4]byte{'l', 'a', 'b', 'l'}
	// CIDNote is the chunk ID for an associated data list note.
	CIDNote = [4]byte{'n', 'o', 't', 'e'}
	// CIDSmpl is the chunk ID for a smpl chunk.
	CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}
	// CIDBext is the chunk ID for the broadcast extension chunk.
	CIDBext = [4]byte{'b', 'e', 'x', 't'}
	// CIDIXML is the chunk ID for the iXML chunk.
	CIDIXML = [4]byte{'i', 'X', 'M', 'L'}
	// CIDDS64 is the chunk ID for the RF64 size chunk.
	CIDDS64 = [4]byte{'d', 's', '6', '4'}
)

// ChunkTag identifies a known RIFF/WAVE chunk. The zero value is TagUnknown.
type ChunkTag uint8

const (
	TagUnknown ChunkTag = iota
	TagRIFF
	TagWAVE
	TagFmt
	TagFact
	TagData
	TagCue
	TagPlst
	TagLabl
	TagNote
	TagSmpl
	TagBext
	TagIXML
	TagDS64
)

var tagIDs = [...][4]byte{
	TagRIFF: CIDRiff,
	TagWAVE: CIDWave,
	TagFmt:  CIDFmt,
	TagFact: CIDFact,
	TagData: CIDData,
	TagCue:  CIDCue,
	TagPlst: CIDPlst,
	TagLabl: CIDLabl,
	TagNote: CIDNote,
	TagSmpl: CIDSmpl,
	TagBext: CIDBext,
	TagIXML: CIDIXML,
	TagDS64: CIDDS64,
}

var tagsByID = func() map[[4]byte]ChunkTag {
	m := make(map[[4]byte]ChunkTag, len(tagIDs))
	for tag, id := range tagIDs {
		if ChunkTag(tag) == TagUnknown {
			continue
		}

		m[id] = ChunkTag(tag)
	}

	return m
}()

// ResolveTag maps a raw four-byte chunk ID to its ChunkTag.
// Unrecognized IDs resolve to TagUnknown.
func ResolveTag(id [4]byte) ChunkTag {
	return tagsByID[id]
}

// ID returns the raw four-byte identifier. TagUnknown has an all-zero ID.
func (t ChunkTag) ID() [4]byte {
	if int(t) >= len(tagIDs) {
		return [4]byte{}
	}

	return tagIDs[t]
}

func (t ChunkTag) String() string {
	if t == TagUnknown || int(t) >= len(tagIDs) {
		return "unknown"
	}

	id := tagIDs[t]

	return string(id[:])
}
