package wavhdr

import (
	"bytes"
	"encoding/binary"
)

// chunkBytes builds a chunk with a zero pad byte after odd payloads.
func chunkBytes(id string, payload []byte) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)

	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

// riffBytes wraps chunks in a RIFF/WAVE envelope with a matching size field.
func riffBytes(chunks ...[]byte) []byte {
	body := bytes.Join(chunks, nil)

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(4+len(body)))
	buf.WriteString("WAVE")
	buf.Write(body)

	return buf.Bytes()
}

// fmtBytes serializes f as a fmt chunk, honoring f.Size for the layout.
func fmtBytes(f FmtChunk) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, f.Size)
	binary.Write(buf, binary.LittleEndian, uint16(f.FormatTag))
	binary.Write(buf, binary.LittleEndian, f.NumChannels)
	binary.Write(buf, binary.LittleEndian, f.SampleRate)
	binary.Write(buf, binary.LittleEndian, f.AvgBytesPerSec)
	binary.Write(buf, binary.LittleEndian, f.BlockAlign)
	binary.Write(buf, binary.LittleEndian, f.BitsPerSample)

	if f.Size >= fmtSizeExtended {
		binary.Write(buf, binary.LittleEndian, f.CbSize)
	}

	if f.Size == fmtSizeExtensible {
		ext := f.Extensible
		if ext == nil {
			ext = &FmtExtensible{}
		}

		binary.Write(buf, binary.LittleEndian, ext.ValidBitsPerSample)
		binary.Write(buf, binary.LittleEndian, uint32(ext.ChannelMask))
		buf.Write(ext.SubFormat[:])
	}

	return buf.Bytes()
}

func factBytes(sampleLength uint32) []byte {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, sampleLength)

	return chunkBytes("fact", payload)
}

func pcmFmt(channels, bits uint16, rate uint32) FmtChunk {
	blockAlign := channels * bits / 8

	return FmtChunk{
		ChunkID:        CIDFmt,
		Size:           fmtSizeBase,
		FormatTag:      CodecPCM,
		NumChannels:    channels,
		SampleRate:     rate,
		AvgBytesPerSec: rate * uint32(blockAlign),
		BlockAlign:     blockAlign,
		BitsPerSample:  bits,
	}
}

func extensibleFmt(channels, blockAlign, bits uint16, sub Codec) FmtChunk {
	return FmtChunk{
		ChunkID:        CIDFmt,
		Size:           fmtSizeExtensible,
		FormatTag:      CodecExtensible,
		NumChannels:    channels,
		SampleRate:     48000,
		AvgBytesPerSec: 48000 * uint32(blockAlign),
		BlockAlign:     blockAlign,
		BitsPerSample:  bits,
		CbSize:         extensibleCbSize,
		Extensible: &FmtExtensible{
			ValidBitsPerSample: bits,
			ChannelMask:        SpeakerFrontLeft | SpeakerFrontRight,
			SubFormat:          makeSubFormatGUID(sub),
		},
	}
}

func muLawFmt(size uint32, bits uint16) FmtChunk {
	return FmtChunk{
		ChunkID:        CIDFmt,
		Size:           size,
		FormatTag:      CodecMuLaw,
		NumChannels:    1,
		SampleRate:     8000,
		AvgBytesPerSec: 8000,
		BlockAlign:     1,
		BitsPerSample:  bits,
	}
}

// pcmWav builds a 16-bit stereo PCM file with a fmt and data chunk.
func pcmWav(frames int) []byte {
	return riffBytes(fmtBytes(pcmFmt(2, 16, 44100)), chunkBytes("data", make([]byte, frames*4)))
}
