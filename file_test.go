package wavhdr

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePCMWithoutFact(t *testing.T) {
	f, err := Parse(pcmWav(441))
	require.NoError(t, err)

	assert.True(t, f.HasFmt())
	assert.Equal(t, CodecPCM, f.Fmt.FormatTag)
	assert.Nil(t, f.Fact)
	assert.True(t, f.HasData)
	assert.Equal(t, 44, f.DataOffset)
	assert.Equal(t, uint32(1764), f.DataSize)
	assert.Equal(t, uint64(1804), f.Header.ChunkSize)
	require.Len(t, f.Chunks, 2)
	assert.Equal(t, TagFmt, f.Chunks[0].Tag)
	assert.Equal(t, TagData, f.Chunks[1].Tag)

	dur, err := f.Duration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, dur)
}

func TestParseFactPolicy(t *testing.T) {
	muLaw := riffBytes(fmtBytes(muLawFmt(18, 8)), chunkBytes("data", make([]byte, 8)))
	muLawFact := riffBytes(fmtBytes(muLawFmt(18, 8)), factBytes(8), chunkBytes("data", make([]byte, 8)))
	pcm := pcmWav(4)
	extPCM := riffBytes(fmtBytes(extensibleFmt(2, 4, 16, CodecPCM)), chunkBytes("data", make([]byte, 8)))
	extFloat := riffBytes(fmtBytes(extensibleFmt(2, 8, 32, CodecIEEEFloat)), chunkBytes("data", make([]byte, 8)))

	tests := []struct {
		name    string
		buf     []byte
		policy  FactPolicy
		wantErr error
	}{
		{"nonpcm mulaw without fact", muLaw, FactRequiredNonPCM, ErrMissingChunk},
		{"nonpcm mulaw with fact", muLawFact, FactRequiredNonPCM, nil},
		{"nonpcm pcm without fact", pcm, FactRequiredNonPCM, nil},
		{"nonpcm extensible pcm", extPCM, FactRequiredNonPCM, nil},
		{"nonpcm extensible float", extFloat, FactRequiredNonPCM, ErrMissingChunk},
		{"optional mulaw without fact", muLaw, FactOptional, nil},
		{"required pcm without fact", pcm, FactRequired, ErrMissingChunk},
		{"required mulaw with fact", muLawFact, FactRequired, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.buf, WithFactPolicy(tt.policy))
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseWalkLayoutFindsChunksInAnyOrder(t *testing.T) {
	buf := riffBytes(
		chunkBytes("JUNK", make([]byte, 28)),
		chunkBytes("bext", make([]byte, 3)),
		factBytes(4000),
		chunkBytes("LIST", []byte("INFOISFT\x02\x00\x00\x00x\x00")),
		fmtBytes(muLawFmt(16, 8)),
		chunkBytes("data", make([]byte, 4000)),
		chunkBytes("cue ", make([]byte, 4)),
	)

	f, err := Parse(buf)
	require.NoError(t, err)

	require.NotNil(t, f.Fact)
	assert.Equal(t, uint32(4000), f.Fact.SampleLength)
	assert.Equal(t, CodecMuLaw, f.Fmt.FormatTag)
	assert.Equal(t, uint32(4000), f.DataSize)
	require.Len(t, f.Chunks, 7)
	assert.Equal(t, TagBext, f.Chunks[1].Tag)
	assert.Equal(t, TagCue, f.Chunks[6].Tag)

	dur, err := f.Duration()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, dur)
}

func TestParseFixedLayout(t *testing.T) {
	junkFirst := riffBytes(chunkBytes("JUNK", make([]byte, 4)), fmtBytes(pcmFmt(1, 16, 8000)), chunkBytes("data", nil))
	muLawDataFirst := riffBytes(fmtBytes(muLawFmt(18, 8)), chunkBytes("data", make([]byte, 2)), factBytes(2))
	muLawFactFirst := riffBytes(fmtBytes(muLawFmt(18, 8)), factBytes(2), chunkBytes("data", make([]byte, 2)))
	muLawFmtOnly := riffBytes(fmtBytes(muLawFmt(18, 8)))

	_, err := Parse(junkFirst, WithLayout(LayoutFixed))
	require.ErrorIs(t, err, ErrUnexpectedTag)

	_, err = Parse(junkFirst)
	require.NoError(t, err)

	_, err = Parse(muLawDataFirst, WithLayout(LayoutFixed))
	require.ErrorIs(t, err, ErrUnexpectedTag)

	f, err := Parse(muLawDataFirst)
	require.NoError(t, err)
	require.NotNil(t, f.Fact)

	_, err = Parse(muLawDataFirst, WithLayout(LayoutFixed), WithFactPolicy(FactOptional))
	require.NoError(t, err)

	f, err = Parse(muLawFactFirst, WithLayout(LayoutFixed))
	require.NoError(t, err)
	assert.Equal(t, uint32(2), f.Fact.SampleLength)

	_, err = Parse(muLawFmtOnly, WithLayout(LayoutFixed))
	require.ErrorIs(t, err, ErrMissingChunk)

	_, err = Parse(pcmWav(2), WithLayout(LayoutFixed))
	require.NoError(t, err)
}

func TestParseHeaderErrors(t *testing.T) {
	notRiff := pcmWav(2)
	copy(notRiff[0:4], "RIFX")

	notWave := pcmWav(2)
	copy(notWave[8:12], "AVI ")

	noFmt := riffBytes(chunkBytes("data", make([]byte, 4)))

	badFmt := riffBytes(fmtBytes(pcmFmt(1, 16, 8000)))
	binary.LittleEndian.PutUint32(badFmt[16:20], 20)
	badFmt = append(badFmt, 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(badFmt[4:8], uint32(len(badFmt)-8))

	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{"empty", nil, ErrTruncatedBuffer},
		{"short", []byte("RIFF\x04\x00"), ErrTruncatedBuffer},
		{"not RIFF", notRiff, ErrUnexpectedTag},
		{"not WAVE", notWave, ErrUnexpectedTag},
		{"no fmt", noFmt, ErrMissingChunk},
		{"header only", []byte("RIFF\x04\x00\x00\x00WAVE"), ErrMissingChunk},
		{"fmt size 20", badFmt, ErrInvalidChunkSize},
		{"mulaw 16 bits", riffBytes(fmtBytes(muLawFmt(16, 16)), factBytes(1)), ErrInvalidBitsForCodec},
		{"truncated data", pcmWav(10)[:50], ErrTruncatedBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.buf)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseIgnoresBytesPastRiffSize(t *testing.T) {
	buf := append(pcmWav(2), []byte("JUNK\xff\xff\xff\xff")...)

	f, err := Parse(buf)
	require.NoError(t, err)
	assert.Len(t, f.Chunks, 2)
}

func TestParseFirstFmtWins(t *testing.T) {
	buf := riffBytes(fmtBytes(pcmFmt(1, 16, 8000)), fmtBytes(pcmFmt(2, 16, 44100)), chunkBytes("data", nil))

	f, err := Parse(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), f.Fmt.NumChannels)
	assert.Len(t, f.Chunks, 3)
}

func TestParseRecordsDoNotAliasBuffer(t *testing.T) {
	buf := riffBytes(fmtBytes(extensibleFmt(2, 4, 16, CodecPCM)), factBytes(7), chunkBytes("data", make([]byte, 4)))

	f, err := Parse(buf)
	require.NoError(t, err)

	want := f.Fmt.Clone()
	wantFact := *f.Fact

	for i := range buf {
		buf[i] = 0xFF
	}

	assert.Equal(t, want, f.Fmt)
	assert.Equal(t, wantFact, *f.Fact)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, os.WriteFile(path, pcmWav(100), 0o644))

	f, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(400), f.DataSize)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.wav"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDurationWithoutData(t *testing.T) {
	f, err := Parse(riffBytes(fmtBytes(pcmFmt(1, 16, 8000))))
	require.NoError(t, err)

	_, err = f.Duration()
	require.ErrorIs(t, err, ErrNoDuration)

	var empty *File
	_, err = empty.Duration()
	require.ErrorIs(t, err, ErrMissingChunk)
}

func TestFileFrames(t *testing.T) {
	f, err := Parse(pcmWav(441))
	require.NoError(t, err)

	frames, err := f.Frames()
	require.NoError(t, err)
	assert.Equal(t, int64(441), frames)

	f, err = Parse(riffBytes(fmtBytes(muLawFmt(18, 8)), factBytes(4000), chunkBytes("data", make([]byte, 10))))
	require.NoError(t, err)

	frames, err = f.Frames()
	require.NoError(t, err)
	assert.Equal(t, int64(4000), frames)

	f, err = Parse(riffBytes(fmtBytes(pcmFmt(1, 16, 8000))))
	require.NoError(t, err)

	_, err = f.Frames()
	require.ErrorIs(t, err, ErrNoDuration)
}
