package wavhdr

import "fmt"

// Codec is the format tag of the fmt chunk.
type Codec uint16

const (
	CodecUnknown    Codec = 0x0000
	CodecPCM        Codec = 0x0001
	CodecDPCM       Codec = 0x0002
	CodecIEEEFloat  Codec = 0x0003
	CodecALaw       Codec = 0x0006
	CodecMuLaw      Codec = 0x0007
	CodecExtensible Codec = 0xFFFE
)

var codecNames = map[Codec]string{
	CodecUnknown:    "WAVE_FORMAT_UNKNOWN",
	CodecPCM:        "WAVE_FORMAT_PCM",
	CodecDPCM:       "WAVE_FORMAT_DPCM",
	CodecIEEEFloat:  "WAVE_FORMAT_IEEE_FLOAT",
	CodecALaw:       "WAVE_FORMAT_ALAW",
	CodecMuLaw:      "WAVE_FORMAT_MULAW",
	CodecExtensible: "WAVE_FORMAT_EXTENSIBLE",
}

// Known reports whether c is one of the enumerated codecs.
func (c Codec) Known() bool {
	_, ok := codecNames[c]
	return ok
}

func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}

	return fmt.Sprintf("WAVE_FORMAT(0x%04X)", uint16(c))
}
