package wavhdr

import (
	"math/bits"
	"strings"
)

// ChannelMask is the dwChannelMask speaker position bitmask of an extensible fmt chunk.
type ChannelMask uint32

const (
	SpeakerFrontLeft ChannelMask = 1 << iota
	SpeakerFrontRight
	SpeakerFrontCenter
	SpeakerLowFrequency
	SpeakerBackLeft
	SpeakerBackRight
	SpeakerFrontLeftOfCenter
	SpeakerFrontRightOfCenter
	SpeakerBackCenter
	SpeakerSideLeft
	SpeakerSideRight
	SpeakerTopCenter
	SpeakerTopFrontLeft
	SpeakerTopFrontCenter
	SpeakerTopFrontRight
	SpeakerTopBackLeft
	SpeakerTopBackCenter
	SpeakerTopBackRight
)

var speakerNames = [...]string{
	"FL", "FR", "FC", "LFE", "BL", "BR", "FLC", "FRC", "BC",
	"SL", "SR", "TC", "TFL", "TFC", "TFR", "TBL", "TBC", "TBR",
}

// Speakers lists the short names of the positions set in the mask, in bit order.
// Reserved bits are ignored.
func (m ChannelMask) Speakers() []string {
	var out []string

	for i, name := range speakerNames {
		if m&(1<<i) != 0 {
			out = append(out, name)
		}
	}

	return out
}

// Count returns the number of speaker positions set, reserved bits included.
func (m ChannelMask) Count() int {
	return bits.OnesCount32(uint32(m))
}

func (m ChannelMask) String() string {
	speakers := m.Speakers()
	if len(speakers) == 0 {
		return "none"
	}

	return strings.Join(speakers, "|")
}
