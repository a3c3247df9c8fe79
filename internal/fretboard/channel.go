package fretboard

import (
	"github.com/schollz/pushpluck/internal/midi"
	"github.com/schollz/pushpluck/internal/types"
)

// channelMapper routes a string index onto a MIDI channel. Single mode
// collapses every string onto one channel; Multi mode gives each string
// its own channel, bounded by the configured window.
type channelMapper struct {
	mode types.ChannelMode
}

func newChannelMapper(mode types.ChannelMode) channelMapper {
	return channelMapper{mode: mode}
}

func (m channelMapper) channel(strIndex int) (int, bool) {
	if m.mode == types.ChannelModeSingle {
		return midi.MidiBaseChannel, true
	}
	ch := midi.MidiBaseChannel + strIndex
	if ch < midi.MidiMinChannel || ch > midi.MidiMaxChannel {
		return 0, false
	}
	return ch, true
}
