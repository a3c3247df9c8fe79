package midi

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schollz/pushpluck/internal/types"
)

func TestDecodePad(t *testing.T) {
	ev, ok := Decode(gomidi.NoteOn(0, 44, 100))
	require.True(t, ok)
	assert.Equal(t, EventPad, ev.Kind)
	assert.Equal(t, types.Pos{Row: 1, Col: 0}, ev.Pad.Pos)
	assert.EqualValues(t, 100, ev.Pad.Velocity)
}

func TestDecodeNoteOnZeroVelocityIsPadOff(t *testing.T) {
	ev, ok := Decode(gomidi.NoteOn(0, 44, 0))
	require.True(t, ok)
	assert.Equal(t, EventPad, ev.Kind)
	assert.EqualValues(t, 0, ev.Pad.Velocity)
}

func TestDecodeCenterKnobClockwise(t *testing.T) {
	ev, ok := Decode(gomidi.ControlChange(0, 71, 1))
	require.True(t, ok)
	assert.Equal(t, EventKnob, ev.Kind)
	assert.Equal(t, types.KnobGroupCenter, ev.Knob.Group)
	assert.Equal(t, 0, ev.Knob.Offset)
	assert.True(t, ev.Knob.Clockwise)
}

func TestDecodeCenterKnobCounterClockwise(t *testing.T) {
	ev, ok := Decode(gomidi.ControlChange(0, 78, 65))
	require.True(t, ok)
	assert.Equal(t, EventKnob, ev.Kind)
	assert.Equal(t, 7, ev.Knob.Offset)
	assert.False(t, ev.Knob.Clockwise)
}

func TestDecodeKnobValue127IsNotClockwise(t *testing.T) {
	ev, ok := Decode(gomidi.ControlChange(0, 71, 127))
	require.True(t, ok)
	assert.False(t, ev.Knob.Clockwise)
}

func TestDecodeMasterEncoderDecodesAsMasterGroup(t *testing.T) {
	ev, ok := Decode(gomidi.ControlChange(0, 79, 1))
	require.True(t, ok)
	assert.Equal(t, EventKnob, ev.Kind)
	assert.Equal(t, KnobMaster, ev.Knob.Knob)
	assert.Equal(t, types.KnobGroupMaster, ev.Knob.Group)
}

func TestDecodeUnknownControlChangeIsDropped(t *testing.T) {
	_, ok := Decode(gomidi.ControlChange(0, 1, 64))
	assert.False(t, ok)
}
