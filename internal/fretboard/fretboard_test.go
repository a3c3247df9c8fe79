package fretboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schollz/pushpluck/internal/types"
)

func testBounds(numStrings int) types.StringBounds {
	return types.StringBounds{LowStr: 0, HighStr: numStrings - 1, LowFret: 0, HighFret: 11}
}

func newTestBoard(playMode types.PlayMode, channelMode types.ChannelMode) *Fretboard {
	return New(Config{
		Tuning:      []int{40, 45, 50, 55, 59, 64},
		MinVelocity: 0,
		PlayMode:    playMode,
		ChannelMode: channelMode,
		Bounds:      testBounds(6),
	})
}

func noteVelocities(msgs []FretboardMessage) []uint8 {
	var out []uint8
	for _, m := range msgs {
		var ch, key, vel uint8
		if m.Msg.GetNoteOn(&ch, &key, &vel) {
			out = append(out, vel)
		} else if m.Msg.GetNoteOff(&ch, &key, &vel) {
			out = append(out, 0)
		}
	}
	return out
}

func TestTapHammerOn(t *testing.T) {
	fb := newTestBoard(types.PlayModeTap, types.ChannelModeSingle)
	sp := types.StringPos{StrIndex: 0, Fret: 2}

	fx := fb.Trigger(sp, 100)
	require.Len(t, fx.Msgs, 1)
	assert.Equal(t, []uint8{100}, noteVelocities(fx.Msgs))
	assert.Equal(t, types.VisOnPrimary, fx.Vis[sp])

	higher := types.StringPos{StrIndex: 0, Fret: 5}
	fx = fb.Trigger(higher, 90)
	require.Len(t, fx.Msgs, 2)
	assert.Equal(t, []uint8{90, 0}, noteVelocities(fx.Msgs))
}

func TestTapLowerFretUnderCurrentMaxEmitsNothing(t *testing.T) {
	fb := newTestBoard(types.PlayModeTap, types.ChannelModeSingle)
	str := 0
	fb.Trigger(types.StringPos{StrIndex: str, Fret: 5}, 100)

	fx := fb.Trigger(types.StringPos{StrIndex: str, Fret: 2}, 80)
	assert.Empty(t, fx.Msgs)
}

func TestTapPullOff(t *testing.T) {
	fb := newTestBoard(types.PlayModeTap, types.ChannelModeSingle)
	str := 0
	low := types.StringPos{StrIndex: str, Fret: 2}
	high := types.StringPos{StrIndex: str, Fret: 5}
	fb.Trigger(low, 100)
	fb.Trigger(high, 90)

	fx := fb.Trigger(high, 0)
	require.Len(t, fx.Msgs, 2)
	assert.Equal(t, []uint8{0, 100}, noteVelocities(fx.Msgs))
}

func TestTapReleaseEmptiesGroup(t *testing.T) {
	fb := newTestBoard(types.PlayModeTap, types.ChannelModeSingle)
	sp := types.StringPos{StrIndex: 0, Fret: 3}
	fb.Trigger(sp, 100)

	fx := fb.Trigger(sp, 0)
	require.Len(t, fx.Msgs, 1)
	assert.Equal(t, []uint8{0}, noteVelocities(fx.Msgs))
	assert.Equal(t, types.VisOff, fx.Vis[sp])
}

func TestVelocityClampedToMinimum(t *testing.T) {
	fb := New(Config{
		Tuning:      []int{40, 45, 50, 55, 59, 64},
		MinVelocity: 50,
		PlayMode:    types.PlayModeTap,
		ChannelMode: types.ChannelModeSingle,
		Bounds:      testBounds(6),
	})
	fx := fb.Trigger(types.StringPos{StrIndex: 0, Fret: 0}, 10)
	assert.Equal(t, []uint8{50}, noteVelocities(fx.Msgs))

	fx = fb.Trigger(types.StringPos{StrIndex: 0, Fret: 0}, 0)
	assert.Equal(t, []uint8{0}, noteVelocities(fx.Msgs))
}

func TestPolyPassesEveryTriggerThrough(t *testing.T) {
	fb := newTestBoard(types.PlayModePoly, types.ChannelModeSingle)
	sp := types.StringPos{StrIndex: 1, Fret: 1}
	fx := fb.Trigger(sp, 70)
	assert.Equal(t, []uint8{70}, noteVelocities(fx.Msgs))

	other := types.StringPos{StrIndex: 1, Fret: 4}
	fx = fb.Trigger(other, 80)
	assert.Equal(t, []uint8{80}, noteVelocities(fx.Msgs))
}

func TestMonoChokesPreviousNoteOnNewPluck(t *testing.T) {
	fb := newTestBoard(types.PlayModeMono, types.ChannelModeSingle)
	str := 2
	fb.Trigger(types.StringPos{StrIndex: str, Fret: 1}, 90)

	fx := fb.Trigger(types.StringPos{StrIndex: str, Fret: 3}, 90)
	require.Len(t, fx.Msgs, 2)
	assert.Equal(t, []uint8{0, 90}, noteVelocities(fx.Msgs))
}

func TestChannelMapperMultiRoutesPerString(t *testing.T) {
	fb := newTestBoard(types.PlayModeTap, types.ChannelModeMulti)
	ch2, ok := fb.channelFor(types.StringPos{StrIndex: 2, Fret: 0})
	require.True(t, ok)
	assert.Equal(t, 2, ch2)
}

func TestChannelMapperMultiRejectsOutOfWindow(t *testing.T) {
	fb := newTestBoard(types.PlayModeTap, types.ChannelModeMulti)
	sp := types.StringPos{StrIndex: 9, Fret: 0}
	_, ok := fb.channelFor(sp)
	assert.False(t, ok)
	fx := fb.Trigger(sp, 100)
	assert.Empty(t, fx.Msgs)
}

func TestCleanFxEmitsOffForEveryActiveNote(t *testing.T) {
	fb := newTestBoard(types.PlayModeTap, types.ChannelModeSingle)
	a := types.StringPos{StrIndex: 0, Fret: 0}
	b := types.StringPos{StrIndex: 1, Fret: 0}
	fb.Trigger(a, 90)
	fb.Trigger(b, 90)

	fx := fb.CleanFx()
	assert.Len(t, fx.Msgs, 2)
	assert.Equal(t, types.VisOff, fx.Vis[a])
	assert.Equal(t, types.VisOff, fx.Vis[b])
}

func TestCleanFxAfterHammerOnEmitsOffForSoundingNoteOnly(t *testing.T) {
	fb := newTestBoard(types.PlayModeTap, types.ChannelModeSingle)
	str := 0
	low := types.StringPos{StrIndex: str, Fret: 2}
	high := types.StringPos{StrIndex: str, Fret: 5}
	fb.Trigger(low, 100)
	fb.Trigger(high, 90)

	fx := fb.CleanFx()
	require.Len(t, fx.Msgs, 1, "only note 45 is still sounding after the hammer-on choked note 42")
	assert.Equal(t, []uint8{0}, noteVelocities(fx.Msgs))
	var ch, key, vel uint8
	require.True(t, fx.Msgs[0].Msg.GetNoteOff(&ch, &key, &vel))
	assert.EqualValues(t, 45, key)
	assert.Equal(t, types.VisOff, fx.Vis[high])
}

func TestEquivalentPositionsAreLinkedAcrossChannels(t *testing.T) {
	fb := New(Config{
		Tuning:      []int{40, 40},
		MinVelocity: 0,
		PlayMode:    types.PlayModeTap,
		ChannelMode: types.ChannelModeMulti,
		Bounds:      testBounds(2),
	})
	a := types.StringPos{StrIndex: 0, Fret: 0}
	b := types.StringPos{StrIndex: 1, Fret: 0}

	fx := fb.Trigger(a, 90)
	assert.Equal(t, types.VisOnPrimary, fx.Vis[a])
	assert.Equal(t, types.VisOnLinked, fx.Vis[b])
}

func TestEquivalentPositionsAreDisabledOnSameChannel(t *testing.T) {
	fb := New(Config{
		Tuning:      []int{40, 40},
		MinVelocity: 0,
		PlayMode:    types.PlayModeTap,
		ChannelMode: types.ChannelModeSingle,
		Bounds:      testBounds(2),
	})
	a := types.StringPos{StrIndex: 0, Fret: 0}
	b := types.StringPos{StrIndex: 1, Fret: 0}

	fx := fb.Trigger(a, 90)
	assert.Equal(t, types.VisOnPrimary, fx.Vis[a])
	assert.Equal(t, types.VisOnDisabled, fx.Vis[b])
}
