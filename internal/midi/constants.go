// Package midi holds everything specific to the Push 1 wire protocol: the
// control-change tables, the sysex framing, the RGB color type, the event
// decoder, and the pure functions that build outbound display messages.
package midi

import "github.com/schollz/pushpluck/internal/types"

// AbletonSysexPrefix is prepended to every sysex frame sent to the Push.
var AbletonSysexPrefix = []byte{0x47, 0x7F, 0x15}

// Display geometry.
const (
	DisplayMaxRows   = 4
	DisplayMaxLineLen = 68
	DisplayBlockLen  = 17
	DisplayMaxBlocks = DisplayMaxLineLen / DisplayBlockLen
)

// Multi-channel routing bounds. Not specified by the original source;
// base=0 with a 6-channel window matches a standard 6-string tuning 1:1.
const (
	MidiBaseChannel = 0
	MidiMinChannel  = 0
	MidiMaxChannel  = 5
)

// ButtonCC enumerates every control-change number the decoder recognizes
// as a button, named after the corresponding Push control.
type ButtonCC int

const (
	ButtonTapTempo ButtonCC = iota
	ButtonMetronome
	ButtonUndo
	ButtonDelete
	ButtonDouble
	ButtonQuantize
	ButtonFixedLength
	ButtonAutomation
	ButtonDuplicate
	ButtonNew
	ButtonRec
	ButtonPlay
	ButtonMaster
	ButtonStop
	ButtonLeft
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonVolume
	ButtonPanSend
	ButtonTrack
	ButtonClip
	ButtonDevice
	ButtonBrowse
	ButtonStepIn
	ButtonStepOut
	ButtonMute
	ButtonSolo
	ButtonScales
	ButtonUser
	ButtonRepeat
	ButtonAccent
	ButtonOctaveDown
	ButtonOctaveUp
	ButtonAddEffect
	ButtonAddTrack
	ButtonNote
	ButtonSession
	ButtonSelect
	ButtonShift
)

// buttonToCC mirrors the original source's BUTTON_TO_CC table exactly.
var buttonToCC = map[ButtonCC]int{
	ButtonTapTempo:    3,
	ButtonMetronome:   9,
	ButtonUndo:        119,
	ButtonDelete:      118,
	ButtonDouble:      117,
	ButtonQuantize:    116,
	ButtonFixedLength: 90,
	ButtonAutomation:  89,
	ButtonDuplicate:   88,
	ButtonNew:         87,
	ButtonRec:         86,
	ButtonPlay:        85,
	ButtonMaster:      28,
	ButtonStop:        29,
	ButtonLeft:        44,
	ButtonRight:       45,
	ButtonUp:          46,
	ButtonDown:        47,
	ButtonVolume:      114,
	ButtonPanSend:     115,
	ButtonTrack:       112,
	ButtonClip:        113,
	ButtonDevice:      110,
	ButtonBrowse:      111,
	ButtonStepIn:      62,
	ButtonStepOut:     63,
	ButtonMute:        60,
	ButtonSolo:        61,
	ButtonScales:      58,
	ButtonUser:        59,
	ButtonRepeat:      56,
	ButtonAccent:      57,
	ButtonOctaveDown:  54,
	ButtonOctaveUp:    55,
	ButtonAddEffect:   52,
	ButtonAddTrack:    53,
	ButtonNote:        50,
	ButtonSession:     51,
	ButtonSelect:      48,
	ButtonShift:       49,
}

var ccToButton map[int]ButtonCC

func init() {
	ccToButton = make(map[int]ButtonCC, len(buttonToCC))
	for button, cc := range buttonToCC {
		ccToButton[cc] = button
	}
}

// ToCC returns the control-change number for a button.
func (b ButtonCC) ToCC() int { return buttonToCC[b] }

// ButtonFromCC looks up the button bound to a control-change number.
func ButtonFromCC(cc int) (ButtonCC, bool) {
	b, ok := ccToButton[cc]
	return b, ok
}

// TimeDivCC enumerates the eight time-division buttons, CC 36..43.
type TimeDivCC int

const (
	TimeDivQuarter TimeDivCC = iota
	TimeDivQuarterTriplet
	TimeDivEighth
	TimeDivEighthTriplet
	TimeDivSixteenth
	TimeDivSixteenthTriplet
	TimeDivThirtySecond
	TimeDivThirtySecondTriplet
)

const lowTimeDivControl = 36

// ToCC returns the control-change number for a time-division button.
func (t TimeDivCC) ToCC() int { return lowTimeDivControl + int(t) }

// TimeDivFromCC looks up the time-division button bound to a CC number.
func TimeDivFromCC(cc int) (TimeDivCC, bool) {
	off := cc - lowTimeDivControl
	if off < 0 || off >= 8 {
		return 0, false
	}
	return TimeDivCC(off), true
}

// Side-selector CC ranges.
const (
	lowChanControl = 20
	lowGridControl = 102
)

// ChanSelToControl returns the control-change number for a channel-select pos.
func ChanSelToControl(p types.ChanSelPos) int { return lowChanControl + p.Col }

// ChanSelFromControl looks up the channel-select position bound to a CC.
func ChanSelFromControl(control int) (types.ChanSelPos, bool) {
	col := control - lowChanControl
	if col < 0 || col >= types.NumPadCols {
		return types.ChanSelPos{}, false
	}
	return types.ChanSelPos{Col: col}, true
}

// GridSelToControl returns the control-change number for a grid-select pos.
func GridSelToControl(p types.GridSelPos) int { return lowGridControl + p.Col }

// GridSelFromControl looks up the grid-select position bound to a CC.
func GridSelFromControl(control int) (types.GridSelPos, bool) {
	col := control - lowGridControl
	if col < 0 || col >= types.NumPadCols {
		return types.GridSelPos{}, false
	}
	return types.GridSelPos{Col: col}, true
}

// KnobCC enumerates the eight center-column encoders (Device page), the
// two outer jog wheels, and the master encoder. Controls 14/15 are the
// outer wheels, 71..78 are the eight center knobs, and 79 is the master
// encoder.
type KnobCC int

const (
	KnobLeft KnobCC = iota
	KnobCenter0
	KnobCenter1
	KnobCenter2
	KnobCenter3
	KnobCenter4
	KnobCenter5
	KnobCenter6
	KnobCenter7
	KnobRight
	KnobMaster
)

var knobToCC = map[KnobCC]int{
	KnobLeft:    14,
	KnobCenter0: 71,
	KnobCenter1: 72,
	KnobCenter2: 73,
	KnobCenter3: 74,
	KnobCenter4: 75,
	KnobCenter5: 76,
	KnobCenter6: 77,
	KnobCenter7: 78,
	KnobRight:   15,
	KnobMaster:  79,
}

var ccToKnob map[int]KnobCC

func init() {
	ccToKnob = make(map[int]KnobCC, len(knobToCC))
	for knob, cc := range knobToCC {
		ccToKnob[cc] = knob
	}
}

// ToCC returns the control-change number for a knob.
func (k KnobCC) ToCC() int { return knobToCC[k] }

// KnobFromCC looks up the knob bound to a control-change number, along
// with its group (Left wheel, Center column, Right wheel) and, for the
// center column, its 0-based offset.
func KnobFromCC(cc int) (knob KnobCC, group types.KnobGroup, offset int, ok bool) {
	k, ok := ccToKnob[cc]
	if !ok {
		return 0, 0, 0, false
	}
	switch k {
	case KnobLeft:
		return k, types.KnobGroupLeft, 0, true
	case KnobRight:
		return k, types.KnobGroupRight, 0, true
	case KnobMaster:
		return k, types.KnobGroupMaster, 0, true
	default:
		return k, types.KnobGroupCenter, int(k - KnobCenter0), true
	}
}

// ButtonIllum is the brightness level written for a button's illumination.
type ButtonIllum int

const (
	IllumOff  ButtonIllum = 0
	IllumHalf ButtonIllum = 1
	IllumFull ButtonIllum = 4
)
