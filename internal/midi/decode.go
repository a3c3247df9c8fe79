package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/schollz/pushpluck/internal/types"
)

// Event is the union of everything the decoder can produce. Exactly one
// of the typed fields is valid, named by Kind.
type EventKind int

const (
	EventNone EventKind = iota
	EventPad
	EventButton
	EventKnob
	EventTimeDiv
	EventGridSel
	EventChanSel
)

// PadEvent is a note-on/note-off targeting one of the 64 pads. A note-off
// (or a note-on with velocity 0) is represented with Velocity == 0.
type PadEvent struct {
	Pos      types.Pos
	Velocity uint8
}

// ButtonEvent is a control-change targeting a known button.
type ButtonEvent struct {
	Button  ButtonCC
	Pressed bool
}

// KnobEvent is a control-change targeting a known encoder, decomposed into
// direction and accumulator group/offset.
type KnobEvent struct {
	Knob      KnobCC
	Group     types.KnobGroup
	Offset    int
	Clockwise bool
}

// TimeDivEvent is a control-change targeting a time-division button.
type TimeDivEvent struct {
	TimeDiv TimeDivCC
	Pressed bool
}

// GridSelEvent is a control-change targeting a grid-select side button.
type GridSelEvent struct {
	Pos     types.GridSelPos
	Pressed bool
}

// ChanSelEvent is a control-change targeting a channel-select side button.
type ChanSelEvent struct {
	Pos     types.ChanSelPos
	Pressed bool
}

// Event wraps the decoded result. Only the field named by Kind is valid.
type Event struct {
	Kind     EventKind
	Pad      PadEvent
	Button   ButtonEvent
	Knob     KnobEvent
	TimeDiv  TimeDivEvent
	GridSel  GridSelEvent
	ChanSel  ChanSelEvent
}

// Decode turns one raw MIDI message into at most one typed event, trying
// classes in the order Knob, Button, Pad, TimeDiv, GridSel, ChanSel.
// Messages that don't match any known class are dropped silently (they
// return ok == false), matching spec's decoder error policy: malformed or
// unrecognized input is never propagated as an error.
func Decode(msg gomidi.Message) (Event, bool) {
	var ch, key, val uint8

	if msg.GetControlChange(&ch, &key, &val) {
		control := int(key)
		value := int(val)

		if knob, group, offset, ok := KnobFromCC(control); ok {
			return Event{Kind: EventKnob, Knob: KnobEvent{
				Knob:      knob,
				Group:     group,
				Offset:    offset,
				Clockwise: value < 64,
			}}, true
		}
		if button, ok := ButtonFromCC(control); ok {
			return Event{Kind: EventButton, Button: ButtonEvent{
				Button:  button,
				Pressed: value > 0,
			}}, true
		}
		if td, ok := TimeDivFromCC(control); ok {
			return Event{Kind: EventTimeDiv, TimeDiv: TimeDivEvent{
				TimeDiv: td,
				Pressed: value > 0,
			}}, true
		}
		if gs, ok := GridSelFromControl(control); ok {
			return Event{Kind: EventGridSel, GridSel: GridSelEvent{
				Pos:     gs,
				Pressed: value > 0,
			}}, true
		}
		if cs, ok := ChanSelFromControl(control); ok {
			return Event{Kind: EventChanSel, ChanSel: ChanSelEvent{
				Pos:     cs,
				Pressed: value > 0,
			}}, true
		}
		return Event{}, false
	}

	if msg.GetNoteOn(&ch, &key, &val) {
		pos, ok := types.PosFromNote(int(key))
		if !ok {
			return Event{}, false
		}
		return Event{Kind: EventPad, Pad: PadEvent{Pos: pos, Velocity: val}}, true
	}

	if msg.GetNoteOff(&ch, &key, &val) {
		pos, ok := types.PosFromNote(int(key))
		if !ok {
			return Event{}, false
		}
		return Event{Kind: EventPad, Pad: PadEvent{Pos: pos, Velocity: 0}}, true
	}

	return Event{}, false
}
