// Package config holds the single source of truth for every user-facing
// option, the color scheme it's rendered with, and the small persistence
// helper that lets a session's settings survive a restart.
package config

import (
	"github.com/schollz/pushpluck/internal/midi"
	"github.com/schollz/pushpluck/internal/scale"
	"github.com/schollz/pushpluck/internal/types"
)

// StandardTuning is standard 6-string guitar tuning (E2 A2 D3 G3 B3 E4),
// low string first, as absolute open-string MIDI notes.
var StandardTuning = []int{40, 45, 50, 55, 59, 64}

// Config is the single source of truth for user-facing options. It is
// constructed once at startup and mutated only by the Menu.
type Config struct {
	InstrumentName string
	TuningName     string
	Tuning         []int
	Layout         types.Layout
	PlayMode       types.PlayMode
	ChannelMode    types.ChannelMode
	Scale          scale.Scale
	Root           scale.NoteName
	MinVelocity    uint8
	Semitones      int
	StrOffset      int
	FretOffset     int
}

// Default builds the startup config: standard tuning, horizontal layout,
// tap/choke play mode, single channel, C major, and the given velocity
// floor.
func Default(minVelocity uint8) Config {
	return Config{
		InstrumentName: "Guitar",
		TuningName:     "Standard",
		Tuning:         append([]int(nil), StandardTuning...),
		Layout:         types.LayoutHoriz,
		PlayMode:       types.PlayModeTap,
		ChannelMode:    types.ChannelModeSingle,
		Scale:          scale.ModeScale(scale.C, scale.Ionian),
		Root:           scale.C,
		MinVelocity:    minVelocity,
		Semitones:      0,
		StrOffset:      0,
		FretOffset:     0,
	}
}

// ColorScheme names the palette slot used for every pad/button state the
// display driver can paint.
type ColorScheme struct {
	RootNote       midi.Color
	MemberNote     midi.Color
	OtherNote      midi.Color
	PrimaryNote    midi.Color
	DisabledNote   midi.Color
	LinkedNote     midi.Color
	MiscPressed    midi.Color
	Control        midi.Color
	ControlPressed midi.Color
}

// DefaultScheme builds the color scheme described in the original
// project's default_scheme, extended with the three extra VisState slots
// (disabled/linked are distinguishable from primary so a player can tell
// a choked string apart from one ringing on another channel).
func DefaultScheme(p colorLookup) ColorScheme {
	return ColorScheme{
		RootNote:       p.Get("Blue"),
		MemberNote:     p.Get("White"),
		OtherNote:      p.Get("Black"),
		PrimaryNote:    p.Get("Green"),
		DisabledNote:   p.Get("DarkGrey"),
		LinkedNote:     p.Get("Spring"),
		MiscPressed:    p.Get("Sky"),
		Control:        p.Get("Yellow"),
		ControlPressed: p.Get("Green"),
	}
}

// colorLookup is the one method pulled from *palette.Palette, kept as an
// interface here so this package doesn't need to import palette directly.
type colorLookup interface {
	Get(name string) midi.Color
}

// NoteType classifies a pitch against the active scale; Misc marks a pad
// the viewport doesn't map to any string (pressable or purely decorative);
// Control marks a fixed-function button.
type PadColorMapper struct {
	kind      padKind
	noteType  types.NoteType
	pressable bool
}

type padKind int

const (
	kindNote padKind = iota
	kindMisc
	kindControl
)

// NotePad builds a mapper for a pad that sounds a pitch.
func NotePad(noteType types.NoteType) PadColorMapper {
	return PadColorMapper{kind: kindNote, noteType: noteType}
}

// MiscPad builds a mapper for a pad outside the current string/fret
// mapping. pressable controls whether it lights up at all when active.
func MiscPad(pressable bool) PadColorMapper {
	return PadColorMapper{kind: kindMisc, pressable: pressable}
}

// ControlPad builds a mapper for a fixed-function button-like pad.
func ControlPad() PadColorMapper {
	return PadColorMapper{kind: kindControl}
}

// GetColor resolves a pad's mapper plus its current VisState into a
// color, or none to mean "LED off".
func (m PadColorMapper) GetColor(scheme ColorScheme, vis types.VisState) (midi.Color, bool) {
	switch m.kind {
	case kindNote:
		switch vis {
		case types.VisOnPrimary:
			return scheme.PrimaryNote, true
		case types.VisOnDisabled:
			return scheme.DisabledNote, true
		case types.VisOnLinked:
			return scheme.LinkedNote, true
		}
		switch m.noteType {
		case types.NoteRoot:
			return scheme.RootNote, true
		case types.NoteMember:
			return scheme.MemberNote, true
		default:
			return scheme.OtherNote, true
		}
	case kindControl:
		if vis.Active() {
			return scheme.ControlPressed, true
		}
		return scheme.Control, true
	default: // kindMisc
		if vis.Active() && m.pressable {
			return scheme.MiscPressed, true
		}
		return midi.Color{}, false
	}
}
