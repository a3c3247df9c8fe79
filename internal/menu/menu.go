// Package menu is the config mutation surface: a small page machine plus
// eight encoder knobs bound to Config fields through lenses.
package menu

import (
	"github.com/schollz/pushpluck/internal/config"
	"github.com/schollz/pushpluck/internal/midi"
	"github.com/schollz/pushpluck/internal/scale"
	"github.com/schollz/pushpluck/internal/types"
)

const numCenterKnobs = 8

// scaleNames lists the eight scales NamedScales produces, in order, so a
// knob index can map onto one without recomputing the scale just to read
// its name.
var scaleNames = []string{"Ionian", "Dorian", "Phrygian", "Lydian", "Mixolydian", "Aeolian", "Locrian", "Chromatic"}

func scaleIndex(name string) int {
	for i, n := range scaleNames {
		if n == name {
			return i
		}
	}
	return 0
}

func scaleForIndex(root scale.NoteName, idx int) scale.Scale {
	if idx == len(scaleNames)-1 {
		return scale.ChromaticScale(root)
	}
	return scale.ModeScale(root, scale.Mode(idx))
}

// Menu is the page state machine plus the eight Device-page knobs.
type Menu struct {
	page  types.MenuPage
	knobs [numCenterKnobs]*KnobControl
}

// New builds a Menu on the Device page with the default knob bindings.
func New() *Menu {
	return &Menu{page: types.PageDevice, knobs: defaultKnobs()}
}

func defaultKnobs() [numCenterKnobs]*KnobControl {
	return [numCenterKnobs]*KnobControl{
		{
			Name: "MinVel", Sensitivity: 1, Range: IntRange{Min: 0, Max: 127},
			Lens: Lens{
				Get: func(cfg config.Config) int { return int(cfg.MinVelocity) },
				Set: func(cfg config.Config, index int) config.Config { cfg.MinVelocity = uint8(index); return cfg },
			},
		},
		{
			Name: "Layout", Sensitivity: 4, Range: ChoiceRange{Choices: []string{"Horiz", "Vert"}},
			Lens: Lens{
				Get: func(cfg config.Config) int {
					if cfg.Layout == types.LayoutVert {
						return 1
					}
					return 0
				},
				Set: func(cfg config.Config, index int) config.Config {
					if index == 1 {
						cfg.Layout = types.LayoutVert
					} else {
						cfg.Layout = types.LayoutHoriz
					}
					return cfg
				},
			},
		},
		{
			Name: "Semis", Sensitivity: 4, Range: IntRange{Min: -63, Max: 64},
			Lens: Lens{
				Get: func(cfg config.Config) int { return IntRange{Min: -63, Max: 64}.FromValue(cfg.Semitones) },
				Set: func(cfg config.Config, index int) config.Config {
					cfg.Semitones = IntRange{Min: -63, Max: 64}.ToValue(index)
					return cfg
				},
			},
		},
		{
			Name: "StrOff", Sensitivity: 4, Range: IntRange{Min: -11, Max: 12},
			Lens: Lens{
				Get: func(cfg config.Config) int { return IntRange{Min: -11, Max: 12}.FromValue(cfg.StrOffset) },
				Set: func(cfg config.Config, index int) config.Config {
					cfg.StrOffset = IntRange{Min: -11, Max: 12}.ToValue(index)
					return cfg
				},
			},
		},
		{
			Name: "Play", Sensitivity: 4, Range: ChoiceRange{Choices: []string{"Tap", "Poly", "Mono"}},
			Lens: Lens{
				Get: func(cfg config.Config) int { return int(cfg.PlayMode) },
				Set: func(cfg config.Config, index int) config.Config { cfg.PlayMode = types.PlayMode(index); return cfg },
			},
		},
		{
			Name: "Chan", Sensitivity: 4, Range: ChoiceRange{Choices: []string{"Single", "Multi"}},
			Lens: Lens{
				Get: func(cfg config.Config) int { return int(cfg.ChannelMode) },
				Set: func(cfg config.Config, index int) config.Config { cfg.ChannelMode = types.ChannelMode(index); return cfg },
			},
		},
		{
			Name: "Root", Sensitivity: 4, Range: ChoiceRange{Choices: noteNameStrings()},
			Lens: Lens{
				Get: func(cfg config.Config) int { return int(cfg.Root) },
				Set: func(cfg config.Config, index int) config.Config {
					cfg.Root = scale.NoteName(index)
					cfg.Scale = scaleForIndex(cfg.Root, scaleIndex(cfg.Scale.Name))
					return cfg
				},
			},
		},
		{
			Name: "Scale", Sensitivity: 4, Range: ChoiceRange{Choices: scaleNames},
			Lens: Lens{
				Get: func(cfg config.Config) int { return scaleIndex(cfg.Scale.Name) },
				Set: func(cfg config.Config, index int) config.Config {
					cfg.Scale = scaleForIndex(cfg.Root, index)
					return cfg
				},
			},
		},
	}
}

func noteNameStrings() []string {
	names := scale.AllNoteNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}

// Page reports the currently active menu page.
func (m *Menu) Page() types.MenuPage { return m.page }

// HandleButton processes a button press relevant to the menu: a page
// selector switches pages, a directional/octave button mutates Config
// directly. Returns the possibly-updated config and whether it changed.
func (m *Menu) HandleButton(button midi.ButtonCC, pressed bool, cfg config.Config) (config.Config, bool) {
	if !pressed {
		return cfg, false
	}
	switch button {
	case midi.ButtonDevice:
		m.page = types.PageDevice
	case midi.ButtonScales:
		m.page = types.PageScales
	case midi.ButtonBrowse:
		m.page = types.PageBrowse
	case midi.ButtonLeft:
		cfg.FretOffset--
		return cfg, true
	case midi.ButtonRight:
		cfg.FretOffset++
		return cfg, true
	case midi.ButtonOctaveDown:
		cfg.FretOffset -= 12
		return cfg, true
	case midi.ButtonOctaveUp:
		cfg.FretOffset += 12
		return cfg, true
	case midi.ButtonUp:
		cfg.StrOffset++
		return cfg, true
	case midi.ButtonDown:
		cfg.StrOffset--
		return cfg, true
	}
	return cfg, false
}

// HandleKnob processes a knob tick. Only the center column, and only on
// the Device page, is bound to anything. It reports changed == true only
// when the tick actually crossed its sensitivity threshold and moved the
// bound value — a sub-threshold click returns cfg unchanged.
func (m *Menu) HandleKnob(group types.KnobGroup, offset int, clockwise bool, cfg config.Config) (config.Config, bool) {
	if m.page != types.PageDevice || group != types.KnobGroupCenter {
		return cfg, false
	}
	if offset < 0 || offset >= len(m.knobs) {
		return cfg, false
	}
	return m.knobs[offset].Tick(cfg, clockwise)
}

// Reset puts the menu back on the Device page. It does not touch Config;
// the orchestrator's hard reset keeps the current Config as well.
func (m *Menu) Reset() {
	m.page = types.PageDevice
}

// RenderKnobLine renders the eight Device-page knob values as eight block
// texts, one per knob; the caller lays them out into LCD blocks.
func (m *Menu) RenderKnobLine(cfg config.Config) []string {
	out := make([]string, numCenterKnobs)
	for i, k := range m.knobs {
		out[i] = k.Name + ":" + k.Render(cfg)
	}
	return out
}
