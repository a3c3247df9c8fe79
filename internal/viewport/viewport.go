// Package viewport maps pad grid coordinates onto string/fret coordinates
// and back, under a configurable layout and string/fret offsets.
package viewport

import "github.com/schollz/pushpluck/internal/types"

// maxStrDim is the pad grid's extent along whichever axis carries strings,
// for both layouts (8 rows, 8 cols).
const maxStrDim = 8

// Config is the subset of the root Config the viewport reacts to.
type Config struct {
	NumStrings int
	Layout     types.Layout
	StrOffset  int
	FretOffset int
}

// Viewport holds the current layout/offset state and converts between pad
// positions and string positions.
type Viewport struct {
	config Config
}

// New constructs a Viewport from its initial config.
func New(config Config) *Viewport {
	return &Viewport{config: config}
}

// HandleConfig installs a new config. The viewport itself holds no extra
// state beyond config, so there's nothing else to reset.
func (v *Viewport) HandleConfig(config Config) {
	v.config = config
}

func (v *Viewport) totalStrOffset() int {
	center := (maxStrDim - v.config.NumStrings) / 2
	if center < 0 {
		center = 0
	}
	return v.config.StrOffset - center
}

// StrPosFromPadPos maps a pad position to a string position, or returns
// ok == false if the pad lies outside the currently mapped string range.
func (v *Viewport) StrPosFromPadPos(pos types.Pos) (types.StringPos, bool) {
	totalOffset := v.totalStrOffset()
	var strIndex, fret int
	switch v.config.Layout {
	case types.LayoutVert:
		strIndex = pos.Col + totalOffset
		fret = (7 - pos.Row) + v.config.FretOffset
	default: // LayoutHoriz
		strIndex = pos.Row + totalOffset
		fret = pos.Col + v.config.FretOffset
	}
	if strIndex < 0 || strIndex >= v.config.NumStrings || fret < 0 {
		return types.StringPos{}, false
	}
	return types.StringPos{StrIndex: strIndex, Fret: fret}, true
}

// PadPosFromStrPos is the inverse of StrPosFromPadPos; it returns ok ==
// false if the string position names a string outside the tuning, has a
// negative fret, or doesn't land on the 8x8 grid.
func (v *Viewport) PadPosFromStrPos(sp types.StringPos) (types.Pos, bool) {
	if sp.StrIndex < 0 || sp.StrIndex >= v.config.NumStrings || sp.Fret < 0 {
		return types.Pos{}, false
	}
	totalOffset := v.totalStrOffset()
	var pos types.Pos
	switch v.config.Layout {
	case types.LayoutVert:
		pos = types.Pos{Row: 7 - (sp.Fret - v.config.FretOffset), Col: sp.StrIndex - totalOffset}
	default: // LayoutHoriz
		pos = types.Pos{Row: sp.StrIndex - totalOffset, Col: sp.Fret - v.config.FretOffset}
	}
	if pos.Row < 0 || pos.Row >= types.NumPadRows || pos.Col < 0 || pos.Col >= types.NumPadCols {
		return types.Pos{}, false
	}
	return pos, true
}

// Bounds returns the StringBounds the viewport currently exposes: every
// string index the tuning defines, paired with every fret reachable from
// some pad row/column under the current layout and offsets.
func (v *Viewport) Bounds() types.StringBounds {
	bounds := types.StringBounds{
		LowStr:  0,
		HighStr: v.config.NumStrings - 1,
	}
	var dim int
	switch v.config.Layout {
	case types.LayoutVert:
		dim = types.NumPadRows
	default:
		dim = types.NumPadCols
	}
	bounds.LowFret = v.config.FretOffset
	if bounds.LowFret < 0 {
		bounds.LowFret = 0
	}
	bounds.HighFret = v.config.FretOffset + dim - 1
	if bounds.HighFret < bounds.LowFret {
		bounds.HighFret = bounds.LowFret - 1
	}
	return bounds
}
