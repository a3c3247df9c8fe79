package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schollz/pushpluck/internal/types"
)

func defaultConfig() Config {
	return Config{NumStrings: 6, Layout: types.LayoutHoriz, StrOffset: 0, FretOffset: 0}
}

func TestRoundTripPadToStrPos(t *testing.T) {
	v := New(defaultConfig())
	types.AllPos(func(p types.Pos) {
		sp, ok := v.StrPosFromPadPos(p)
		if !ok {
			return
		}
		back, ok := v.PadPosFromStrPos(sp)
		assert.True(t, ok)
		assert.Equal(t, p, back)
	})
}

func TestRoundTripStrPosToPad(t *testing.T) {
	v := New(defaultConfig())
	for str := -2; str < 8; str++ {
		for fret := -2; fret < 10; fret++ {
			sp := types.StringPos{StrIndex: str, Fret: fret}
			p, ok := v.PadPosFromStrPos(sp)
			if !ok {
				continue
			}
			back, ok := v.StrPosFromPadPos(p)
			assert.True(t, ok)
			assert.Equal(t, sp, back)
		}
	}
}

func TestHorizontalOpenString(t *testing.T) {
	v := New(defaultConfig())
	sp, ok := v.StrPosFromPadPos(types.Pos{Row: 1, Col: 0})
	assert.True(t, ok)
	assert.Equal(t, types.StringPos{StrIndex: 0, Fret: 0}, sp)
}

func TestVerticalLayoutFretRunsTopToBottom(t *testing.T) {
	cfg := defaultConfig()
	cfg.Layout = types.LayoutVert
	v := New(cfg)
	sp, ok := v.StrPosFromPadPos(types.Pos{Row: 7, Col: 1})
	assert.True(t, ok)
	assert.Equal(t, types.StringPos{StrIndex: 0, Fret: 0}, sp)

	sp, ok = v.StrPosFromPadPos(types.Pos{Row: 0, Col: 1})
	assert.True(t, ok)
	assert.Equal(t, types.StringPos{StrIndex: 0, Fret: 7}, sp)
}

func TestShortTuningCenters(t *testing.T) {
	cfg := defaultConfig()
	cfg.NumStrings = 4
	v := New(cfg)
	// center = (8-4)/2 = 2, so row 0 maps to str_index -2: out of range.
	_, ok := v.StrPosFromPadPos(types.Pos{Row: 0, Col: 0})
	assert.False(t, ok)
	sp, ok := v.StrPosFromPadPos(types.Pos{Row: 2, Col: 0})
	assert.True(t, ok)
	assert.Equal(t, types.StringPos{StrIndex: 0, Fret: 0}, sp)
}

func TestNegativeFretOffsetFiltersNegativeFrets(t *testing.T) {
	cfg := defaultConfig()
	cfg.FretOffset = -1
	v := New(cfg)
	_, ok := v.StrPosFromPadPos(types.Pos{Row: 1, Col: 0})
	assert.False(t, ok, "fret -1 must not be mapped")
	sp, ok := v.StrPosFromPadPos(types.Pos{Row: 1, Col: 1})
	assert.True(t, ok)
	assert.Equal(t, types.StringPos{StrIndex: 0, Fret: 0}, sp)
}

func TestOutOfRangeStrIndexHasNoPadPos(t *testing.T) {
	v := New(defaultConfig())
	_, ok := v.PadPosFromStrPos(types.StringPos{StrIndex: 99, Fret: 0})
	assert.False(t, ok)
}

func TestNegativeFretHasNoPadPos(t *testing.T) {
	v := New(defaultConfig())
	_, ok := v.PadPosFromStrPos(types.StringPos{StrIndex: 0, Fret: -1})
	assert.False(t, ok)
}

func TestBoundsClampsFretOffsetFloor(t *testing.T) {
	cfg := defaultConfig()
	cfg.FretOffset = -3
	v := New(cfg)
	bounds := v.Bounds()
	assert.Equal(t, 0, bounds.LowFret)
	assert.Equal(t, types.NumPadCols-1-3, bounds.HighFret)
}
