package shadow

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/stretchr/testify/assert"

	"github.com/schollz/pushpluck/internal/midi"
	"github.com/schollz/pushpluck/internal/types"
)

type fakeSink struct {
	sent []gomidi.Message
}

func (f *fakeSink) Send(msg gomidi.Message) {
	f.sent = append(f.sent, msg)
}

func TestContextEmitsNothingWhenUnchanged(t *testing.T) {
	sink := &fakeSink{}
	s := New(sink)
	s.Context(func(buf *DiffBuffer) {
		buf.SetPad(types.Pos{Row: 0, Col: 0}, nil)
	})
	assert.Empty(t, sink.sent, "an off pad staying off shouldn't emit anything")
}

func TestContextEmitsOnlyChangedPads(t *testing.T) {
	sink := &fakeSink{}
	s := New(sink)
	red := midi.Color{Red: 255}
	s.Context(func(buf *DiffBuffer) {
		buf.SetPad(types.Pos{Row: 0, Col: 0}, &red)
		buf.SetPad(types.Pos{Row: 0, Col: 1}, nil)
	})
	assert.Len(t, sink.sent, 1, "only the pad that actually changed color should emit")
}

func TestContextIsIdempotent(t *testing.T) {
	sink := &fakeSink{}
	s := New(sink)
	red := midi.Color{Red: 255}
	draw := func(buf *DiffBuffer) { buf.SetPad(types.Pos{Row: 2, Col: 2}, &red) }
	s.Context(draw)
	assert.Len(t, sink.sent, 1)
	s.Context(draw)
	assert.Len(t, sink.sent, 1, "redrawing the same color a second time must not re-emit")
}

func TestOnToOffEmitsLedOff(t *testing.T) {
	sink := &fakeSink{}
	s := New(sink)
	red := midi.Color{Red: 255}
	s.Context(func(buf *DiffBuffer) { buf.SetPad(types.Pos{Row: 3, Col: 3}, &red) })
	sink.sent = nil
	s.Context(func(buf *DiffBuffer) { buf.SetPad(types.Pos{Row: 3, Col: 3}, nil) })
	assert.Len(t, sink.sent, 1)
}

func TestButtonIllumDiff(t *testing.T) {
	sink := &fakeSink{}
	s := New(sink)
	full := midi.IllumFull
	s.Context(func(buf *DiffBuffer) { buf.SetButtonIllum(midi.ButtonUndo, &full) })
	assert.Len(t, sink.sent, 1)
	sink.sent = nil
	s.Context(func(buf *DiffBuffer) { buf.SetButtonIllum(midi.ButtonUndo, &full) })
	assert.Empty(t, sink.sent, "re-setting the same illum level must not re-emit")
}

func TestLcdBlockDiff(t *testing.T) {
	sink := &fakeSink{}
	s := New(sink)
	s.Context(func(buf *DiffBuffer) { buf.SetLcdBlock(0, 0, "hello") })
	assert.Len(t, sink.sent, 1)
	sink.sent = nil
	s.Context(func(buf *DiffBuffer) { buf.SetLcdBlock(0, 0, "hello") })
	assert.Empty(t, sink.sent, "writing the identical block text must not re-emit")
}
