// Package shadow keeps the last-known state of everything written to the
// controller's display — LCD rows, pad colors, button illumination — and
// turns a batch of writes into the minimal set of MIDI messages needed to
// bring the hardware up to date.
package shadow

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/schollz/pushpluck/internal/midi"
	"github.com/schollz/pushpluck/internal/types"
)

// Sink is the one capability the shadow needs: somewhere to send the
// messages a diff produces.
type Sink interface {
	Send(msg gomidi.Message)
}

type lcdRow [midi.DisplayMaxLineLen]byte

func blankRow() lcdRow {
	var row lcdRow
	for i := range row {
		row[i] = ' '
	}
	return row
}

func (r lcdRow) text() string { return string(r[:]) }

// state is the full last-emitted picture of the display.
type state struct {
	lcd     [midi.DisplayMaxRows]lcdRow
	pads    map[types.Pos]*midi.Color
	buttons map[midi.ButtonCC]*midi.ButtonIllum
}

func newState() *state {
	s := &state{
		pads:    make(map[types.Pos]*midi.Color, types.NumPads),
		buttons: make(map[midi.ButtonCC]*midi.ButtonIllum),
	}
	for i := range s.lcd {
		s.lcd[i] = blankRow()
	}
	types.AllPos(func(pos types.Pos) { s.pads[pos] = nil })
	return s
}

// DiffBuffer accumulates writes made during one Context call. Nothing it
// receives reaches the wire until the scope ends.
type DiffBuffer struct {
	lcd     map[int]lcdRow
	pads    map[types.Pos]*midi.Color
	buttons map[midi.ButtonCC]*midi.ButtonIllum
}

func newDiffBuffer() *DiffBuffer {
	return &DiffBuffer{
		lcd:     make(map[int]lcdRow),
		pads:    make(map[types.Pos]*midi.Color),
		buttons: make(map[midi.ButtonCC]*midi.ButtonIllum),
	}
}

// SetPad stages a pad color write. A nil color means "LED off".
func (b *DiffBuffer) SetPad(pos types.Pos, c *midi.Color) {
	b.pads[pos] = c
}

// SetLcdText stages a raw LCD write starting at column col of row, up to
// DisplayMaxLineLen characters.
func (b *DiffBuffer) SetLcdText(row, col int, text string) {
	cur, ok := b.lcd[row]
	if !ok {
		cur = blankRow()
	}
	for i := 0; i < len(text) && col+i < len(cur); i++ {
		cur[col+i] = text[i]
	}
	b.lcd[row] = cur
}

// SetLcdBlock stages a write of one fixed-width display block.
func (b *DiffBuffer) SetLcdBlock(row, blockCol int, text string) {
	b.SetLcdText(row, blockCol*midi.DisplayBlockLen, midi.PadText(text))
}

// SetButtonIllum stages a button illumination write. A nil illum means
// the button goes dark.
func (b *DiffBuffer) SetButtonIllum(button midi.ButtonCC, illum *midi.ButtonIllum) {
	b.buttons[button] = illum
}

// Shadow owns the authoritative last-known display state and a sink to
// emit deltas to.
type Shadow struct {
	sink  Sink
	state *state
}

// New builds a Shadow with a blank starting state.
func New(sink Sink) *Shadow {
	return &Shadow{sink: sink, state: newState()}
}

// Context runs fn with a fresh diff buffer, then emits exactly one MIDI
// message per cell that actually changed.
func (s *Shadow) Context(fn func(buf *DiffBuffer)) {
	buf := newDiffBuffer()
	fn(buf)
	s.emit(buf)
}

func (s *Shadow) emit(buf *DiffBuffer) {
	for row, newRow := range buf.lcd {
		if s.state.lcd[row] != newRow {
			s.state.lcd[row] = newRow
			s.sink.Send(midi.LcdBlockMessage(row, 0, newRow.text()))
		}
	}
	for pos, newColor := range buf.pads {
		oldColor := s.state.pads[pos]
		if colorsEqual(oldColor, newColor) {
			continue
		}
		s.state.pads[pos] = newColor
		if newColor == nil {
			s.sink.Send(midi.PadLedMessage(pos, 0))
		} else {
			s.sink.Send(midi.PadColorMessage(pos, *newColor))
		}
	}
	for button, newIllum := range buf.buttons {
		oldIllum := s.state.buttons[button]
		if illumsEqual(oldIllum, newIllum) {
			continue
		}
		s.state.buttons[button] = newIllum
		if newIllum == nil {
			s.sink.Send(midi.ButtonIllumMessage(button, midi.IllumOff))
		} else {
			s.sink.Send(midi.ButtonIllumMessage(button, *newIllum))
		}
	}
}

func colorsEqual(a, b *midi.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func illumsEqual(a, b *midi.ButtonIllum) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
