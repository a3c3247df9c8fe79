package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/schollz/pushpluck/internal/types"
)

// These are pure functions: given a position and a value, build the exact
// wire message the Push expects. No I/O, no state — the midiconnector sink
// is the only thing that ever touches a port.

func frameSysex(raw []byte) gomidi.Message {
	data := make([]byte, 0, len(AbletonSysexPrefix)+len(raw))
	data = append(data, AbletonSysexPrefix...)
	data = append(data, raw...)
	return gomidi.SysEx(data)
}

// PadColorMessage builds the sysex frame that sets a pad's RGB color.
func PadColorMessage(pos types.Pos, c Color) gomidi.Message {
	index := pos.ToIndex()
	msb := [3]byte{(c.Red >> 4) & 0xF, (c.Green >> 4) & 0xF, (c.Blue >> 4) & 0xF}
	lsb := [3]byte{c.Red & 0xF, c.Green & 0xF, c.Blue & 0xF}
	raw := []byte{
		0x04, 0x00, 0x08, byte(index), 0x00,
		msb[0], lsb[0], msb[1], lsb[1], msb[2], lsb[2],
	}
	return frameSysex(raw)
}

// PadLedMessage builds the note-on message that sets a pad's LED
// brightness (0 = off).
func PadLedMessage(pos types.Pos, value uint8) gomidi.Message {
	return gomidi.NoteOn(0, uint8(pos.ToNote()), value)
}

// LcdBlockMessage builds the sysex frame that writes text starting at a
// given column of a given row.
func LcdBlockMessage(row int, lineCol int, text string) gomidi.Message {
	raw := make([]byte, 0, 4+len(text))
	raw = append(raw, byte(27-row), 0x00, byte(len(text)+1), byte(lineCol))
	raw = append(raw, []byte(text)...)
	return frameSysex(raw)
}

// ButtonIllumMessage builds the control-change message that sets a
// button's illumination level.
func ButtonIllumMessage(button ButtonCC, illum ButtonIllum) gomidi.Message {
	return gomidi.ControlChange(0, uint8(button.ToCC()), uint8(illum))
}

// NoteMessage builds a processed note-on or note-off message for the
// virtual output sink. A zero velocity always produces a note-off.
func NoteMessage(channel int, note int, velocity uint8) gomidi.Message {
	if velocity == 0 {
		return gomidi.NoteOff(uint8(channel), uint8(note))
	}
	return gomidi.NoteOn(uint8(channel), uint8(note), velocity)
}

// PadText pads or truncates text to exactly DisplayBlockLen characters, the
// fixed width of one LCD block.
func PadText(text string) string {
	if len(text) >= DisplayBlockLen {
		return text[:DisplayBlockLen]
	}
	buf := make([]byte, DisplayBlockLen)
	copy(buf, text)
	for i := len(text); i < DisplayBlockLen; i++ {
		buf[i] = ' '
	}
	return string(buf)
}
