package plucked

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/schollz/pushpluck/internal/config"
	"github.com/schollz/pushpluck/internal/midi"
	"github.com/schollz/pushpluck/internal/types"
)

type fakeController struct{ sent []gomidi.Message }

func (f *fakeController) Send(msg gomidi.Message) { f.sent = append(f.sent, msg) }

type fakeProcessed struct {
	sent         []gomidi.Message
	allNotesOffN int
}

func (f *fakeProcessed) Send(msg gomidi.Message) { f.sent = append(f.sent, msg) }
func (f *fakeProcessed) AllNotesOff()            { f.allNotesOffN++ }

func testScheme() config.ColorScheme {
	return config.ColorScheme{
		RootNote:     midi.Color{Blue: 255},
		MemberNote:   midi.Color{Red: 255, Green: 255, Blue: 255},
		OtherNote:    midi.Color{},
		PrimaryNote:  midi.Color{Green: 255},
		DisabledNote: midi.Color{Red: 80, Green: 80, Blue: 80},
		LinkedNote:   midi.Color{Green: 255, Blue: 127},
	}
}

func padNoteOn(row, col int, velocity uint8) gomidi.Message {
	return gomidi.NoteOn(0, uint8(types.Pos{Row: row, Col: col}.ToNote()), velocity)
}

func padNoteOff(row, col int) gomidi.Message {
	return gomidi.NoteOff(0, uint8(types.Pos{Row: row, Col: col}.ToNote()))
}

func noteVelocities(msgs []gomidi.Message) []uint8 {
	var out []uint8
	for _, m := range msgs {
		var ch, key, vel uint8
		if m.GetNoteOn(&ch, &key, &vel) {
			out = append(out, vel)
		} else if m.GetNoteOff(&ch, &key, &vel) {
			out = append(out, 0)
		}
	}
	return out
}

// Scenario 1: single pluck.
func TestSinglePluck(t *testing.T) {
	ctrl, proc := &fakeController{}, &fakeProcessed{}
	p := New(testScheme(), config.Default(0), ctrl, proc)

	p.HandleMessage(padNoteOn(0, 1, 100))
	assert.Empty(t, proc.sent)

	p.HandleMessage(padNoteOn(1, 0, 100))
	require.Len(t, proc.sent, 1)
	var ch, key, vel uint8
	require.True(t, proc.sent[0].GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, uint8(40), key)
	assert.Equal(t, uint8(100), vel)
}

// Scenario 2: hammer-on then pull-off.
func TestHammerOnThenPullOff(t *testing.T) {
	ctrl, proc := &fakeController{}, &fakeProcessed{}
	p := New(testScheme(), config.Default(0), ctrl, proc)

	p.HandleMessage(padNoteOn(1, 1, 90))
	require.Len(t, proc.sent, 1)

	p.HandleMessage(padNoteOn(1, 3, 95))
	require.Len(t, proc.sent, 3)
	assert.Equal(t, []uint8{95, 0}, noteVelocities(proc.sent[1:3]))

	p.HandleMessage(padNoteOff(1, 3))
	require.Len(t, proc.sent, 5)
	assert.Equal(t, []uint8{0, 90}, noteVelocities(proc.sent[3:5]))
}

// Scenario 3: lower fret pressed while higher held emits nothing until
// the higher fret releases.
func TestLowerFretUnderCurrentMaxIsSilentUntilRelease(t *testing.T) {
	ctrl, proc := &fakeController{}, &fakeProcessed{}
	p := New(testScheme(), config.Default(0), ctrl, proc)

	p.HandleMessage(padNoteOn(1, 3, 80))
	require.Len(t, proc.sent, 1)

	p.HandleMessage(padNoteOn(1, 1, 80))
	assert.Len(t, proc.sent, 1)

	p.HandleMessage(padNoteOff(1, 1))
	assert.Len(t, proc.sent, 1)

	p.HandleMessage(padNoteOff(1, 3))
	require.Len(t, proc.sent, 2)
	assert.Equal(t, []uint8{0}, noteVelocities(proc.sent[1:2]))
}

// Scenario 6: Undo emits note-offs for every held note, repaints, and
// resets the menu to the Device page.
func TestUndoResetsMenuAndFlushesHeldNotes(t *testing.T) {
	ctrl, proc := &fakeController{}, &fakeProcessed{}
	p := New(testScheme(), config.Default(0), ctrl, proc)

	p.HandleMessage(gomidi.ControlChange(0, uint8(midi.ButtonScales.ToCC()), 127))
	assert.Equal(t, types.PageScales, p.Page())

	p.HandleMessage(padNoteOn(1, 0, 100))
	p.HandleMessage(padNoteOn(2, 0, 100))
	require.Len(t, proc.sent, 2)

	preUndo := len(ctrl.sent)
	p.HandleMessage(gomidi.ControlChange(0, uint8(midi.ButtonUndo.ToCC()), 127))

	require.Len(t, proc.sent, 4)
	assert.Equal(t, []uint8{0, 0}, noteVelocities(proc.sent[2:4]))
	assert.Equal(t, types.PageDevice, p.Page())
	assert.Greater(t, len(ctrl.sent), preUndo)
}

// Scenario 5: a layout change flushes every held note before the new
// mapping applies.
func TestLayoutChangeFlushesBeforeRemapping(t *testing.T) {
	ctrl, proc := &fakeController{}, &fakeProcessed{}
	p := New(testScheme(), config.Default(0), ctrl, proc)

	p.HandleMessage(padNoteOn(1, 0, 100))
	require.Len(t, proc.sent, 1)

	layoutKnob := midi.KnobCenter1.ToCC()
	for i := 0; i < 4; i++ {
		p.HandleMessage(gomidi.ControlChange(0, uint8(layoutKnob), 1))
	}
	require.Len(t, proc.sent, 2)
	assert.Equal(t, []uint8{0}, noteVelocities(proc.sent[1:2]))
	assert.Equal(t, types.LayoutVert, p.Config().Layout)
}

func TestMinVelocityClampApplied(t *testing.T) {
	ctrl, proc := &fakeController{}, &fakeProcessed{}
	p := New(testScheme(), config.Default(40), ctrl, proc)

	p.HandleMessage(padNoteOn(1, 0, 5))
	require.Len(t, proc.sent, 1)
	assert.Equal(t, []uint8{40}, noteVelocities(proc.sent))

	p.HandleMessage(padNoteOff(1, 0))
	require.Len(t, proc.sent, 2)
	assert.Equal(t, []uint8{40, 0}, noteVelocities(proc.sent))
}
