// Package plucked is the top-level orchestrator: it holds the current
// Config, owns the Menu and the Pads, and routes every decoded event to
// one of them, propagating config changes and driving the shadow/diff
// display on every state transition.
package plucked

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/schollz/pushpluck/internal/config"
	"github.com/schollz/pushpluck/internal/menu"
	"github.com/schollz/pushpluck/internal/midi"
	"github.com/schollz/pushpluck/internal/pads"
	"github.com/schollz/pushpluck/internal/shadow"
	"github.com/schollz/pushpluck/internal/types"
)

// ProcessedSink is the virtual output port the fretboard's note events go
// to. AllNotesOff is used on shutdown and isn't subject to the rate
// limiter -- the program is exiting, nothing is worth sleeping for.
type ProcessedSink interface {
	Send(msg gomidi.Message)
	AllNotesOff()
}

// ControllerSink is the real Push port the shadow's display deltas go to.
type ControllerSink interface {
	Send(msg gomidi.Message)
}

// Plucked is the orchestrator. It is not safe for concurrent use; the
// caller's single event loop is its only caller.
type Plucked struct {
	cfg       config.Config
	menu      *menu.Menu
	pads      *pads.Pads
	shadow    *shadow.Shadow
	processed ProcessedSink
}

// New builds the orchestrator and performs the startup reset: the LCD
// shows the Device page and every pad is painted from cfg.
func New(scheme config.ColorScheme, cfg config.Config, controller ControllerSink, processed ProcessedSink) *Plucked {
	p := &Plucked{
		cfg:       cfg,
		menu:      menu.New(),
		pads:      pads.New(scheme, cfg),
		shadow:    shadow.New(controller),
		processed: processed,
	}
	p.shadow.Context(func(buf *shadow.DiffBuffer) {
		p.pads.Redraw(buf)
		p.renderMenu(buf)
	})
	return p
}

// HandleMessage decodes one raw MIDI message and routes it. Messages the
// decoder doesn't recognize are dropped silently, per spec's error
// taxonomy (malformed/unrecognized input is never propagated as an
// error).
func (p *Plucked) HandleMessage(msg gomidi.Message) {
	ev, ok := midi.Decode(msg)
	if !ok {
		return
	}
	switch ev.Kind {
	case midi.EventPad:
		p.shadow.Context(func(buf *shadow.DiffBuffer) {
			p.pads.HandleEvent(buf, p.processed, ev.Pad.Pos, ev.Pad.Velocity)
		})
	case midi.EventButton:
		p.handleButton(ev.Button)
	case midi.EventKnob:
		p.handleKnob(ev.Knob)
	default:
		// TimeDiv/GridSel/ChanSel decode cleanly but spec.md's Menu (§4.5)
		// defines no binding for them; forwarding them would be a no-op.
	}
}

func (p *Plucked) handleButton(ev midi.ButtonEvent) {
	if ev.Button == midi.ButtonUndo && ev.Pressed {
		p.reset()
		return
	}
	newCfg, changed := p.menu.HandleButton(ev.Button, ev.Pressed, p.cfg)
	if changed {
		p.applyConfig(newCfg)
		return
	}
	p.shadow.Context(func(buf *shadow.DiffBuffer) { p.renderMenu(buf) })
}

func (p *Plucked) handleKnob(ev midi.KnobEvent) {
	newCfg, changed := p.menu.HandleKnob(ev.Group, ev.Offset, ev.Clockwise, p.cfg)
	if !changed {
		return
	}
	p.applyConfig(newCfg)
}

// applyConfig installs a new Config: the fretboard first clears itself
// out (note-offs before anything else), then Pads remaps and repaints,
// then the LCD/button state catches up.
func (p *Plucked) applyConfig(cfg config.Config) {
	p.cfg = cfg
	p.shadow.Context(func(buf *shadow.DiffBuffer) {
		p.pads.HandleConfig(buf, p.processed, cfg)
		p.renderMenu(buf)
	})
}

// reset is the Undo handler and the shutdown reset: the menu
// returns to the Device page, the fretboard re-emits note-offs for
// everything it was holding, and every pad/LCD cell is repainted from the
// config as it stands (Undo never resets Config itself, only the menu's
// page and the pads' runtime state).
func (p *Plucked) reset() {
	p.menu.Reset()
	p.shadow.Context(func(buf *shadow.DiffBuffer) {
		p.pads.HandleConfig(buf, p.processed, p.cfg)
		p.renderMenu(buf)
	})
}

// Shutdown performs the exit-time reset spec's cancellation policy
// requires: all notes off on the processed port, and a full pad/LCD reset
// sent to the controller.
func (p *Plucked) Shutdown() {
	p.reset()
	p.processed.AllNotesOff()
}

func (p *Plucked) renderMenu(buf *shadow.DiffBuffer) {
	buf.SetLcdBlock(0, 0, p.cfg.InstrumentName)
	buf.SetLcdBlock(0, 1, p.menu.Page().String())
	buf.SetLcdBlock(0, 2, p.cfg.PlayMode.String())
	buf.SetLcdBlock(0, 3, p.cfg.ChannelMode.String())

	if p.menu.Page() == types.PageDevice {
		for i, text := range p.menu.RenderKnobLine(p.cfg) {
			row := 1 + i/midi.DisplayMaxBlocks
			col := i % midi.DisplayMaxBlocks
			if row < midi.DisplayMaxRows {
				buf.SetLcdBlock(row, col, text)
			}
		}
	}

	full, off := midi.IllumFull, midi.IllumOff
	setPageIllum := func(button midi.ButtonCC, page types.MenuPage) {
		if p.menu.Page() == page {
			buf.SetButtonIllum(button, &full)
		} else {
			buf.SetButtonIllum(button, &off)
		}
	}
	setPageIllum(midi.ButtonDevice, types.PageDevice)
	setPageIllum(midi.ButtonScales, types.PageScales)
	setPageIllum(midi.ButtonBrowse, types.PageBrowse)
}

// Config reports the orchestrator's current config, for callers (e.g. a
// status display or state-file writer) that need to observe it.
func (p *Plucked) Config() config.Config { return p.cfg }

// Page reports the menu's current page, for the same callers.
func (p *Plucked) Page() types.MenuPage { return p.menu.Page() }

// ActiveNoteCount reports how many strings are currently sounding, for a
// status display.
func (p *Plucked) ActiveNoteCount() int { return p.pads.ActiveCount() }
