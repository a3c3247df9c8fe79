// Package pads owns a Fretboard and a Viewport, classifies every pad
// under the active scale, and drives redraws through a diff context.
package pads

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/schollz/pushpluck/internal/config"
	"github.com/schollz/pushpluck/internal/fretboard"
	"github.com/schollz/pushpluck/internal/midi"
	"github.com/schollz/pushpluck/internal/scale"
	"github.com/schollz/pushpluck/internal/shadow"
	"github.com/schollz/pushpluck/internal/types"
	"github.com/schollz/pushpluck/internal/viewport"
)

// MessageSink is the one capability Pads needs from the processed output
// port: somewhere to send note-on/note-off/aftertouch messages.
type MessageSink interface {
	Send(msg gomidi.Message)
}

// Pads is the colorizer: it owns the fretboard and viewport and tracks
// each pad's color mapper plus its last-known VisState.
type Pads struct {
	scheme     config.ColorScheme
	classifier scale.Classifier
	fretboard  *fretboard.Fretboard
	viewport   *viewport.Viewport
	mappers    map[types.Pos]config.PadColorMapper
	vis        map[types.Pos]types.VisState
}

func viewportConfig(cfg config.Config) viewport.Config {
	return viewport.Config{
		NumStrings: len(cfg.Tuning),
		Layout:     cfg.Layout,
		StrOffset:  cfg.StrOffset,
		FretOffset: cfg.FretOffset,
	}
}

func fretboardConfig(cfg config.Config, bounds types.StringBounds) fretboard.Config {
	return fretboard.Config{
		Tuning:      cfg.Tuning,
		Semitones:   cfg.Semitones,
		MinVelocity: cfg.MinVelocity,
		PlayMode:    cfg.PlayMode,
		ChannelMode: cfg.ChannelMode,
		Bounds:      bounds,
	}
}

// New builds Pads from the startup config and color scheme.
func New(scheme config.ColorScheme, cfg config.Config) *Pads {
	vp := viewport.New(viewportConfig(cfg))
	fb := fretboard.New(fretboardConfig(cfg, vp.Bounds()))
	p := &Pads{
		scheme:     scheme,
		classifier: cfg.Scale.ToClassifier(),
		fretboard:  fb,
		viewport:   vp,
		mappers:    make(map[types.Pos]config.PadColorMapper, types.NumPads),
		vis:        make(map[types.Pos]types.VisState, types.NumPads),
	}
	p.resetMappers()
	return p
}

func (p *Pads) padColor(pos types.Pos) (midi.Color, bool) {
	mapper, ok := p.mappers[pos]
	if !ok {
		return midi.Color{}, false
	}
	return mapper.GetColor(p.scheme, p.vis[pos])
}

func (p *Pads) resetMappers() {
	types.AllPos(func(pos types.Pos) {
		p.mappers[pos] = p.makeMapper(pos)
	})
}

func (p *Pads) makeMapper(pos types.Pos) config.PadColorMapper {
	sp, ok := p.viewport.StrPosFromPadPos(pos)
	if !ok {
		return config.MiscPad(false)
	}
	note, ok := p.fretboard.Note(sp)
	if !ok {
		return config.MiscPad(false)
	}
	name, _ := scale.NameAndOctaveFromNote(note)
	switch {
	case p.classifier.IsRoot(name):
		return config.NotePad(types.NoteRoot)
	case p.classifier.IsMember(name):
		return config.NotePad(types.NoteMember)
	default:
		return config.NotePad(types.NoteOther)
	}
}

// ActiveCount reports how many string positions are currently the
// primary (actually sounding) source of a note, for a status display.
func (p *Pads) ActiveCount() int {
	n := 0
	for _, v := range p.vis {
		if v == types.VisOnPrimary {
			n++
		}
	}
	return n
}

// Redraw paints every pad's current color into the diff buffer.
func (p *Pads) Redraw(buf *shadow.DiffBuffer) {
	types.AllPos(func(pos types.Pos) {
		p.redrawPos(buf, pos)
	})
}

func (p *Pads) redrawPos(buf *shadow.DiffBuffer, pos types.Pos) {
	c, ok := p.padColor(pos)
	if !ok {
		buf.SetPad(pos, nil)
		return
	}
	buf.SetPad(pos, &c)
}

// HandleEvent triggers a pad press/release against the fretboard, sends
// the resulting note messages to sink, and redraws every touched pad.
func (p *Pads) HandleEvent(buf *shadow.DiffBuffer, sink MessageSink, pos types.Pos, velocity uint8) {
	sp, ok := p.viewport.StrPosFromPadPos(pos)
	if !ok {
		return
	}
	fx := p.fretboard.Trigger(sp, velocity)
	p.applyEffects(buf, sink, fx)
}

func (p *Pads) applyEffects(buf *shadow.DiffBuffer, sink MessageSink, fx fretboard.NoteEffects) {
	for _, m := range fx.Msgs {
		sink.Send(m.Msg)
	}
	for sp, vis := range fx.Vis {
		pos, ok := p.viewport.PadPosFromStrPos(sp)
		if !ok {
			continue
		}
		p.vis[pos] = vis
		p.redrawPos(buf, pos)
	}
}

// HandleConfig installs a new root config: the fretboard first emits
// note-offs for everything it was holding (so hardware state stays
// clean), then the viewport and fretboard are rebuilt from cfg and every
// pad is recolored and redrawn.
func (p *Pads) HandleConfig(buf *shadow.DiffBuffer, sink MessageSink, cfg config.Config) {
	p.applyEffects(buf, sink, p.fretboard.CleanFx())

	p.viewport.HandleConfig(viewportConfig(cfg))
	p.fretboard = fretboard.New(fretboardConfig(cfg, p.viewport.Bounds()))
	p.classifier = cfg.Scale.ToClassifier()
	p.resetMappers()
	for pos := range p.vis {
		p.vis[pos] = types.VisOff
	}
	p.Redraw(buf)
}
