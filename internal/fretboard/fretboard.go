// Package fretboard resolves note pitches, clamps velocities, runs the
// per-string play-mode state machine, and tracks which notes are sounding
// across config changes.
package fretboard

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/schollz/pushpluck/internal/midi"
	"github.com/schollz/pushpluck/internal/types"
)

// FretboardMessage pairs one outbound MIDI message with the string
// position that produced it and every equivalent position sharing its
// pitch, so a caller can update display state alongside sending it.
type FretboardMessage struct {
	StrPos types.StringPos
	Equivs []types.StringPos
	Msg    gomidi.Message
}

// NoteEffects is the return value of every fretboard operation: a set of
// display updates plus an ordered sequence of outbound MIDI messages.
type NoteEffects struct {
	Vis  map[types.StringPos]types.VisState
	Msgs []FretboardMessage
}

func newEffects() NoteEffects {
	return NoteEffects{Vis: make(map[types.StringPos]types.VisState)}
}

func (fx *NoteEffects) merge(other NoteEffects) {
	for sp, vis := range other.Vis {
		fx.Vis[sp] = vis
	}
	fx.Msgs = append(fx.Msgs, other.Msgs...)
}

// Config is the subset of the root Config the fretboard reacts to.
type Config struct {
	Tuning      []int
	Semitones   int
	MinVelocity uint8
	PlayMode    types.PlayMode
	ChannelMode types.ChannelMode
	Bounds      types.StringBounds
}

// Fretboard is the engine: tuner + channel mapper + play-mode handler +
// note tracker, rebuilt wholesale on every config change.
type Fretboard struct {
	minVelocity uint8
	tuner       *tuner
	mapper      channelMapper
	handler     noteHandler
	tracker     *noteTracker
}

// New builds a fresh Fretboard from a config, with no notes sounding.
func New(config Config) *Fretboard {
	return &Fretboard{
		minVelocity: config.MinVelocity,
		tuner:       newTuner(config.Tuning, config.Semitones, config.Bounds),
		mapper:      newChannelMapper(config.ChannelMode),
		handler:     newNoteHandler(config.PlayMode, len(config.Tuning)),
		tracker:     newNoteTracker(),
	}
}

func (f *Fretboard) clampVelocity(v uint8) uint8 {
	if v == 0 {
		return 0
	}
	if v < f.minVelocity {
		return f.minVelocity
	}
	return v
}

// Note resolves the absolute MIDI note a string position produces.
func (f *Fretboard) Note(sp types.StringPos) (int, bool) {
	return f.tuner.note(sp)
}

func (f *Fretboard) channelFor(sp types.StringPos) (int, bool) {
	return f.mapper.channel(sp.StrIndex)
}

// Trigger handles one incoming pad event at a string position, running it
// through the play-mode handler and recording its effects.
func (f *Fretboard) Trigger(sp types.StringPos, velocity uint8) NoteEffects {
	fx := newEffects()
	note, ok := f.tuner.note(sp)
	if !ok {
		return fx
	}
	channel, ok := f.channelFor(sp)
	if !ok {
		return fx
	}
	events := f.handler.handle(sp.StrIndex, note, f.clampVelocity(velocity))
	for _, ev := range events {
		// A choke batch can emit events for a note other than the one sp
		// named (the hammer-on/pull-off partner) — recover the position on
		// this string that actually owns ev.note so tracking/display state
		// lands on the right pad instead of always sp's.
		owner := f.tuner.stringPosOnForNote(sp.StrIndex, ev.note)
		equivs := f.tuner.equivs(ev.note)
		updates := f.tracker.apply(owner, channel, ev.note, ev.velocity > 0, equivs, f.channelFor)
		for pos, vis := range updates {
			fx.Vis[pos] = vis
		}
		fx.Msgs = append(fx.Msgs, FretboardMessage{
			StrPos: owner,
			Equivs: equivs,
			Msg:    midi.NoteMessage(channel, ev.note, ev.velocity),
		})
	}
	return fx
}

// CleanFx produces note-offs for every currently active note and resets
// every non-Off VisState to Off, without replacing the tracker itself —
// the caller replaces the whole Fretboard right after calling this, so
// there is no need to leave it in a consistent post-reset state.
//
// The note-offs are driven from the tracker's per-channel sounding-note
// set, the one state that's authoritative about what's actually ringing
// (see noteTracker) — not from the "primary" position set, which a choke
// batch can leave pointing at a position whose note already went silent.
func (f *Fretboard) CleanFx() NoteEffects {
	fx := newEffects()
	for channel, notes := range f.tracker.channelNotes {
		for note := range notes {
			fx.Msgs = append(fx.Msgs, FretboardMessage{
				StrPos: f.ownerForNote(note),
				Equivs: f.tuner.equivs(note),
				Msg:    midi.NoteMessage(channel, note, 0),
			})
		}
	}
	for sp, vis := range f.tracker.vis {
		if vis != types.VisOff {
			fx.Vis[sp] = types.VisOff
		}
	}
	return fx
}

// ownerForNote picks a representative equivalent position for note, for a
// FretboardMessage that has no single incoming pad event to attribute
// itself to (CleanFx sweeps the channel note set, not a particular pad).
func (f *Fretboard) ownerForNote(note int) types.StringPos {
	if equivs := f.tuner.equivs(note); len(equivs) > 0 {
		return equivs[0]
	}
	return types.StringPos{}
}
