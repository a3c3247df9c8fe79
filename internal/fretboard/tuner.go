package fretboard

import "github.com/schollz/pushpluck/internal/types"

// tuner resolves StringPos <-> absolute MIDI note over a fixed set of
// bounds, built once per config from the open-string tuning plus a global
// semitone transpose.
type tuner struct {
	tuning       []int
	semitones    int
	noteLookup   map[types.StringPos]int
	equivsLookup map[int][]types.StringPos
}

func newTuner(tuning []int, semitones int, bounds types.StringBounds) *tuner {
	t := &tuner{
		tuning:       tuning,
		semitones:    semitones,
		noteLookup:   make(map[types.StringPos]int),
		equivsLookup: make(map[int][]types.StringPos),
	}
	bounds.Iter(func(sp types.StringPos) {
		if sp.StrIndex < 0 || sp.StrIndex >= len(tuning) {
			return
		}
		note := tuning[sp.StrIndex] + semitones + sp.Fret
		t.noteLookup[sp] = note
		t.equivsLookup[note] = append(t.equivsLookup[note], sp)
	})
	return t
}

// note looks up the absolute MIDI note a string position produces.
func (t *tuner) note(sp types.StringPos) (int, bool) {
	if sp.StrIndex < 0 || sp.StrIndex >= len(t.tuning) {
		return 0, false
	}
	n, ok := t.noteLookup[sp]
	if ok {
		return n, true
	}
	// Outside the bounds the tuner was built over; still a valid note,
	// just not one any pad currently exposes.
	return t.tuning[sp.StrIndex] + t.semitones + sp.Fret, true
}

// equivs lists every string position within bounds that produces the same
// absolute note.
func (t *tuner) equivs(note int) []types.StringPos {
	return t.equivsLookup[note]
}

// stringPosOnForNote reconstructs the StringPos on strIndex that produces
// note, independent of whatever bounds the tuner was built over. A choke
// batch emits events for notes that may not be the note the incoming pad
// event named, but every one of them is still produced by some fret on the
// same string — this recovers which one so display/tracking state can be
// attributed to the position that actually owns the note.
func (t *tuner) stringPosOnForNote(strIndex, note int) types.StringPos {
	fret := note - t.tuning[strIndex] - t.semitones
	return types.StringPos{StrIndex: strIndex, Fret: fret}
}
