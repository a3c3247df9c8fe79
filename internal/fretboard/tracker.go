package fretboard

import "github.com/schollz/pushpluck/internal/types"

// noteTracker is the process-wide visibility/routing state: which notes
// are sounding on each channel, which string positions are the direct
// ("primary") source of a sounding note, and the last VisState computed
// for every position touched so far.
type noteTracker struct {
	channelNotes map[int]map[int]bool
	primary      map[types.StringPos]bool
	vis          map[types.StringPos]types.VisState
}

func newNoteTracker() *noteTracker {
	return &noteTracker{
		channelNotes: make(map[int]map[int]bool),
		primary:      make(map[types.StringPos]bool),
		vis:          make(map[types.StringPos]types.VisState),
	}
}

func (t *noteTracker) noteActiveOnChannel(channel, note int) bool {
	set := t.channelNotes[channel]
	return set != nil && set[note]
}

func (t *noteTracker) noteActiveOnOtherChannel(channel, note int) bool {
	for ch, set := range t.channelNotes {
		if ch != channel && set[note] {
			return true
		}
	}
	return false
}

func (t *noteTracker) visFor(sp types.StringPos, channel, note int) types.VisState {
	if t.primary[sp] {
		return types.VisOnPrimary
	}
	if t.noteActiveOnChannel(channel, note) {
		return types.VisOnDisabled
	}
	if t.noteActiveOnOtherChannel(channel, note) {
		return types.VisOnLinked
	}
	return types.VisOff
}

// apply records one emitted (sp, channel, note, on) event and returns the
// VisState updates it produces for sp and every equivalent position.
func (t *noteTracker) apply(sp types.StringPos, channel, note int, on bool, equivs []types.StringPos, channelFor func(types.StringPos) (int, bool)) map[types.StringPos]types.VisState {
	if t.channelNotes[channel] == nil {
		t.channelNotes[channel] = make(map[int]bool)
	}
	if on {
		t.channelNotes[channel][note] = true
		t.primary[sp] = true
	} else {
		delete(t.channelNotes[channel], note)
		delete(t.primary, sp)
	}

	updates := make(map[types.StringPos]types.VisState, len(equivs)+1)
	set := func(pos types.StringPos, ch int) {
		v := t.visFor(pos, ch, note)
		t.vis[pos] = v
		updates[pos] = v
	}
	set(sp, channel)
	for _, eq := range equivs {
		if eq == sp {
			continue
		}
		eqCh, ok := channelFor(eq)
		if !ok {
			continue
		}
		set(eq, eqCh)
	}
	return updates
}
