package fretboard

import "github.com/schollz/pushpluck/internal/types"

// noteHandler implements one of the three play-mode strategies over a
// fixed number of strings, turning one incoming (note, velocity) trigger
// on a string into zero or more ordered emissions.
type noteHandler interface {
	handle(strIndex, note int, velocity uint8) []noteEvent
}

func newNoteHandler(mode types.PlayMode, numStrings int) noteHandler {
	switch mode {
	case types.PlayModePoly:
		return polyHandler{}
	case types.PlayModeMono:
		return newMonoHandler(numStrings)
	default:
		return newTapHandler(numStrings)
	}
}

// polyHandler passes every trigger straight through: no choking, every
// pluck or release sounds independently.
type polyHandler struct{}

func (polyHandler) handle(strIndex, note int, velocity uint8) []noteEvent {
	return []noteEvent{{note, velocity}}
}

// monoHandler keeps at most one sounding note per string. A new pluck
// always chokes whatever was ringing on that string first.
type monoHandler struct {
	pending map[int]int
}

func newMonoHandler(numStrings int) *monoHandler {
	return &monoHandler{pending: make(map[int]int, numStrings)}
}

func (h *monoHandler) handle(strIndex, note int, velocity uint8) []noteEvent {
	prev, had := h.pending[strIndex]
	if velocity > 0 {
		var out []noteEvent
		if had && prev != note {
			out = append(out, noteEvent{prev, 0})
		}
		out = append(out, noteEvent{note, velocity})
		h.pending[strIndex] = note
		return out
	}
	if had && prev == note {
		delete(h.pending, strIndex)
		return []noteEvent{{note, 0}}
	}
	return nil
}

// tapHandler runs a chokeGroup per string: the highest held fret rings,
// lower frets queue silently underneath it (hammer-on/pull-off).
type tapHandler struct {
	groups []*chokeGroup
}

func newTapHandler(numStrings int) *tapHandler {
	groups := make([]*chokeGroup, numStrings)
	for i := range groups {
		groups[i] = newChokeGroup()
	}
	return &tapHandler{groups: groups}
}

func (h *tapHandler) handle(strIndex, note int, velocity uint8) []noteEvent {
	return h.groups[strIndex].pluck(note, velocity)
}
