package fretboard

import "sort"

// noteEvent is an ordered emission from a note handler: a note-on (nonzero
// velocity) or a note-off (zero velocity).
type noteEvent struct {
	note     int
	velocity uint8
}

// chokeGroup is the per-string state machine: an ascending list of
// currently-held notes plus the velocity each was last plucked at. Only
// the highest held note ever sounds, matching a real string that can only
// ring one pitch at a time.
type chokeGroup struct {
	order []int
	info  map[int]uint8
}

func newChokeGroup() *chokeGroup {
	return &chokeGroup{info: make(map[int]uint8)}
}

func (g *chokeGroup) maxNote() (int, bool) {
	if len(g.order) == 0 {
		return 0, false
	}
	return g.order[len(g.order)-1], true
}

// pluck inserts or removes a note and returns the messages the choke
// transition produces, in emission order.
func (g *chokeGroup) pluck(note int, velocity uint8) []noteEvent {
	prevMax, prevOk := g.maxNote()
	idx := sort.SearchInts(g.order, note)
	exists := idx < len(g.order) && g.order[idx] == note

	if velocity > 0 {
		if !exists {
			g.order = append(g.order, 0)
			copy(g.order[idx+1:], g.order[idx:])
			g.order[idx] = note
		}
		g.info[note] = velocity

		if !prevOk {
			return []noteEvent{{note, velocity}}
		}
		if note > prevMax {
			// Hammer-on: sound the new note before choking the old one, so
			// their envelopes overlap instead of clicking.
			return []noteEvent{{note, velocity}, {prevMax, 0}}
		}
		return nil
	}

	if exists {
		g.order = append(g.order[:idx], g.order[idx+1:]...)
		delete(g.info, note)
	}
	curMax, curOk := g.maxNote()
	if !curOk {
		if prevOk {
			return []noteEvent{{prevMax, 0}}
		}
		return nil
	}
	if curMax != prevMax {
		// Pull-off: choke the released note, then re-sound whatever's now on top.
		return []noteEvent{{prevMax, 0}, {curMax, g.info[curMax]}}
	}
	return nil
}
