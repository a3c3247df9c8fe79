// Package scale holds the note-name enum, scale/mode definitions, and the
// classifier that decides whether a pitch is a scale's root, one of its
// members, or neither.
package scale

import "fmt"

// NoteName is one of the twelve pitch classes, numbered the way the
// original source numbers them (C=0 ... B=11).
type NoteName int

const (
	C NoteName = iota
	Cs
	D
	Ds
	E
	F
	Fs
	G
	Gs
	A
	As
	B
)

const maxNotes = 12

var noteNames = [maxNotes]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (n NoteName) String() string {
	if n < 0 || int(n) >= maxNotes {
		return fmt.Sprintf("NoteName(%d)", int(n))
	}
	return noteNames[n]
}

// AllNoteNames lists the twelve note names in order, for menus and tests.
func AllNoteNames() []NoteName {
	names := make([]NoteName, maxNotes)
	for i := range names {
		names[i] = NoteName(i)
	}
	return names
}

// NameAndOctaveFromNote decomposes an absolute MIDI note into its pitch
// class and octave, matching the teacher's MidiToNoteName convention
// (octave -2 at MIDI note 0) adapted to a NoteName/int pair instead of a
// formatted string.
func NameAndOctaveFromNote(note int) (NoteName, int) {
	offset := ((note % maxNotes) + maxNotes) % maxNotes
	octave := note/maxNotes - 2
	return NoteName(offset), octave
}

func addStep(base NoteName, semitones int) NoteName {
	v := (int(base) + semitones) % maxNotes
	if v < 0 {
		v += maxNotes
	}
	return NoteName(v)
}

// Step is a scale interval in semitones.
type Step int

const (
	Half Step = 1
	Whole Step = 2
)

// Scale is a root note plus the ascending sequence of steps that returns
// to it.
type Scale struct {
	Name      string
	Root      NoteName
	Intervals []Step
}

// MajorIntervals is the whole/whole/half/whole/whole/whole/half pattern.
var MajorIntervals = []Step{Whole, Whole, Half, Whole, Whole, Whole, Half}

// ChromaticIntervals is twelve half steps.
var ChromaticIntervals = func() []Step {
	steps := make([]Step, maxNotes)
	for i := range steps {
		steps[i] = Half
	}
	return steps
}()

// Mode is one of the seven rotations of the major scale.
type Mode int

const (
	Ionian Mode = iota
	Dorian
	Phrygian
	Lydian
	Mixolydian
	Aeolian
	Locrian
)

var modeNames = [7]string{"Ionian", "Dorian", "Phrygian", "Lydian", "Mixolydian", "Aeolian", "Locrian"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

func rotate(steps []Step, places int) []Step {
	out := make([]Step, len(steps))
	for i := range steps {
		out[i] = steps[(i+places)%len(steps)]
	}
	return out
}

// ModeScale builds the scale for a mode of the major scale rooted at root.
func ModeScale(root NoteName, mode Mode) Scale {
	return Scale{Name: mode.String(), Root: root, Intervals: rotate(MajorIntervals, int(mode))}
}

// ChromaticScale builds the all-twelve-notes scale rooted at root.
func ChromaticScale(root NoteName) Scale {
	return Scale{Name: "Chromatic", Root: root, Intervals: ChromaticIntervals}
}

// Classifier answers root/member/other queries for a built scale.
type Classifier struct {
	root    NoteName
	members map[NoteName]bool
}

// IsRoot reports whether name is the scale's root.
func (c Classifier) IsRoot(name NoteName) bool { return name == c.root }

// IsMember reports whether name is in the scale (root included).
func (c Classifier) IsMember(name NoteName) bool { return c.members[name] }

// ToClassifier walks the scale's intervals from its root and builds a
// membership set, matching the original source's Scale.to_lookup.
func (s Scale) ToClassifier() Classifier {
	members := make(map[NoteName]bool, len(s.Intervals))
	base := s.Root
	for _, step := range s.Intervals {
		members[base] = true
		base = addStep(base, int(step))
	}
	return Classifier{root: s.Root, members: members}
}

// NamedScales lists every scale/mode this module offers, for the Menu's
// scale chooser.
func NamedScales(root NoteName) []Scale {
	scales := make([]Scale, 0, 8)
	for _, mode := range []Mode{Ionian, Dorian, Phrygian, Lydian, Mixolydian, Aeolian, Locrian} {
		scales = append(scales, ModeScale(root, mode))
	}
	scales = append(scales, ChromaticScale(root))
	return scales
}
