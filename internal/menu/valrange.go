package menu

import "strconv"

// ValRange is the set of values a KnobControl cycles through: either an
// integer window or a fixed list of choices, each with its own renderer
// for the LCD.
type ValRange interface {
	Len() int
	Render(index int) string
}

// IntRange is a contiguous [min,max] integer window, addressed by index
// 0..(max-min).
type IntRange struct {
	Min, Max int
}

// Len reports how many values the range holds.
func (r IntRange) Len() int { return r.Max - r.Min + 1 }

// Render shows the integer value at index.
func (r IntRange) Render(index int) string { return strconv.Itoa(r.ToValue(index)) }

// ToValue converts an index back into the integer it represents.
func (r IntRange) ToValue(index int) int { return r.Min + index }

// FromValue converts an integer into its index, clamping to the range.
func (r IntRange) FromValue(v int) int {
	idx := v - r.Min
	if idx < 0 {
		return 0
	}
	if idx > r.Len()-1 {
		return r.Len() - 1
	}
	return idx
}

// ChoiceRange is a fixed ordered list of named choices.
type ChoiceRange struct {
	Choices []string
}

// Len reports the number of choices.
func (r ChoiceRange) Len() int { return len(r.Choices) }

// Render names the choice at index.
func (r ChoiceRange) Render(index int) string { return r.Choices[index] }
