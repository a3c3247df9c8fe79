package menu

import "github.com/schollz/pushpluck/internal/config"

// Lens reads and writes one field of Config as an index into a KnobControl's
// ValRange, so every knob can share the same tick algorithm regardless of
// what it actually controls.
type Lens struct {
	Get func(cfg config.Config) int
	Set func(cfg config.Config, index int) config.Config
}

// KnobControl binds one encoder to a Config field through a Lens, with its
// own sensitivity (ticks per value step) and value range.
type KnobControl struct {
	Name        string
	Sensitivity int
	Range       ValRange
	Lens        Lens

	accum int
}

// Render shows the knob's current value as it should appear on the LCD.
func (k *KnobControl) Render(cfg config.Config) string {
	return k.Range.Render(k.Lens.Get(cfg))
}

// Tick integrates one encoder click. Accumulated clicks advance the bound
// index by one step per Sensitivity clicks (succ on clockwise, pred
// otherwise); at either end of the range the accumulator clamps at
// ±Sensitivity instead of carrying over, so continuing to turn the knob
// past the end doesn't eventually snap forward once it is turned back.
// The returned bool reports whether the bound index actually moved — a
// sub-threshold tick leaves cfg untouched and changed == false.
func (k *KnobControl) Tick(cfg config.Config, clockwise bool) (config.Config, bool) {
	if clockwise {
		k.accum++
	} else {
		k.accum--
	}

	startIdx := k.Lens.Get(cfg)
	idx := startIdx
	n := k.Range.Len()

	for k.accum >= k.Sensitivity {
		if idx < n-1 {
			idx++
			k.accum -= k.Sensitivity
		} else {
			k.accum = k.Sensitivity
			break
		}
	}
	for k.accum <= -k.Sensitivity {
		if idx > 0 {
			idx--
			k.accum += k.Sensitivity
		} else {
			k.accum = -k.Sensitivity
			break
		}
	}

	if idx == startIdx {
		return cfg, false
	}
	return k.Lens.Set(cfg, idx), true
}
