package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/schollz/pushpluck/internal/scale"
	"github.com/schollz/pushpluck/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// state is the subset of Config worth persisting across a restart: the
// knob/button choices a player made, not the full scale/tuning objects.
type state struct {
	InstrumentName string      `json:"instrument_name"`
	TuningName     string      `json:"tuning_name"`
	Tuning         []int       `json:"tuning"`
	Layout         types.Layout `json:"layout"`
	PlayMode       types.PlayMode `json:"play_mode"`
	ChannelMode    types.ChannelMode `json:"channel_mode"`
	Root           int         `json:"root"`
	MinVelocity    uint8       `json:"min_velocity"`
	Semitones      int         `json:"semitones"`
	StrOffset      int         `json:"str_offset"`
	FretOffset     int         `json:"fret_offset"`
}

// SaveState writes the restart-relevant slice of cfg to path as JSON.
func SaveState(path string, cfg Config) error {
	s := state{
		InstrumentName: cfg.InstrumentName,
		TuningName:     cfg.TuningName,
		Tuning:         cfg.Tuning,
		Layout:         cfg.Layout,
		PlayMode:       cfg.PlayMode,
		ChannelMode:    cfg.ChannelMode,
		Root:           int(cfg.Root),
		MinVelocity:    cfg.MinVelocity,
		Semitones:      cfg.Semitones,
		StrOffset:      cfg.StrOffset,
		FretOffset:     cfg.FretOffset,
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config state to %s: %w", path, err)
	}
	return nil
}

// LoadState reads a previously saved state file and applies it on top of
// base, leaving fields the state file doesn't carry (scale) untouched.
func LoadState(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config state from %s: %w", path, err)
	}
	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return base, fmt.Errorf("unmarshaling config state: %w", err)
	}
	base.InstrumentName = s.InstrumentName
	base.TuningName = s.TuningName
	base.Tuning = s.Tuning
	base.Layout = s.Layout
	base.PlayMode = s.PlayMode
	base.ChannelMode = s.ChannelMode
	base.Root = scale.NoteName(s.Root)
	base.MinVelocity = s.MinVelocity
	base.Semitones = s.Semitones
	base.StrOffset = s.StrOffset
	base.FretOffset = s.FretOffset
	return base, nil
}
