// Package palette loads the on-disk color palette (a line-paired
// "#RRGGBB" / name text file) and falls back to the built-in table lifted
// from the original source when no file is given or a name is missing.
package palette

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/schollz/pushpluck/internal/midi"
)

// builtin is the original source's COLORS table, carried over verbatim.
var builtin = map[string]string{
	"Black":     "#000000",
	"DarkGrey":  "#A9A9A9",
	"Gray":      "#808080",
	"White":     "#FFFFFF",
	"Red":       "#FF0000",
	"Yellow":    "#FFFF00",
	"Lime":      "#00FF00",
	"Green":     "#008000",
	"Spring":    "#00FF7F",
	"Turquoise": "#40E0D0",
	"Cyan":      "#00FFFF",
	"Sky":       "#87CEEB",
	"Blue":      "#0000FF",
	"Orchid":    "#DA70D6",
	"Magenta":   "#FF00FF",
	"Pink":      "#FFC0CB",
	"Orange":    "#FFA580",
	"Indigo":    "#4B0082",
	"Violet":    "#EE82EE",
}

// Palette maps color names to RGB triples.
type Palette struct {
	colors map[string]midi.Color
}

// Default builds a Palette from the built-in table only.
func Default() (*Palette, error) {
	p := &Palette{colors: make(map[string]midi.Color, len(builtin))}
	for name, code := range builtin {
		c, err := hexToColor(code)
		if err != nil {
			return nil, fmt.Errorf("builtin color %s: %w", name, err)
		}
		p.colors[name] = c
	}
	return p, nil
}

// Load reads a colors.txt file: pairs of lines, a "#RRGGBB" hex code
// followed by the name it's bound to. Missing names fall back to the
// built-in table, so a palette file only needs to override what it wants
// to change.
func Load(path string) (*Palette, error) {
	p, err := Default()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening palette file %s: %w", path, err)
	}
	defer f.Close()
	if err := p.readFrom(f); err != nil {
		return nil, fmt.Errorf("reading palette file %s: %w", path, err)
	}
	return p, nil
}

func (p *Palette) readFrom(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var pendingCode string
	haveCode := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !haveCode {
			pendingCode = line
			haveCode = true
			continue
		}
		name := line
		c, err := hexToColor(pendingCode)
		if err != nil {
			return fmt.Errorf("color %s: %w", name, err)
		}
		p.colors[name] = c
		haveCode = false
	}
	return scanner.Err()
}

// Get looks up a named color, falling back to black if the name is
// unknown (an unknown palette name is treated as "no color", never a
// fatal error, since a pad simply stays off).
func (p *Palette) Get(name string) midi.Color {
	if c, ok := p.colors[name]; ok {
		return c
	}
	return midi.Color{}
}

func hexToColor(code string) (midi.Color, error) {
	cc, err := colorful.Hex(code)
	if err != nil {
		return midi.Color{}, err
	}
	r, g, b := cc.RGB255()
	return midi.Color{Red: r, Green: g, Blue: b}, nil
}
