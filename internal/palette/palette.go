// internal/palette/palette.go
//
// Peg colour palette used when rendering combinations.
//
// Loading behavior:
//   1. If a palette file path is given (PALETTE_FILE / palette_file config),
//      it is read with one "<label> <terminal colour>" entry per line.
//   2. Otherwise the embedded default from assets/palette.txt is used.
//
// Colour values are 1-based: value v uses entry (v-1) mod len(entries), so a
// game with more colours than entries reuses colours but keeps its numbers.
// The default palette is loaded once (sync.Once).

package palette

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/robalobadob/mastermind/assets"
)

// Entry is one palette colour.
type Entry struct {
	Label string
	Attr  color.Attribute
}

// Palette maps colour values to terminal colours.
type Palette struct {
	entries []Entry
}

var attrs = map[string]color.Attribute{
	"black":     color.FgBlack,
	"red":       color.FgRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"blue":      color.FgBlue,
	"magenta":   color.FgMagenta,
	"cyan":      color.FgCyan,
	"white":     color.FgWhite,
	"hiblack":   color.FgHiBlack,
	"hired":     color.FgHiRed,
	"higreen":   color.FgHiGreen,
	"hiyellow":  color.FgHiYellow,
	"hiblue":    color.FgHiBlue,
	"himagenta": color.FgHiMagenta,
	"hicyan":    color.FgHiCyan,
	"hiwhite":   color.FgHiWhite,
}

var (
	defaultOnce sync.Once
	defaultPal  *Palette
	defaultErr  error
)

// Default returns the embedded palette.
func Default() (*Palette, error) {
	defaultOnce.Do(func() {
		lines, err := assets.PaletteLines()
		if err != nil {
			defaultErr = err
			return
		}
		defaultPal, defaultErr = parse(lines)
	})
	return defaultPal, defaultErr
}

// Load reads a palette file, or returns Default when path is empty.
func Load(path string) (*Palette, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette: %w", err)
	}
	defer f.Close()

	lines, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	return parse(lines)
}

func parse(lines []string) (*Palette, error) {
	p := &Palette{}
	for _, line := range lines {
		fields := strings.Fields(line)
		label, colour := fields[0], fields[0]
		if len(fields) > 1 {
			colour = fields[1]
		}
		attr, ok := attrs[strings.ToLower(colour)]
		if !ok {
			return nil, fmt.Errorf("palette: unknown terminal colour %q for %q", colour, label)
		}
		p.entries = append(p.entries, Entry{Label: label, Attr: attr})
	}
	if len(p.entries) == 0 {
		return nil, errors.New("palette: no colours defined")
	}
	return p, nil
}

// Len returns the number of distinct entries.
func (p *Palette) Len() int { return len(p.entries) }

// Entry returns the entry for colour value v (1-based).
func (p *Palette) Entry(v int) Entry {
	if v < 1 {
		v = 1
	}
	return p.entries[(v-1)%len(p.entries)]
}

// Legend lists "value=label" pairs for the first n colours.
func (p *Palette) Legend(n int) string {
	parts := make([]string, n)
	for v := 1; v <= n; v++ {
		parts[v-1] = fmt.Sprintf("%d=%s", v, p.Entry(v).Label)
	}
	return strings.Join(parts, " ")
}
