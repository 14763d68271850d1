package chrfont

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/ByLCY/engraver/layout"
)

// Font holds glyphs in design units as read from a CHR file.
type Font struct {
	glyphs map[rune]glyph
	height float64
}

type glyph struct {
	width   float64
	strokes []layout.Stroke
}

// scaled returns a copy of the glyph stretched by x and y.
func (g glyph) scaled(x, y float64) glyph {
	out := glyph{width: g.width * x}
	for _, st := range g.strokes {
		s := make(layout.Stroke, len(st))
		for i, p := range st {
			s[i] = layout.Point{X: p.X * x, Y: p.Y * y}
		}
		out.strokes = append(out.strokes, s)
	}
	return out
}

// Parse reads a CHR font.
func Parse(r io.Reader) (*Font, error) {
	file, err := ParseFile(r)
	if err != nil {
		return nil, fmt.Errorf("chrfont: %w", err)
	}
	return build(file)
}

// ParseString reads a CHR font from a string.
func ParseString(input string) (*Font, error) {
	return Parse(strings.NewReader(input))
}

func build(file *File) (*Font, error) {
	if file == nil || len(file.Chars) == 0 {
		return nil, fmt.Errorf("chrfont: font defines no characters")
	}
	f := &Font{glyphs: make(map[rune]glyph, len(file.Chars)+1)}
	seen := map[rune]bool{}
	for _, def := range file.Chars {
		r := rune(def.Code)
		if seen[r] {
			return nil, fmt.Errorf("chrfont: %s: character %#02x defined twice", def.Pos, r)
		}
		seen[r] = true
		if def.Width <= 0 {
			return nil, fmt.Errorf("chrfont: %s: character %#02x has width %d", def.Pos, r, def.Width)
		}
		g := glyph{width: float64(def.Width)}
		for _, sd := range def.Strokes {
			st := make(layout.Stroke, 0, len(sd.Points))
			for _, p := range sd.Points {
				st = append(st, layout.Point{X: float64(p.X), Y: float64(p.Y)})
				f.height = math.Max(f.height, float64(p.Y))
			}
			g.strokes = append(g.strokes, st)
		}
		f.glyphs[r] = g
	}
	if f.height <= 0 {
		return nil, fmt.Errorf("chrfont: font has no points above the baseline")
	}

	// Synthetic space, two-thirds of the narrowest cell.
	if _, ok := f.glyphs[' ']; !ok {
		narrowest := math.Inf(1)
		for _, g := range f.glyphs {
			narrowest = math.Min(narrowest, g.width)
		}
		f.glyphs[' '] = glyph{width: narrowest * 2 / 3}
	}
	// A slash as wide as the digits looks too loose.
	if slash, ok := f.glyphs['/']; ok {
		if zero, ok := f.glyphs['0']; ok && slash.width == zero.width {
			f.glyphs['/'] = slash.scaled(0.5, 1)
		}
	}
	if hyphen, ok := f.glyphs['-']; ok {
		f.glyphs['-'] = hyphen.scaled(0.75, 1)
	}
	return f, nil
}

// Height is the highest point of any glyph, in design units.
func (f *Font) Height() float64 { return f.height }

// Has reports whether the font defines r (including the synthetic space).
func (f *Font) Has(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

// Runes lists the defined characters in ascending order.
func (f *Font) Runes() []rune {
	out := make([]rune, 0, len(f.glyphs))
	for r := range f.glyphs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Face returns a glyph source whose glyphs are xHeight millimeters tall.
func (f *Font) Face(xHeight float64) *Face {
	k := xHeight / f.height
	face := &Face{glyphs: make(map[rune]layout.Character, len(f.glyphs))}
	for r, g := range f.glyphs {
		s := g.scaled(k, k)
		face.glyphs[r] = layout.Character{Key: r, UnitWidth: s.width, Strokes: s.strokes}
	}
	return face
}

// Face is a CHR font scaled to millimeters. It is read-only and safe for
// concurrent use.
type Face struct {
	glyphs map[rune]layout.Character
}

var _ layout.GlyphSource = (*Face)(nil)

// Lookup implements layout.GlyphSource.
func (f *Face) Lookup(r rune) (layout.Character, error) {
	c, ok := f.glyphs[r]
	if !ok {
		return layout.Character{}, fmt.Errorf("%w: %q", layout.ErrUnknownGlyph, r)
	}
	return c, nil
}
