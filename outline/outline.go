// Package outline turns TrueType/OpenType glyph outlines into engraving
// strokes. Every contour becomes one closed polyline; quadratic and cubic
// segments are flattened into a fixed number of line segments.
package outline

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/engraver/layout"
)

const defaultCurveSteps = 8

// Options configures how outlines are scaled and flattened.
type Options struct {
	// XHeight is the height in millimeters that the font's cap height maps to.
	XHeight float64
	// CurveSteps is the number of line segments per curve segment.
	CurveSteps int
}

// Face is an outline font scaled to millimeters. Lookups are cached and
// guarded by a mutex, so a Face may be shared between goroutines.
type Face struct {
	font  *sfnt.Font
	ppem  fixed.Int26_6
	scale float64
	steps int

	mu    sync.Mutex
	buf   sfnt.Buffer
	cache map[rune]layout.Character
}

var _ layout.GlyphSource = (*Face)(nil)

// Parse loads a TrueType or OpenType font.
func Parse(data []byte, opts Options) (*Face, error) {
	if !(opts.XHeight > 0) {
		return nil, fmt.Errorf("outline: x-height must be positive, got %g", opts.XHeight)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	face := &Face{
		font:  f,
		ppem:  fixed.I(int(f.UnitsPerEm())),
		steps: opts.CurveSteps,
		cache: map[rune]layout.Character{},
	}
	if face.steps <= 0 {
		face.steps = defaultCurveSteps
	}

	m, err := f.Metrics(&face.buf, face.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	ref := m.CapHeight
	if ref <= 0 {
		ref = m.Ascent
	}
	if ref <= 0 {
		return nil, fmt.Errorf("outline: font reports no cap height or ascent")
	}
	face.scale = opts.XHeight / fromFixed(ref)
	return face, nil
}

// Goregular returns the Go Regular font bundled with golang.org/x/image.
func Goregular(opts Options) (*Face, error) {
	return Parse(goregular.TTF, opts)
}

// Lookup implements layout.GlyphSource.
func (f *Face) Lookup(r rune) (layout.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.cache[r]; ok {
		return c, nil
	}
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return layout.Character{}, fmt.Errorf("outline: %q: %w", r, err)
	}
	if idx == 0 {
		return layout.Character{}, fmt.Errorf("%w: %q", layout.ErrUnknownGlyph, r)
	}
	segments, err := f.font.LoadGlyph(&f.buf, idx, f.ppem, nil)
	if err != nil {
		return layout.Character{}, fmt.Errorf("outline: %q: %w", r, err)
	}
	advance, err := f.font.GlyphAdvance(&f.buf, idx, f.ppem, font.HintingNone)
	if err != nil {
		return layout.Character{}, fmt.Errorf("outline: %q: %w", r, err)
	}

	c := layout.Character{
		Key:       r,
		UnitWidth: fromFixed(advance) * f.scale,
		Strokes:   f.flatten(segments),
	}
	f.cache[r] = c
	return c, nil
}

// flatten converts sfnt segments, whose y axis points down, into closed
// polylines with the y axis pointing up.
func (f *Face) flatten(segments sfnt.Segments) []layout.Stroke {
	var (
		strokes []layout.Stroke
		current layout.Stroke
		pen     layout.Point
	)
	flush := func() {
		if len(current) > 1 {
			if current[0] != current[len(current)-1] {
				current = append(current, current[0])
			}
			strokes = append(strokes, current)
		}
		current = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			pen = f.point(seg.Args[0])
			current = layout.Stroke{pen}
		case sfnt.SegmentOpLineTo:
			pen = f.point(seg.Args[0])
			current = append(current, pen)
		case sfnt.SegmentOpQuadTo:
			c, end := f.point(seg.Args[0]), f.point(seg.Args[1])
			for i := 1; i <= f.steps; i++ {
				current = append(current, quad(pen, c, end, float64(i)/float64(f.steps)))
			}
			pen = end
		case sfnt.SegmentOpCubeTo:
			c1, c2, end := f.point(seg.Args[0]), f.point(seg.Args[1]), f.point(seg.Args[2])
			for i := 1; i <= f.steps; i++ {
				current = append(current, cube(pen, c1, c2, end, float64(i)/float64(f.steps)))
			}
			pen = end
		}
	}
	flush()
	return strokes
}

func (f *Face) point(p fixed.Point26_6) layout.Point {
	return layout.Point{X: fromFixed(p.X) * f.scale, Y: -fromFixed(p.Y) * f.scale}
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

func quad(p0, c, p1 layout.Point, t float64) layout.Point {
	u := 1 - t
	return layout.Point{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

func cube(p0, c1, c2, p1 layout.Point, t float64) layout.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return layout.Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}
