package layout

import (
	"errors"
	"fmt"
	"testing"
)

// stubGlyphs 是测试用字形源：每个字符固定宽度，笔画为一条从左下到右上的斜线。
type stubGlyphs map[rune]float64

func (s stubGlyphs) Lookup(r rune) (Character, error) {
	w, ok := s[r]
	if !ok {
		return Character{}, fmt.Errorf("%w: %q", ErrUnknownGlyph, r)
	}
	var strokes []Stroke
	if r != ' ' {
		strokes = []Stroke{{{X: 0, Y: 0}, {X: w, Y: 2.8}}}
	}
	return Character{Key: r, UnitWidth: w, Strokes: strokes}, nil
}

func asciiGlyphs(width float64) stubGlyphs {
	g := stubGlyphs{}
	for r := rune(0x20); r < 0x7f; r++ {
		g[r] = width
	}
	return g
}

func TestTokenizeSpaces(t *testing.T) {
	cases := []struct {
		raw  string
		want Columns
	}{
		{"Lorem Ipsum", SingleColumn{Text: "Lorem Ipsum"}},
		{"Lorem Ipsum  12 34", TwoColumn{Left: "Lorem Ipsum", Right: "12 34"}},
		{"A B C   D E", TwoColumn{Left: "A B C", Right: "D E"}},
		{" lead  trail ", TwoColumn{Left: " lead", Right: "trail "}},
		{"Left  ", SingleColumn{Text: "Left"}},
		{"  Right", SingleColumn{Text: "Right"}},
		{"    ", SingleColumn{Text: ""}},
		{"", SingleColumn{Text: ""}},
		{"x", SingleColumn{Text: "x"}},
	}
	for _, c := range cases {
		got, err := Tokenize(c.raw, SeparatorSpaces)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", c.raw, err)
		}
		if got != c.want {
			t.Fatalf("Tokenize(%q) = %#v, want %#v", c.raw, got, c.want)
		}
	}
}

func TestTokenizeSpacesAmbiguous(t *testing.T) {
	for _, raw := range []string{"a  b  c", "one  two   three", "a\x1fb", "a  b\x1fc"} {
		if _, err := Tokenize(raw, SeparatorSpaces); !errors.Is(err, ErrAmbiguousSeparator) {
			t.Fatalf("Tokenize(%q) err = %v, want ErrAmbiguousSeparator", raw, err)
		}
	}
}

func TestTokenizeUnit(t *testing.T) {
	got, err := Tokenize("Lorem  Ipsum\x1f12   34", SeparatorUnit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := TwoColumn{Left: "Lorem  Ipsum", Right: "12   34"}
	if got != want {
		t.Fatalf("got %#v, want %#v", got, want)
	}

	got, err = Tokenize("a  b  c", SeparatorUnit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (SingleColumn{Text: "a  b  c"}) {
		t.Fatalf("spaces must be literal in unit mode, got %#v", got)
	}

	if _, err := Tokenize("a\x1fb\x1fc", SeparatorUnit); !errors.Is(err, ErrAmbiguousSeparator) {
		t.Fatalf("expected ErrAmbiguousSeparator, got %v", err)
	}
}

// 两种分栏约定对同一文本给出相同的测量结果。
func TestSeparatorModesEquivalent(t *testing.T) {
	g := asciiGlyphs(1)
	a, err := Measurer{Glyphs: g, Separator: SeparatorSpaces}.Measure("AB C" + SeparatorSpaces.Join() + "DE")
	if err != nil {
		t.Fatalf("spaces: %v", err)
	}
	b, err := Measurer{Glyphs: g, Separator: SeparatorUnit}.Measure("AB C" + SeparatorUnit.Join() + "DE")
	if err != nil {
		t.Fatalf("unit: %v", err)
	}
	if a.HasGap != b.HasGap || len(a.Parts) != len(b.Parts) || a.TotalCharWidth() != b.TotalCharWidth() {
		t.Fatalf("modes disagree: %+v vs %+v", a, b)
	}
}

func TestMeasureSingleSpaceIsLiteral(t *testing.T) {
	g := stubGlyphs{'A': 2, 'B': 3, ' ': 1}
	line, err := Measurer{Glyphs: g}.Measure("A B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.HasGap {
		t.Fatalf("single space must not create a gap")
	}
	if len(line.Parts) != 1 || len(line.Parts[0]) != 3 {
		t.Fatalf("expected one part of 3 characters, got %+v", line.Parts)
	}
	if got := line.TotalCharWidth(); got != 6 {
		t.Fatalf("total width = %g, want 6", got)
	}
}

func TestMeasureTwoColumns(t *testing.T) {
	g := stubGlyphs{'A': 2, 'B': 3, 'C': 1, ' ': 0.5}
	line, err := Measurer{Glyphs: g}.Measure("A B  CC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !line.HasGap || len(line.Parts) != 2 {
		t.Fatalf("expected two parts with gap, got %+v", line)
	}
	if w := line.Parts[0].Width(); w != 5.5 {
		t.Fatalf("left width = %g, want 5.5", w)
	}
	if w := line.Parts[1].Width(); w != 2 {
		t.Fatalf("right width = %g, want 2", w)
	}
	if w := line.TotalCharWidth(); w != 7.5 {
		t.Fatalf("total width = %g, want 7.5", w)
	}
}

func TestMeasureEmptyLine(t *testing.T) {
	m := Measurer{Glyphs: asciiGlyphs(1)}
	for _, raw := range []string{"", "   "} {
		line, err := m.Measure(raw)
		if !errors.Is(err, ErrEmptyLine) {
			t.Fatalf("Measure(%q) err = %v, want ErrEmptyLine", raw, err)
		}
		if line != nil {
			t.Fatalf("Measure(%q) must not return a line", raw)
		}
	}
}

func TestMeasureUnknownGlyph(t *testing.T) {
	m := Measurer{Glyphs: stubGlyphs{'A': 1, ' ': 1}}
	_, err := m.Measure("AA  A?")
	if !errors.Is(err, ErrUnknownGlyph) {
		t.Fatalf("expected ErrUnknownGlyph, got %v", err)
	}
	var ge *GlyphError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GlyphError, got %T", err)
	}
	if ge.Rune != '?' || ge.Part != 1 || ge.Column != 1 {
		t.Fatalf("unexpected glyph error position: %+v", ge)
	}
}

func TestMeasureWithoutGlyphSource(t *testing.T) {
	if _, err := (Measurer{}).Measure("A"); err == nil {
		t.Fatalf("expected error without glyph source")
	}
}

func TestParseSeparator(t *testing.T) {
	if s, err := ParseSeparator("unit"); err != nil || s != SeparatorUnit {
		t.Fatalf("ParseSeparator(unit) = %v, %v", s, err)
	}
	if s, err := ParseSeparator(""); err != nil || s != SeparatorSpaces {
		t.Fatalf("ParseSeparator(\"\") = %v, %v", s, err)
	}
	if _, err := ParseSeparator("tabs"); err == nil {
		t.Fatalf("expected error for unknown separator")
	}
}
