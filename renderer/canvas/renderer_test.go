package canvasrenderer

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/engraver/layout"
)

func sampleLabel(name string) *layout.Label {
	return &layout.Label{
		Name:   name,
		Width:  22.5,
		Height: 7,
		Lines: []layout.PlacedLine{{
			Baseline: 0.5,
			Galley: layout.Galley{Entries: []layout.GalleyEntry{
				{Key: 'A', Strokes: []layout.Stroke{{{X: 0, Y: 0}, {X: 2, Y: 6}, {X: 4, Y: 0}}}},
				{Key: '.', Strokes: []layout.Stroke{{{X: 5, Y: 0}}}},
			}},
		}},
	}
}

func TestRenderPDF(t *testing.T) {
	out, err := NewRenderer(DefaultOptions()).Render(sampleLabel("R1"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestRenderSVG(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatSVG
	out, err := NewRenderer(opts).Render(sampleLabel("R1"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<svg") || !strings.Contains(string(out), "<path") {
		t.Fatalf("output is not an SVG drawing:\n%s", out)
	}
}

func TestRenderPagesPDF(t *testing.T) {
	r := NewRenderer(DefaultOptions())
	one, err := r.RenderPages([]*layout.Label{sampleLabel("a")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	three, err := r.RenderPages([]*layout.Label{sampleLabel("a"), sampleLabel("b"), sampleLabel("c")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(three) <= len(one) {
		t.Fatalf("multi-page PDF (%d bytes) should be larger than single page (%d bytes)", len(three), len(one))
	}
}

func TestRenderPagesErrors(t *testing.T) {
	r := NewRenderer(DefaultOptions())
	if _, err := r.RenderPages(nil); err == nil {
		t.Fatalf("expected error for no labels")
	}
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil label")
	}
	svgOpts := DefaultOptions()
	svgOpts.Format = FormatSVG
	if _, err := NewRenderer(svgOpts).RenderPages([]*layout.Label{sampleLabel("a"), sampleLabel("b")}); err == nil {
		t.Fatalf("SVG must reject multiple labels")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"pdf": FormatPDF, " SVG ": FormatSVG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("png"); err == nil {
		t.Fatalf("expected error for png")
	}
}

func TestStrokePath(t *testing.T) {
	p := strokePath(layout.Stroke{{X: 0, Y: 0}, {X: 2, Y: 3}})
	if p.Empty() || math.Abs(p.Length()-math.Sqrt(13)) > 1e-9 {
		t.Fatalf("unexpected path %v", p)
	}
}

func TestSinglePointStrokeIsDrawn(t *testing.T) {
	if dot(0.3).Empty() {
		t.Fatalf("dot must not be empty")
	}
	label := &layout.Label{Name: "dot", Width: 10, Height: 7, Lines: []layout.PlacedLine{{
		Baseline: 0.5,
		Galley: layout.Galley{Entries: []layout.GalleyEntry{
			{Key: '.', Strokes: []layout.Stroke{{{X: 1, Y: 1}}}},
		}},
	}}}
	opts := DefaultOptions()
	opts.Format = FormatSVG
	opts.Outline = false
	out, err := NewRenderer(opts).Render(label)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<path") {
		t.Fatalf("single point produced no drawing:\n%s", out)
	}
}
