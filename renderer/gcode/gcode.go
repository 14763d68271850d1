// Package gcode writes labels as GRBL-flavoured G-code for a spindle
// engraver. Coordinates are millimeters relative to the label's bottom-left
// corner in the selected work coordinate system.
package gcode

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/ByLCY/engraver/layout"
	"github.com/ByLCY/engraver/renderer"
)

// Options configures the machine moves.
type Options struct {
	CoordSystem  int     // G54..G59
	ZMove        float64 // safe height for travel between labels
	ZClear       float64 // clearance between strokes
	ZEngrave     float64 // engraving depth (negative)
	FeedRapid    float64
	FeedEngrave  float64
	SpindleSpeed float64
}

// DefaultOptions returns the settings used for 0.3mm engraving on plastic labels.
func DefaultOptions() Options {
	return Options{
		CoordSystem:  54,
		ZMove:        5.0,
		ZClear:       0.25,
		ZEngrave:     -0.075,
		FeedRapid:    100,
		FeedEngrave:  50,
		SpindleSpeed: 500,
	}
}

// Renderer renders labels into G-code programs.
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a G-code renderer.
func NewRenderer(opts Options) *Renderer { return &Renderer{opts: opts} }

// Render implements renderer.Renderer.
func (r *Renderer) Render(label *layout.Label) ([]byte, error) {
	if label == nil {
		return nil, fmt.Errorf("gcode: 标签为空")
	}
	var buf bytes.Buffer
	if err := r.Write(&buf, label); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the program for label to w.
func (r *Renderer) Write(w io.Writer, label *layout.Label) error {
	p := &program{w: w, opts: r.opts, clear: true, feed: -1}
	if label.Name != "" {
		p.emit("(" + comment(label.Name) + ")")
	}
	p.start()
	for _, line := range label.Lines {
		for _, entry := range line.Galley.Entries {
			for _, st := range entry.Strokes {
				p.polyline(st, line.Baseline)
			}
		}
	}
	p.stop()
	return p.err
}

// program tracks tool state so redundant Z moves and feed words are omitted.
type program struct {
	w    io.Writer
	opts Options
	err  error

	clear  bool
	feed   float64
	last   layout.Point
	inPath bool
}

func (p *program) emit(line string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, line+"\n")
}

func (p *program) f(feed float64) string {
	if feed != p.feed {
		p.feed = feed
		return " F" + num(feed)
	}
	return ""
}

func (p *program) start() {
	p.emit(fmt.Sprintf("G0 G%d", p.opts.CoordSystem))
	p.away()
	p.emit("G0 X0 Y0" + p.f(p.opts.FeedRapid))
	p.emit("M3 S" + num(p.opts.SpindleSpeed))
}

func (p *program) stop() {
	p.away()
	p.emit("M5")
}

func (p *program) away() {
	p.emit("G0 Z" + num(p.opts.ZMove) + p.f(p.opts.FeedRapid))
	p.clear = true
	p.inPath = false
}

func (p *program) up() {
	if !p.clear {
		p.emit("G0 Z" + num(p.opts.ZClear) + p.f(p.opts.FeedRapid))
		p.clear = true
	}
}

func (p *program) down() {
	if p.clear {
		p.emit("G1 Z" + num(p.opts.ZEngrave) + p.f(p.opts.FeedEngrave))
		p.clear = false
	}
}

func (p *program) rapid(pt layout.Point) {
	p.up()
	p.emit("G0 X" + num(pt.X) + " Y" + num(pt.Y))
	p.last, p.inPath = pt, true
}

func (p *program) engrave(pt layout.Point) {
	p.down()
	p.emit("G1 X" + num(pt.X) + " Y" + num(pt.Y) + p.f(p.opts.FeedEngrave))
	p.last = pt
}

// polyline engraves one stroke shifted up to the line's baseline. A stroke
// that starts where the previous one ended continues without lifting. A
// single point is a plunge in place.
func (p *program) polyline(st layout.Stroke, baseline float64) {
	if len(st) == 0 {
		return
	}
	first := round(layout.Point{X: st[0].X, Y: st[0].Y + baseline})
	if !p.inPath || p.last != first {
		p.rapid(first)
	}
	if len(st) == 1 {
		p.down()
		return
	}
	for _, pt := range st[1:] {
		p.engrave(round(layout.Point{X: pt.X, Y: pt.Y + baseline}))
	}
}

func round(pt layout.Point) layout.Point {
	return layout.Point{X: round3(pt.X), Y: round3(pt.Y)}
}

func round3(v float64) float64 {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return 0 // no "-0"
	}
	return v
}

func num(v float64) string {
	return strconv.FormatFloat(round3(v), 'f', -1, 64)
}

// comment strips characters that would end a G-code comment early.
func comment(s string) string {
	out := []rune{}
	for _, r := range s {
		if r == '(' || r == ')' || r == '\n' || r == '\r' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
