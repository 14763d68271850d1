package canvasrenderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/engraver/layout"
	"github.com/ByLCY/engraver/renderer"
)

// Format selects the output document type.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "pdf" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("不支持的预览格式 %q", s)
}

const outlineWidth = 0.1

// Options configures the preview renderer. Lengths are millimeters.
type Options struct {
	Format      Format
	StrokeWidth float64 // engraving tool width
	Margin      float64
	Outline     bool // draw the label border
}

// DefaultOptions returns a PDF preview with a 0.3mm tool and the label border.
func DefaultOptions() Options {
	return Options{Format: FormatPDF, StrokeWidth: 0.3, Margin: 1, Outline: true}
}

// Renderer draws engraving previews via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a preview renderer. Zero-valued options fall back to
// the defaults.
func NewRenderer(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = def.StrokeWidth
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	return &Renderer{opts: opts}
}

// Render renders a single label into a PDF or SVG document.
func (r *Renderer) Render(label *layout.Label) ([]byte, error) {
	if label == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	return r.RenderPages([]*layout.Label{label})
}

// RenderPages renders labels one per page. SVG has no pages, so only a
// single label is accepted for that format.
func (r *Renderer) RenderPages(labels []*layout.Label) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("缺少可渲染的标签")
	}
	for i, l := range labels {
		if l == nil {
			return nil, fmt.Errorf("第 %d 个标签为空", i+1)
		}
	}

	var buf bytes.Buffer
	switch r.opts.Format {
	case FormatSVG:
		if len(labels) > 1 {
			return nil, fmt.Errorf("SVG 只能包含一个标签，收到 %d 个", len(labels))
		}
		w, h := r.pageSize(labels[0])
		writer := svg.New(&buf, w, h, nil)
		r.drawLabel(labels[0]).RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case FormatPDF:
		if err := r.writePDF(&buf, labels); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("不支持的预览格式 %q", r.opts.Format)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) writePDF(w io.Writer, labels []*layout.Label) error {
	width, height := r.pageSize(labels[0])
	writer := pdf.New(w, width, height, nil)
	writer.SetInfo(labels[0].Name, "", "", "", "engraver")
	for i, label := range labels {
		if i > 0 {
			writer.NewPage(r.pageSize(label))
		}
		r.drawLabel(label).RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

func (r *Renderer) pageSize(label *layout.Label) (float64, float64) {
	return label.Width + 2*r.opts.Margin, label.Height + 2*r.opts.Margin
}

func (r *Renderer) drawLabel(label *layout.Label) *canvas.Canvas {
	w, h := r.pageSize(label)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianI) // 与排版一致：原点在左下角，y 向上
	ctx.SetFillColor(canvas.Transparent)

	m := r.opts.Margin
	if r.opts.Outline {
		ctx.SetStrokeColor(canvas.Hex("#9a9a9a"))
		ctx.SetStrokeWidth(outlineWidth)
		ctx.DrawPath(m, m, canvas.Rectangle(label.Width, label.Height))
	}

	ctx.SetStrokeColor(canvas.Black)
	ctx.SetStrokeWidth(r.opts.StrokeWidth)
	ctx.SetStrokeCapper(canvas.RoundCap)
	ctx.SetStrokeJoiner(canvas.RoundJoin)
	var dots []layout.Point
	for _, line := range label.Lines {
		for _, entry := range line.Galley.Entries {
			for _, st := range entry.Strokes {
				switch len(st) {
				case 0:
				case 1:
					dots = append(dots, layout.Point{X: m + st[0].X, Y: m + line.Baseline + st[0].Y})
				default:
					ctx.DrawPath(m, m+line.Baseline, strokePath(st))
				}
			}
		}
	}

	// 单点笔画是原地下刀，画成刀具直径大小的实心圆点。
	if len(dots) > 0 {
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.SetFillColor(canvas.Black)
		for _, pt := range dots {
			ctx.DrawPath(pt.X, pt.Y, dot(r.opts.StrokeWidth))
		}
	}
	return c
}

// strokePath converts a polyline of at least two points into a canvas path.
func strokePath(st layout.Stroke) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(st[0].X, st[0].Y)
	for _, pt := range st[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	return p
}

// dot is a disc of the tool diameter centred on the origin.
func dot(diameter float64) *canvas.Path {
	return canvas.Circle(diameter / 2)
}
