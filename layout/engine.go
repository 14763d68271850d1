package layout

import (
	"errors"
	"fmt"
)

// Engine 串联 Measure → Scale → Build。Engine 不保存任何跨行状态，
// 只要 GlyphSource 是并发安全的，就可以在多个 goroutine 中同时使用。
type Engine struct {
	Glyphs      GlyphSource
	Separator   Separator
	Constraints Constraints
}

// NewEngine 使用默认约束与空格分栏创建 Engine。
func NewEngine(glyphs GlyphSource) *Engine {
	return &Engine{Glyphs: glyphs, Constraints: DefaultConstraints()}
}

// Typeset 排版单行文本。
func (e *Engine) Typeset(raw string) (*TypesetLine, error) {
	line, err := Measurer{Glyphs: e.Glyphs, Separator: e.Separator}.Measure(raw)
	if err != nil {
		return nil, err
	}
	s, err := Scale(line.TotalCharWidth(), line.HasGap, e.Constraints)
	if err != nil {
		return nil, err
	}
	return &TypesetLine{Line: line, Scaling: s, Galley: Build(line, s)}, nil
}

// Baseline 返回第 index 行（从上往下，从 0 开始）在 count 行标签中的基线高度。
// 最下面一行的基线留出 InterLineSpacing 给下行部件，往上每行增加一个行距加字高。
func (c Constraints) Baseline(index, count int) float64 {
	fromBottom := count - 1 - index
	return c.InterLineSpacing + float64(fromBottom)*(c.InterLineSpacing+c.AvailableHeight)
}

// LabelHeight 返回 count 行标签占用的总高度。
func (c Constraints) LabelHeight(count int) float64 {
	if count <= 0 {
		return 0
	}
	return c.Baseline(0, count) + c.AvailableHeight
}

// Compose 把若干物理行（从上往下）排到同一个标签上。
// 空行会被跳过但保留其位置；所有行都为空时返回 ErrEmptyLine。
// 其余错误以 *LineError 返回，行号从 1 开始。
func (e *Engine) Compose(name string, rawLines []string) (*Label, error) {
	if err := e.Constraints.Validate(); err != nil {
		return nil, err
	}
	label := &Label{
		Name:   name,
		Width:  e.Constraints.AvailableWidth,
		Height: e.Constraints.LabelHeight(len(rawLines)),
	}
	for i, raw := range rawLines {
		tl, err := e.Typeset(raw)
		if errors.Is(err, ErrEmptyLine) {
			continue
		}
		if err != nil {
			return nil, &LineError{Line: i + 1, Text: raw, Err: err}
		}
		label.Lines = append(label.Lines, PlacedLine{
			Index:    i,
			Text:     raw,
			Baseline: e.Constraints.Baseline(i, len(rawLines)),
			Scaling:  tl.Scaling,
			Galley:   tl.Galley,
		})
	}
	if len(label.Lines) == 0 {
		return nil, fmt.Errorf("标签 %s: %w", name, ErrEmptyLine)
	}
	return label, nil
}
