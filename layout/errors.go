package layout

import (
	"errors"
	"fmt"
)

// 以下错误均只作用于单行，调用方用 errors.Is 区分种类。
var (
	// ErrEmptyLine 表示该行没有任何字符；是否输出空行由调用方决定。
	ErrEmptyLine = errors.New("layout: 空行，没有可排版的字符")
	// ErrDegenerateScale 表示字宽之和不为正，无法计算缩放。
	ErrDegenerateScale = errors.New("layout: 字宽之和必须为正数")
	// ErrAspectRatio 表示开启宽高比保护时字形会被压得过窄。
	ErrAspectRatio = errors.New("layout: 宽高比超出允许范围")
	// ErrAmbiguousSeparator 表示无法唯一确定栏分隔符。
	ErrAmbiguousSeparator = errors.New("layout: 栏分隔符有歧义")
	// ErrUnknownGlyph 表示字形源中没有该字符。
	ErrUnknownGlyph = errors.New("layout: 字形不存在")
)

// GlyphError 记录缺失字形的字符及其位置：Part 为栏序号，Column 为栏内 rune 序号，均从 0 开始。
type GlyphError struct {
	Rune   rune
	Part   int
	Column int
	Err    error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("第 %d 栏第 %d 个字符 %q: %v", e.Part+1, e.Column+1, e.Rune, e.Err)
}

func (e *GlyphError) Unwrap() error { return e.Err }

// LineError 为标签中某一物理行的错误附加行号（从 1 开始）。
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("第 %d 行 %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
