package layout

import (
	"fmt"
	"strings"
)

// UnitSeparator 是保留的栏分隔控制字符（U+001F）。
const UnitSeparator = '\x1f'

// Separator 选择栏分隔约定。两种约定等价，可互换使用。
type Separator int

const (
	// SeparatorSpaces 以两个及以上连续空格分栏，单个空格是正文内容。
	SeparatorSpaces Separator = iota
	// SeparatorUnit 以单个 U+001F 分栏，所有空格都是正文内容。
	SeparatorUnit
)

// Join 返回拼接左右两栏时使用的分隔文本。
func (s Separator) Join() string {
	if s == SeparatorUnit {
		return string(UnitSeparator)
	}
	return "  "
}

func (s Separator) String() string {
	switch s {
	case SeparatorSpaces:
		return "spaces"
	case SeparatorUnit:
		return "unit"
	default:
		return fmt.Sprintf("Separator(%d)", int(s))
	}
}

// ParseSeparator 解析 "spaces" / "unit"。
func ParseSeparator(v string) (Separator, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "spaces", "space":
		return SeparatorSpaces, nil
	case "unit", "us":
		return SeparatorUnit, nil
	default:
		return SeparatorSpaces, fmt.Errorf("layout: 未知的分栏方式 %q", v)
	}
}

// Columns 是分栏结果：SingleColumn 或 TwoColumn。
type Columns interface {
	texts() []string
}

// SingleColumn 表示整行只有一栏。
type SingleColumn struct {
	Text string
}

// TwoColumn 表示左栏左对齐、右栏右对齐的两栏。
type TwoColumn struct {
	Left  string
	Right string
}

func (c SingleColumn) texts() []string { return []string{c.Text} }
func (c TwoColumn) texts() []string    { return []string{c.Left, c.Right} }

// Tokenize 按分隔约定拆分原始行。分隔符只允许出现一次；
// 若分隔符一侧为空，则退化为另一侧的单栏。
func Tokenize(raw string, sep Separator) (Columns, error) {
	var start, end int
	var found bool
	var err error
	switch sep {
	case SeparatorSpaces:
		start, end, found, err = findSpaceRun(raw)
	case SeparatorUnit:
		start, end, found, err = findUnitSeparator(raw)
	default:
		return nil, fmt.Errorf("layout: 未知的分栏方式 %v", sep)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return SingleColumn{Text: raw}, nil
	}
	left, right := raw[:start], raw[end:]
	switch {
	case left == "":
		return SingleColumn{Text: right}, nil
	case right == "":
		return SingleColumn{Text: left}, nil
	}
	return TwoColumn{Left: left, Right: right}, nil
}

// findSpaceRun 返回唯一一段长度不小于 2 的空格串的字节区间。
func findSpaceRun(raw string) (int, int, bool, error) {
	if strings.ContainsRune(raw, UnitSeparator) {
		return 0, 0, false, fmt.Errorf("%w: 空格分栏模式下出现 U+001F", ErrAmbiguousSeparator)
	}
	start, end, runs := -1, -1, 0
	for i := 0; i < len(raw); {
		if raw[i] != ' ' {
			i++
			continue
		}
		j := i
		for j < len(raw) && raw[j] == ' ' {
			j++
		}
		if j-i > 1 {
			runs++
			if runs > 1 {
				return 0, 0, false, fmt.Errorf("%w: %q 中有多段连续空格", ErrAmbiguousSeparator, raw)
			}
			start, end = i, j
		}
		i = j
	}
	return start, end, runs == 1, nil
}

func findUnitSeparator(raw string) (int, int, bool, error) {
	switch strings.Count(raw, string(UnitSeparator)) {
	case 0:
		return 0, 0, false, nil
	case 1:
		i := strings.IndexRune(raw, UnitSeparator)
		return i, i + 1, true, nil
	default:
		return 0, 0, false, fmt.Errorf("%w: %q 中有多个 U+001F", ErrAmbiguousSeparator, raw)
	}
}

// Measurer 把原始行拆栏并查出每个字符的字宽。
type Measurer struct {
	Glyphs    GlyphSource
	Separator Separator
}

// Measure 返回测量后的行；没有任何字符时返回 ErrEmptyLine。
func (m Measurer) Measure(raw string) (*Line, error) {
	if m.Glyphs == nil {
		return nil, fmt.Errorf("layout: 缺少字形源 GlyphSource")
	}
	cols, err := Tokenize(raw, m.Separator)
	if err != nil {
		return nil, err
	}
	texts := cols.texts()
	line := &Line{Text: raw, Parts: make([]Part, 0, len(texts))}
	count := 0
	for pi, text := range texts {
		part := make(Part, 0, len(text))
		col := 0
		for _, r := range text {
			c, err := m.Glyphs.Lookup(r)
			if err != nil {
				return nil, &GlyphError{Rune: r, Part: pi, Column: col, Err: err}
			}
			c.Key = r
			part = append(part, c)
			col++
		}
		count += len(part)
		line.Parts = append(line.Parts, part)
	}
	if count == 0 {
		return nil, ErrEmptyLine
	}
	line.HasGap = len(line.Parts) == 2
	return line, nil
}
