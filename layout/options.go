package layout

import (
	"fmt"
	"math"
)

// GlyphSource 负责把字符映射为设计尺寸（mm）下的字宽与笔画。
// 实现必须是纯查找：同一字符总是返回相同结果，且调用方不会修改返回的笔画。
type GlyphSource interface {
	Lookup(r rune) (Character, error)
}

// Constraints 描述标签的物理约束，以显式参数传入而非全局常量。
type Constraints struct {
	AvailableWidth   float64 `json:"availableWidth"`
	AvailableHeight  float64 `json:"availableHeight"`
	FontXHeight      float64 `json:"fontXHeight"`
	NominalGap       float64 `json:"nominalGap"`
	InterLineSpacing float64 `json:"interLineSpacing"`

	// EnforceAspectGuard 打开宽高比保护：过窄报错，过宽截断并加宽栏间距。
	EnforceAspectGuard bool    `json:"enforceAspectGuard"`
	MinAspect          float64 `json:"minAspect"`
	MaxAspect          float64 `json:"maxAspect"`
}

// DefaultConstraints 返回 22.5mm x 6.5mm 标签的默认约束，宽高比保护默认关闭。
func DefaultConstraints() Constraints {
	return Constraints{
		AvailableWidth:   22.5,
		AvailableHeight:  6.5,
		FontXHeight:      2.8,
		NominalGap:       2.0,
		InterLineSpacing: 0.5,
		MinAspect:        0.85,
		MaxAspect:        1.15,
	}
}

// VerticalScale 返回纵向缩放系数，只取决于约束，与文本无关。
func (c Constraints) VerticalScale() float64 {
	return c.AvailableHeight / c.FontXHeight
}

// Validate 检查约束是否可用于排版。
func (c Constraints) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"availableWidth", c.AvailableWidth},
		{"availableHeight", c.AvailableHeight},
		{"fontXHeight", c.FontXHeight},
	} {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("layout: 约束 %s 必须为正数，当前为 %g", f.name, f.value)
		}
	}
	if c.NominalGap < 0 || c.NominalGap >= c.AvailableWidth {
		return fmt.Errorf("layout: 栏间距 %gmm 必须在 [0, %g) 范围内", c.NominalGap, c.AvailableWidth)
	}
	if c.InterLineSpacing < 0 {
		return fmt.Errorf("layout: 行间距不能为负数：%g", c.InterLineSpacing)
	}
	if c.EnforceAspectGuard && !(c.MinAspect > 0 && c.MinAspect <= c.MaxAspect) {
		return fmt.Errorf("layout: 宽高比范围无效：[%g, %g]", c.MinAspect, c.MaxAspect)
	}
	return nil
}
