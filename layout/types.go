package layout

// 该文件定义单行排版的数据模型，供测量、缩放、galley 生成与调试 JSON 共用。
// 所有长度单位均为毫米（mm）。

// Point 是一个二维坐标点。字形空间以字形基线左端为原点，y 轴向上。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke 是一条连续的折线，雕刻时刀具在其首点下刀、沿各点移动、末点抬刀。
type Stroke []Point

// Character 描述字形查找得到的单个字符：设计尺寸下的字宽与笔画。
// UnitWidth 与缩放无关，缩放只在 Scale/Build 阶段施加。
type Character struct {
	Key       rune     `json:"key"`
	UnitWidth float64  `json:"unitWidth"`
	Strokes   []Stroke `json:"strokes"`
}

// Part 是一栏文本对应的字符序列。
type Part []Character

// Width 返回该栏未缩放的字宽之和。
func (p Part) Width() float64 {
	var w float64
	for _, c := range p {
		w += c.UnitWidth
	}
	return w
}

// Line 是测量后的一行：一栏，或左右两栏加栏间距标记。
type Line struct {
	Text   string `json:"text"`
	Parts  []Part `json:"parts"`
	HasGap bool   `json:"hasGap"`
}

// TotalCharWidth 返回所有栏的字宽之和（不含栏间距）。
func (l *Line) TotalCharWidth() float64 {
	var w float64
	for _, p := range l.Parts {
		w += p.Width()
	}
	return w
}

// Scaling 保存一行的缩放结果，计算后不再修改。
type Scaling struct {
	Sx       float64 `json:"sx"`
	Sy       float64 `json:"sy"`
	GapWidth float64 `json:"gapWidth"`
	// Clamped 表示横向缩放被宽高比上限截断，剩余宽度并入 GapWidth。
	Clamped bool `json:"clamped,omitempty"`
}

// GalleyEntry 是一个已定位、已缩放的字符。Strokes 已处于标签坐标系，
// x 已包含 BaseX，y 相对基线。
type GalleyEntry struct {
	Key     rune     `json:"key"`
	BaseX   float64  `json:"baseX"`
	Advance float64  `json:"advance"`
	Strokes []Stroke `json:"strokes"`
}

// Galley 是一行按从左到右顺序排列的字符笔画集合。
type Galley struct {
	Entries []GalleyEntry `json:"entries"`
	// Extent 为最后一个字符之后的光标位置。
	Extent float64 `json:"extent"`
}

// TypesetLine 记录单行从测量到 galley 的全部中间结果。
type TypesetLine struct {
	Line    *Line   `json:"line"`
	Scaling Scaling `json:"scaling"`
	Galley  Galley  `json:"galley"`
}

// Label 是一个标签的全部物理行，坐标以标签左下角为原点。
type Label struct {
	Name   string       `json:"name"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Lines  []PlacedLine `json:"lines"`
}

// PlacedLine 是放置到标签上的一行；Index 从上往下计数，从 0 开始。
type PlacedLine struct {
	Index    int     `json:"index"`
	Text     string  `json:"text"`
	Baseline float64 `json:"baseline"`
	Scaling  Scaling `json:"scaling"`
	Galley   Galley  `json:"galley"`
}
