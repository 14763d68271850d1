package layout

// Build 按从左到右的顺序放置字符，得到一行的 galley。
// 笔画点 (px, py) 变换为 (x + px*sx, py*sy)；字形源的笔画只读，输出为新副本。
func Build(line *Line, s Scaling) Galley {
	var g Galley
	if line == nil {
		return g
	}
	n := 0
	for _, p := range line.Parts {
		n += len(p)
	}
	g.Entries = make([]GalleyEntry, 0, n)

	x := 0.0
	for i, part := range line.Parts {
		for _, c := range part {
			advance := c.UnitWidth * s.Sx
			g.Entries = append(g.Entries, GalleyEntry{
				Key:     c.Key,
				BaseX:   x,
				Advance: advance,
				Strokes: transformStrokes(c.Strokes, x, s.Sx, s.Sy),
			})
			x += advance
		}
		if i < len(line.Parts)-1 && line.HasGap {
			x += s.GapWidth
		}
	}
	g.Extent = x
	return g
}

func transformStrokes(strokes []Stroke, x, sx, sy float64) []Stroke {
	if len(strokes) == 0 {
		return nil
	}
	out := make([]Stroke, len(strokes))
	for i, st := range strokes {
		scaled := make(Stroke, len(st))
		for j, pt := range st {
			scaled[j] = Point{X: x + pt.X*sx, Y: pt.Y * sy}
		}
		out[i] = scaled
	}
	return out
}
