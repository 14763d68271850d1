package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DebugDump 是调试 JSON 的顶层结构：先给出约束与逐行缩放摘要，再附完整标签几何。
type DebugDump struct {
	Constraints Constraints `json:"constraints"`
	Lines       []DebugLine `json:"lines"`
	Label       *Label      `json:"label"`
}

// DebugLine 汇总一行的缩放结果，Aspect 为 sx/sy。
type DebugLine struct {
	Index    int     `json:"index"`
	Text     string  `json:"text"`
	Baseline float64 `json:"baseline"`
	Sx       float64 `json:"sx"`
	Sy       float64 `json:"sy"`
	Aspect   float64 `json:"aspect"`
	Gap      float64 `json:"gap"`
	Extent   float64 `json:"extent"`
	Glyphs   int     `json:"glyphs"`
	Clamped  bool    `json:"clamped,omitempty"`
}

// NewDebugDump 从标签构建调试摘要。
func NewDebugDump(label *Label, c Constraints) DebugDump {
	d := DebugDump{Constraints: c, Label: label}
	for _, pl := range label.Lines {
		d.Lines = append(d.Lines, DebugLine{
			Index:    pl.Index,
			Text:     pl.Text,
			Baseline: pl.Baseline,
			Sx:       pl.Scaling.Sx,
			Sy:       pl.Scaling.Sy,
			Aspect:   pl.Scaling.Sx / pl.Scaling.Sy,
			Gap:      pl.Scaling.GapWidth,
			Extent:   pl.Galley.Extent,
			Glyphs:   len(pl.Galley.Entries),
			Clamped:  pl.Scaling.Clamped,
		})
	}
	return d
}

// WriteDebugJSON 将标签的排版摘要与几何写入 path，必要时创建目录；label 为 nil 时不做任何事。
func WriteDebugJSON(label *Label, c Constraints, path string) (err error) {
	if label == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDebugDump(label, c))
}
