package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/engraver/batch"
	"github.com/ByLCY/engraver/chrfont"
	"github.com/ByLCY/engraver/fonts"
	"github.com/ByLCY/engraver/glyph"
	"github.com/ByLCY/engraver/layout"
	"github.com/ByLCY/engraver/outline"
	"github.com/ByLCY/engraver/record"
	"github.com/ByLCY/engraver/renderer"
	canvasrenderer "github.com/ByLCY/engraver/renderer/canvas"
	"github.com/ByLCY/engraver/renderer/gcode"
)

// config 汇总命令行参数。
type config struct {
	Input        string
	OutDir       string
	Font         string
	Formats      string
	Separator    string
	Delim        string
	NameTemplate string
	DebugDir     string
	Proof        string
	Guard        bool
	Jobs         int

	CoordSystem int
	Depth       float64
	Feed        float64
	Spindle     float64

	Constraints layout.Constraints
}

// output 是一种输出格式及其文件扩展名。
type output struct {
	ext string
	r   renderer.Renderer
}

// job 是解析好的一次运行：字体、排版引擎与输出格式在多次运行（-watch）之间复用。
type job struct {
	cfg     config
	delim   rune
	engine  *layout.Engine
	outputs []output
}

// summary 描述一次运行的结果。
type summary struct {
	Total, Written, Failed int
	OutDir                 string
}

func (s summary) String() string {
	return fmt.Sprintf("已生成 %d/%d 个标签，失败 %d 个，输出目录：%s", s.Written, s.Total, s.Failed, s.OutDir)
}

func newJob(cfg config) (*job, error) {
	if err := cfg.Constraints.Validate(); err != nil {
		return nil, err
	}
	sep, err := layout.ParseSeparator(cfg.Separator)
	if err != nil {
		return nil, err
	}
	delim, size := utf8.DecodeRuneInString(cfg.Delim)
	if size == 0 || size != len(cfg.Delim) || delim == utf8.RuneError {
		return nil, fmt.Errorf("字段分隔符必须是单个字符: %q", cfg.Delim)
	}
	outputs, err := parseOutputs(cfg)
	if err != nil {
		return nil, err
	}
	glyphs, err := loadGlyphs(cfg.Font, cfg.Constraints.FontXHeight)
	if err != nil {
		return nil, err
	}
	return &job{
		cfg:     cfg,
		delim:   delim,
		engine:  &layout.Engine{Glyphs: glyph.Fallback(glyphs), Separator: sep, Constraints: cfg.Constraints},
		outputs: outputs,
	}, nil
}

func parseOutputs(cfg config) ([]output, error) {
	var outs []output
	seen := map[string]bool{}
	for _, f := range strings.Split(cfg.Formats, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		switch f {
		case "gcode", "nc":
			opts := gcode.DefaultOptions()
			opts.CoordSystem = cfg.CoordSystem
			opts.ZEngrave = -cfg.Depth
			opts.FeedEngrave = cfg.Feed
			opts.SpindleSpeed = cfg.Spindle
			outs = append(outs, output{ext: ".nc", r: gcode.NewRenderer(opts)})
		default:
			format, err := canvasrenderer.ParseFormat(f)
			if err != nil {
				return nil, err
			}
			opts := canvasrenderer.DefaultOptions()
			opts.Format = format
			outs = append(outs, output{ext: "." + string(format), r: canvasrenderer.NewRenderer(opts)})
		}
	}
	if len(outs) == 0 && cfg.Proof == "" {
		return nil, fmt.Errorf("未指定输出格式")
	}
	return outs, nil
}

// loadGlyphs 根据 -font 参数选择字形来源，字形按 xHeight（mm）缩放。
func loadGlyphs(name string, xHeight float64) (layout.GlyphSource, error) {
	switch {
	case strings.HasPrefix(name, "embed:"):
		data, err := fonts.Load(name)
		if err != nil {
			return nil, err
		}
		font, err := chrfont.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("解析内置字体 %s 失败: %w", name, err)
		}
		return font.Face(xHeight), nil
	case name == "builtin:goregular" || name == "built-in:goregular":
		return outline.Goregular(outline.Options{XHeight: xHeight})
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("读取字体 %s 失败: %w", name, err)
		}
		face, err := outline.Parse(data, outline.Options{XHeight: xHeight})
		if err != nil {
			return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
		}
		return face, nil
	default:
		file, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("无法打开字体文件 %s: %w", name, err)
		}
		defer file.Close()
		font, err := chrfont.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
		}
		return font.Face(xHeight), nil
	}
}

func (j *job) readRecords() ([]record.Record, error) {
	var in io.Reader = os.Stdin
	if j.cfg.Input != "-" {
		file, err := os.Open(j.cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("无法打开记录文件 %s: %w", j.cfg.Input, err)
		}
		defer file.Close()
		in = file
	}
	recs, err := record.ReadAll(in, j.delim)
	if err != nil {
		return nil, fmt.Errorf("读取记录失败: %w", err)
	}
	return recs, nil
}

// run 串联读取、排版与输出。单条记录失败只记录日志，不影响其它记录。
func (j *job) run(ctx context.Context) (summary, error) {
	sum := summary{OutDir: j.cfg.OutDir}
	recs, err := j.readRecords()
	if err != nil {
		return sum, err
	}
	sum.Total = len(recs)

	names := uniqueNames(j.cfg.NameTemplate, recs)
	name := func(rec record.Record) string { return names[rec.Line] }
	results := batch.Run(ctx, recs, j.cfg.Jobs, batch.Engine(j.engine, name))

	if err := os.MkdirAll(j.cfg.OutDir, 0o755); err != nil {
		return sum, fmt.Errorf("创建输出目录失败: %w", err)
	}
	var proof []*layout.Label
	for _, res := range results {
		if res.Err == nil {
			res.Err = j.write(res.Label)
		}
		if res.Err != nil {
			sum.Failed++
			log.Printf("记录 %s（第 %d 行）失败: %v", res.Record.ID, res.Record.Line, res.Err)
			continue
		}
		sum.Written++
		proof = append(proof, res.Label)
	}

	if j.cfg.Proof != "" && len(proof) > 0 {
		if err := writeProof(j.cfg.Proof, proof); err != nil {
			return sum, err
		}
	}
	return sum, ctx.Err()
}

func (j *job) write(label *layout.Label) error {
	for _, out := range j.outputs {
		data, err := out.r.Render(label)
		if err != nil {
			return fmt.Errorf("渲染 %s 失败: %w", out.ext, err)
		}
		path := filepath.Join(j.cfg.OutDir, label.Name+out.ext)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("写入文件失败: %w", err)
		}
	}
	if j.cfg.DebugDir != "" {
		if err := layout.WriteDebugJSON(label, j.engine.Constraints, filepath.Join(j.cfg.DebugDir, label.Name+".json")); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	return nil
}

func writeProof(path string, labels []*layout.Label) error {
	data, err := canvasrenderer.NewRenderer(canvasrenderer.DefaultOptions()).RenderPages(labels)
	if err != nil {
		return fmt.Errorf("渲染校样失败: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建校样目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入校样失败: %w", err)
	}
	return nil
}

// uniqueNames 按源文件行号为每条记录分配输出名，重名时追加行号，仍冲突再追加序号。
func uniqueNames(template string, recs []record.Record) map[int]string {
	names := make(map[int]string, len(recs))
	used := map[string]bool{}
	for _, rec := range recs {
		n := record.Name(template, rec)
		if used[n] {
			base := n
			n = fmt.Sprintf("%s-%d", base, rec.Line)
			for i := 2; used[n]; i++ {
				n = fmt.Sprintf("%s-%d-%d", base, rec.Line, i)
			}
		}
		used[n] = true
		names[rec.Line] = n
	}
	return names
}
