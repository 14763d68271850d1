package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ByLCY/engraver/fonts"
	"github.com/ByLCY/engraver/layout"
	"github.com/ByLCY/engraver/renderer/gcode"
)

func main() {
	def := layout.DefaultConstraints()
	gdef := gcode.DefaultOptions()
	width := lengthFlag(def.AvailableWidth)
	height := lengthFlag(def.AvailableHeight)
	xHeight := lengthFlag(def.FontXHeight)
	gap := lengthFlag(def.NominalGap)
	spacing := lengthFlag(def.InterLineSpacing)
	depth := lengthFlag(-gdef.ZEngrave)
	flag.Var(&width, "width", "标签可用宽度（默认 mm，可带单位 mm/cm/in/pt）")
	flag.Var(&height, "height", "每行可用高度")
	flag.Var(&xHeight, "x-height", "字体名义 x 高度")
	flag.Var(&gap, "gap", "两栏之间的名义间距")
	flag.Var(&spacing, "spacing", "行间距")
	flag.Var(&depth, "depth", "雕刻深度")

	cfg := config{}
	flag.StringVar(&cfg.Input, "in", "examples/labels.txt", "记录文件路径，- 表示标准输入")
	flag.StringVar(&cfg.OutDir, "out", "output", "输出目录")
	flag.StringVar(&cfg.Font, "font", fonts.Default, "字体：embed:<名称>、.chr 路径、.ttf/.otf 路径或 builtin:goregular")
	flag.StringVar(&cfg.Formats, "format", "gcode", "输出格式，逗号分隔：gcode,pdf,svg")
	flag.StringVar(&cfg.Separator, "separator", "spaces", "分栏符：spaces（两个以上空格）或 unit（U+001F）")
	flag.StringVar(&cfg.Delim, "delim", ";", "记录字段分隔符")
	flag.StringVar(&cfg.NameTemplate, "name", "${id}", "输出文件名模板")
	flag.StringVar(&cfg.DebugDir, "debug", "", "排版调试 JSON 输出目录")
	flag.StringVar(&cfg.Proof, "proof", "", "将所有标签汇总输出到一个 PDF 校样文件")
	flag.BoolVar(&cfg.Guard, "guard", false, "启用宽高比保护")
	flag.IntVar(&cfg.Jobs, "jobs", 0, "并发处理的记录数，0 表示 CPU 数")
	flag.IntVar(&cfg.CoordSystem, "coord", gdef.CoordSystem, "G-code 工件坐标系（54-59）")
	flag.Float64Var(&cfg.Feed, "feed", gdef.FeedEngrave, "雕刻进给速度")
	flag.Float64Var(&cfg.Spindle, "spindle", gdef.SpindleSpeed, "主轴转速")
	watch := flag.Bool("watch", false, "监视输入文件，变化时重新生成")
	flag.Parse()

	cfg.Constraints = def
	cfg.Constraints.AvailableWidth = width.ToMM()
	cfg.Constraints.AvailableHeight = height.ToMM()
	cfg.Constraints.FontXHeight = xHeight.ToMM()
	cfg.Constraints.NominalGap = gap.ToMM()
	cfg.Constraints.InterLineSpacing = spacing.ToMM()
	cfg.Constraints.EnforceAspectGuard = cfg.Guard
	cfg.Depth = depth.ToMM()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job, err := newJob(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	if *watch {
		if err := watchAndRun(ctx, job); err != nil {
			log.Fatalf("监视输入失败: %v", err)
		}
		return
	}

	sum, err := job.run(ctx)
	if err != nil {
		log.Fatalf("生成标签失败: %v", err)
	}
	fmt.Println(sum)
	if sum.Failed > 0 {
		os.Exit(1)
	}
}
