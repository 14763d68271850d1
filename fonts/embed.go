package fonts

import (
	"embed"
	"fmt"
	"strings"
)

// Default 是内置的单线雕刻字体。
const Default = "embed:basic.chr"

//go:embed *.chr
var fontFS embed.FS

// Load 返回内置字体的字节数据，name 可写为 "embed:basic.chr" 或直接 "basic.chr"。
func Load(name string) ([]byte, error) {
	target := strings.TrimPrefix(name, "embed:")
	data, err := fontFS.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("读取内置字体 %s 失败: %w", target, err)
	}
	return data, nil
}
