package renderer

import "github.com/ByLCY/engraver/layout"

// Renderer 将排好的标签输出为最终文件，例如 G-code、PDF 或 SVG。
// Render 返回生成的字节数据以及可能的错误。
type Renderer interface {
	Render(label *layout.Label) ([]byte, error)
}
