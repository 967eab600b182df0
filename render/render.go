package render

import "github.com/ByLCY/vellum/textfit"

// Card 是一张卡完成文本适配后的图层集合，按绘制顺序排列。
type Card struct {
	Name     string
	Template string
	Layers   []textfit.Layer
}

// Renderer 将适配完成的卡面输出为最终文件，例如 PDF 校样。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(cards []*Card) ([]byte, error)
}
