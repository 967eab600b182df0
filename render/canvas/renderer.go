// Package canvasrender 基于 github.com/tdewolff/canvas 实现文本测量
// 与 PDF 校样输出。图层坐标按 3288x4488 的像素画布标定，输出时
// 统一缩放到标准卡面尺寸。
package canvasrender

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/vellum/config"
	"github.com/ByLCY/vellum/render"
	"github.com/ByLCY/vellum/textfit"
)

const (
	canvasWidthPx  = 3288.0
	canvasHeightPx = 4488.0
	cardWidthMm    = 63.5
	cardHeightMm   = 88.9

	// 像素到毫米的缩放系数与毫米到点的换算。
	pxToMm = cardWidthMm / canvasWidthPx
	mmToPt = 72.0 / 25.4
)

// Renderer 持有字体资源并负责测量与绘制。
type Renderer struct {
	fontBlobs map[string][]byte

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
	firstFamily  string
}

var _ render.Renderer = (*Renderer)(nil)

// Options 配置渲染器的字体资源，键为字体族名称。
type Options struct {
	Fonts map[string]Resource
}

// Resource 可以按字节或路径给出。
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer 创建渲染器并载入字体资源。路径读取失败的字体在
// 实际使用时报错。
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path)
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Render 把每张卡输出为一页 PDF 校样：参考框画为浅色轮廓，
// 文本图层按其样式段绘制。
func (r *Renderer) Render(cards []*render.Card) ([]byte, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("没有可渲染的卡面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, cardWidthMm, cardHeightMm, nil)
	for i, card := range cards {
		if i > 0 {
			writer.NewPage(cardWidthMm, cardHeightMm)
		}
		c := canvas.New(cardWidthMm, cardHeightMm)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 与图层坐标一致，左上角为原点

		for _, l := range card.Layers {
			cl, ok := l.(*Layer)
			if !ok || !cl.Visible() {
				continue
			}
			if err := r.drawLayer(ctx, cl); err != nil {
				return nil, fmt.Errorf("渲染卡面 %s 失败: %w", card.Name, err)
			}
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawLayer(ctx *canvas.Context, l *Layer) error {
	if l.fixed {
		// 参考框只画轮廓，便于核对文本是否落在区域内。
		b := l.Bounds()
		ctx.SetFillColor(color.RGBA{})
		ctx.SetStrokeColor(canvas.Lightgray)
		ctx.SetStrokeWidth(0.2)
		ctx.DrawPath(b.Left*pxToMm, b.Top*pxToMm, canvas.Rectangle(b.Width()*pxToMm, b.Height()*pxToMm))
		return nil
	}

	lines, err := l.layoutLines()
	if err != nil {
		return err
	}

	cursorY := float64(l.y) * pxToMm
	for _, line := range lines {
		x := float64(l.x)
		if l.boxW > 0 {
			switch l.justify {
			case textfit.JustifyCenter:
				x += (l.boxW - line.width) / 2
			case textfit.JustifyRight:
				x += l.boxW - line.width
			}
		}

		penX := x * pxToMm
		for _, seg := range line.segs {
			face, err := r.fontFace(seg.span.Family, l.size*pxToMm*mmToPt, seg.span.Colour)
			if err != nil {
				return err
			}
			baseline := cursorY + face.Metrics().Ascent
			ctx.DrawText(penX, baseline, canvas.NewTextLine(face, seg.text, canvas.Left))
			penX += face.TextWidth(seg.text)
		}
		cursorY += (line.height + l.lineGap) * pxToMm
	}
	return nil
}

// fontFace 按字体族名称与字号（pt）创建字体面。族未载入时回落到
// 第一个可用的族；一个都没有则报错。
func (r *Renderer) fontFace(family string, sizePt float64, col config.Color) (*canvas.FontFace, error) {
	fam, err := r.ensureFontFamily(family)
	if err != nil {
		return nil, err
	}
	rgba := canvas.RGBA(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, 1.0)
	return fam.Face(sizePt, rgba, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if fam, ok := r.fontFamilies[name]; ok {
		return fam, nil
	}

	data, ok := r.fontBlobs[name]
	if !ok {
		if r.firstFamily != "" {
			return r.fontFamilies[r.firstFamily], nil
		}
		for alt, blob := range r.fontBlobs {
			data, name, ok = blob, alt, true
			break
		}
		if !ok {
			return nil, fmt.Errorf("字体 %s 未载入且没有可用的回落字体", name)
		}
	}

	fam := canvas.NewFontFamily(name)
	if err := fam.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("载入字体 %s 失败: %w", name, err)
	}
	r.fontFamilies[name] = fam
	if r.firstFamily == "" {
		r.firstFamily = name
	}
	return fam, nil
}
