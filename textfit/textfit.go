package textfit

import (
	"math"

	"github.com/ByLCY/vellum/markup"
)

// 该包实现文本区域的几何适配：按参考图层收缩字号、避让右侧图层、
// 垂直居中与攻防框避让。所有计算只依赖 Layer 接口回报的包围盒，
// 不关心具体渲染后端。

const (
	// 粗调步长先快速逼近，细调步长保证像素级贴合。
	coarseStep = 4.0
	fineStep   = 0.25
	// 右侧避让的字号步长与保留间隙（像素）。
	overlapStep = 0.2
	rightGap    = 24.0
	// 参考高度预留的上下内边距（像素）。
	referenceMargin = 64.0
	// 后端测量异常时防止缩放循环失控。
	maxFitIterations = 10000
)

// Box 是画布坐标系下的包围盒，向下为 Y 正方向。
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

func (b Box) Width() float64  { return b.Right - b.Left }
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Intersect 返回两个包围盒的交叠区域；无交叠时 ok 为 false。
func (b Box) Intersect(o Box) (Box, bool) {
	out := Box{
		Left:   math.Max(b.Left, o.Left),
		Top:    math.Max(b.Top, o.Top),
		Right:  math.Min(b.Right, o.Right),
		Bottom: math.Min(b.Bottom, o.Bottom),
	}
	if out.Right <= out.Left || out.Bottom <= out.Top {
		return Box{}, false
	}
	return out, true
}

// Layer 是可适配的文本图层。实现方在 SetText/SetMarkup/SetFontSize/
// Resize 之后必须让 Bounds 反映新的排版结果。
type Layer interface {
	Text() string
	SetText(string)
	Markup() []markup.Span
	SetMarkup([]markup.Span)

	// Bounds 是图层自身的包围盒；InkBounds 是实际着墨范围，
	// 后端无法提供时返回 ok=false，调用方退回 Bounds。
	Bounds() Box
	InkBounds() (Box, bool)

	FontSize() (float64, Unit)
	SetFontSize(float64, Unit)
	Offsets() (x, y int)
	SetOffsets(x, y int)
	Visible() bool
	SetVisible(bool)

	// Resize 把图层改为固定宽度的文本框；height 为 0 时高度随内容。
	Resize(width, height float64)
}

// SpacingLayer 是支持行距、缩进与对齐的扩展图层，按需类型断言。
type SpacingLayer interface {
	SetLineSpacing(lead float64)
	SetIndent(indent float64)
	SetJustification(j Justification)
}

// Justification 是文本水平对齐方式。
type Justification int

const (
	JustifyNone Justification = iota
	JustifyLeft
	JustifyCenter
	JustifyRight
)

// ScaleTextToFitReference 逐步缩小字号直到图层高度不超过参考高度。
// 先按粗步长快速收敛，越过目标后回退一步，再按细步长贴合。
// 返回是否发生过缩放。
func ScaleTextToFitReference(layer, reference Layer) bool {
	fontSize, unit := layer.FontSize()
	refHeight := reference.Bounds().Height() - referenceMargin
	height := layer.Bounds().Height()
	scaled := false

	for i := 0; refHeight < height && fontSize > coarseStep && i < maxFitIterations; i++ {
		scaled = true
		fontSize -= coarseStep
		layer.SetFontSize(fontSize, unit)
		height = layer.Bounds().Height()
	}

	if scaled && height < refHeight {
		fontSize += coarseStep
		layer.SetFontSize(fontSize, unit)
		height = layer.Bounds().Height()
	}

	for i := 0; refHeight < height && fontSize > 0 && i < maxFitIterations; i++ {
		scaled = true
		fontSize -= fineStep
		if fontSize <= 0 {
			break
		}
		layer.SetFontSize(fontSize, unit)
		height = layer.Bounds().Height()
	}
	return scaled
}

// ScaleTextRightOverlap 在图层右缘侵入参考图层左缘时缩小字号，
// 直到两者之间留出固定间隙。参考图层整体在左侧时不处理。
func ScaleTextRightOverlap(layer, reference Layer) {
	refLeft := reference.Bounds().Left
	bounds := layer.Bounds()
	if refLeft < bounds.Left {
		return
	}

	fontSize, unit := layer.FontSize()
	for i := 0; bounds.Right > refLeft-rightGap && fontSize > 0 && i < maxFitIterations; i++ {
		fontSize -= overlapStep
		if fontSize <= 0 {
			break
		}
		layer.SetFontSize(fontSize, unit)
		bounds = layer.Bounds()
	}
}

// VerticallyAlignText 以着墨范围为准把图层垂直居中到参考图层内。
func VerticallyAlignText(layer, reference Layer) {
	ref := reference.Bounds()
	ink, ok := layer.InkBounds()
	if !ok {
		ink = layer.Bounds()
	}
	if ink.Height() <= 0 || ref.Height() <= 0 {
		return
	}

	desiredTop := ref.Top + (ref.Height()-ink.Height())/2
	delta := desiredTop - ink.Top
	x, y := layer.Offsets()
	layer.SetOffsets(x, y+int(math.Round(delta)))
}

// VerticallyNudgeCreatureText 在规则文本与攻防框交叠时把文本上移，
// 使其底部不低于攻防框上方参考线的底缘。
func VerticallyNudgeCreatureText(layer, ptReference, topReference Layer) {
	bounds := layer.Bounds()
	pt := ptReference.Bounds()
	if bounds.Right < pt.Left {
		return
	}

	overlap, ok := bounds.Intersect(pt)
	if !ok {
		return
	}

	delta := topReference.Bounds().Bottom - overlap.Bottom
	if delta < 0 {
		x, y := layer.Offsets()
		layer.SetOffsets(x, y+int(math.Round(delta)))
	}
}
