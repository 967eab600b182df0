package canvasrender

import (
	"math"
	"strings"
	"unicode"

	"github.com/ByLCY/vellum/markup"
	"github.com/ByLCY/vellum/textfit"
)

// Layer 是画布上的一个图层：或者承载文本与样式段，或者作为
// 只提供包围盒的参考框。坐标与尺寸均为像素。
type Layer struct {
	r *Renderer

	name    string
	family  string
	size    float64
	unit    textfit.Unit
	x, y    int
	boxW    float64
	boxH    float64
	fixed   bool
	visible bool

	text    string
	spans   []markup.Span
	lineGap float64
	indent  float64
	justify textfit.Justification
}

var (
	_ textfit.Layer        = (*Layer)(nil)
	_ textfit.SpacingLayer = (*Layer)(nil)
)

// NewTextLayer 创建文本图层。box 给出初始位置与文本框尺寸，
// 宽度为 0 时行宽随内容。
func (r *Renderer) NewTextLayer(name, family string, size float64, box textfit.Box) *Layer {
	return &Layer{
		r:      r,
		name:   name,
		family: family,
		size:   size,
		unit:   textfit.UnitPX,
		x:      int(box.Left),
		y:      int(box.Top),
		boxW:   box.Width(),
		boxH:   box.Height(),
	}
}

// NewReferenceLayer 创建固定包围盒的参考框，不承载文本。
func (r *Renderer) NewReferenceLayer(name string, box textfit.Box) *Layer {
	l := r.NewTextLayer(name, "", 0, box)
	l.fixed = true
	l.visible = true
	return l
}

func (l *Layer) Name() string { return l.name }

func (l *Layer) Text() string { return l.text }

func (l *Layer) SetText(text string) {
	l.text = text
	l.spans = nil
}

func (l *Layer) Markup() []markup.Span { return l.spans }

func (l *Layer) SetMarkup(spans []markup.Span) { l.spans = spans }

func (l *Layer) FontSize() (float64, textfit.Unit) { return l.size, l.unit }

func (l *Layer) SetFontSize(size float64, unit textfit.Unit) {
	l.size = size
	l.unit = unit
}

func (l *Layer) Offsets() (int, int) { return l.x, l.y }

func (l *Layer) SetOffsets(x, y int) {
	l.x = x
	l.y = y
}

func (l *Layer) Visible() bool { return l.visible }

func (l *Layer) SetVisible(visible bool) { l.visible = visible }

func (l *Layer) Resize(width, height float64) {
	l.boxW = width
	l.boxH = height
}

func (l *Layer) SetLineSpacing(lead float64) { l.lineGap = lead }

func (l *Layer) SetIndent(indent float64) { l.indent = indent }

func (l *Layer) SetJustification(j textfit.Justification) { l.justify = j }

// Bounds 按当前字号重新排版并返回包围盒。字体缺失时退回文本框
// 自身的几何尺寸。
func (l *Layer) Bounds() textfit.Box {
	if l.fixed {
		return l.frameBox()
	}
	lines, err := l.layoutLines()
	if err != nil {
		return l.frameBox()
	}
	width, height := l.extent(lines)
	return textfit.Box{
		Left:   float64(l.x),
		Top:    float64(l.y),
		Right:  float64(l.x) + width,
		Bottom: float64(l.y) + height,
	}
}

// InkBounds 返回实际着墨范围：宽度取最长一行。测量失败时 ok 为
// false，调用方退回 Bounds。
func (l *Layer) InkBounds() (textfit.Box, bool) {
	if l.fixed {
		return l.frameBox(), true
	}
	lines, err := l.layoutLines()
	if err != nil {
		return l.Bounds(), false
	}
	maxWidth := 0.0
	for _, line := range lines {
		if line.width > maxWidth {
			maxWidth = line.width
		}
	}
	_, height := l.extent(lines)
	return textfit.Box{
		Left:   float64(l.x),
		Top:    float64(l.y),
		Right:  float64(l.x) + maxWidth,
		Bottom: float64(l.y) + height,
	}, true
}

func (l *Layer) frameBox() textfit.Box {
	return textfit.Box{
		Left:   float64(l.x),
		Top:    float64(l.y),
		Right:  float64(l.x) + l.boxW,
		Bottom: float64(l.y) + l.boxH,
	}
}

func (l *Layer) extent(lines []measuredLine) (width, height float64) {
	width = l.boxW
	for _, line := range lines {
		if width <= 0 && line.width > width {
			width = line.width
		}
		height += line.height
	}
	if n := len(lines); n > 1 {
		height += l.lineGap * float64(n-1)
	}
	return width, height
}

// segment 是一行内共享同一样式的连续文本。
type segment struct {
	text string
	span markup.Span
}

type measuredLine struct {
	segs   []segment
	width  float64
	height float64
}

// layoutLines 对样式段做贪心换行：优先在空白处断行，超宽的词
// 在词内拆分；显式换行保留。所有宽度按像素比较。
func (l *Layer) layoutLines() ([]measuredLine, error) {
	spans := l.spans
	if len(spans) == 0 {
		spans = []markup.Span{{Text: l.text, Family: l.family}}
	}
	limit := l.boxW
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []measuredLine
	var cur measuredLine
	defaultHeight := 0.0

	emit := func() {
		lines = append(lines, cur)
		cur = measuredLine{}
	}
	appendSeg := func(sp markup.Span, text string, w float64) {
		if n := len(cur.segs); n > 0 && sameStyle(cur.segs[n-1].span, sp) {
			cur.segs[n-1].text += text
		} else {
			cur.segs = append(cur.segs, segment{text: text, span: sp})
		}
		cur.width += w
	}

	for _, sp := range spans {
		face, err := l.r.fontFace(sp.Family, l.size*mmToPt, sp.Colour)
		if err != nil {
			return nil, err
		}
		metrics := face.Metrics()
		lineHeight := metrics.LineHeight
		if defaultHeight == 0 {
			defaultHeight = lineHeight
		}

		for _, token := range tokenize(sp.Text) {
			if token == "\n" {
				if cur.height < lineHeight {
					cur.height = lineHeight
				}
				emit()
				continue
			}

			w := face.TextWidth(token)
			if cur.width > 0 && cur.width+w > limit {
				emit()
				// 折行产生的行首不保留空白。
				if strings.TrimSpace(token) == "" {
					continue
				}
			}
			if w <= limit {
				appendSeg(sp, token, w)
			} else {
				for _, chunk := range splitTokenByWidth(token, limit, face) {
					cw := face.TextWidth(chunk)
					if cur.width > 0 && cur.width+cw > limit {
						emit()
					}
					appendSeg(sp, chunk, cw)
				}
			}
			if cur.height < lineHeight {
				cur.height = lineHeight
			}
		}
	}
	emit()

	for i := range lines {
		if lines[i].height == 0 {
			lines[i].height = defaultHeight
		}
	}
	return lines, nil
}

func sameStyle(a, b markup.Span) bool {
	return a.Family == b.Family && a.Italic == b.Italic && a.Colour == b.Colour
}

// tokenize 把文本切成空白串、词串与换行三类记号。
func tokenize(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, face interface{ TextWidth(string) float64 }) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if face.TextWidth(builder.String()) > limit && builder.Len() > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
