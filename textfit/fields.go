package textfit

import (
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/vellum/config"
	"github.com/ByLCY/vellum/markup"
)

// 文本字段把布局结果落到具体图层上：写入文本、套用字体与颜色、
// 触发几何适配。字段本身无状态，Apply 可对不同图层重复使用。

// TextField 是最基本的字段：单一字体、单一颜色。
type TextField struct {
	Layer   Layer
	Text    string
	Colour  config.Color
	Font    string
	Size    float64
	Justify Justification
}

// Apply 写入文本并设置字体与对齐。Size 未指定时采用配置的默认字号。
func (f *TextField) Apply(cfg *config.Config) error {
	size := f.Size
	if size <= 0 {
		size = cfg.FontSizes.Default
	}
	f.Layer.SetVisible(true)
	f.Layer.SetFontSize(size, UnitPX)
	f.Layer.SetText(f.Text)
	if f.Font != "" {
		f.Layer.SetMarkup([]markup.Span{{Text: f.Text, Family: f.Font, Colour: f.Colour}})
	}
	if f.Justify != JustifyNone {
		if sp, ok := f.Layer.(SpacingLayer); ok {
			sp.SetJustification(f.Justify)
		}
	}
	return nil
}

// ScaledTextField 在基本字段之上避让右侧的参考图层（例如卡名
// 与法术力费用）。
type ScaledTextField struct {
	TextField
	Reference Layer
}

func (f *ScaledTextField) Apply(cfg *config.Config) error {
	if err := f.TextField.Apply(cfg); err != nil {
		return err
	}
	ScaleTextRightOverlap(f.Layer, f.Reference)
	return nil
}

// ExpansionSymbolField 写入系列符号字形。bonus 与 special 两档
// 稀有度沿用秘稀的视觉处理。
type ExpansionSymbolField struct {
	Layer  Layer
	Glyph  string
	Rarity string
}

// NormalizedRarity 返回用于选择渐变图层的稀有度。
func (f *ExpansionSymbolField) NormalizedRarity() string {
	if f.Rarity == "bonus" || f.Rarity == "special" {
		return "mythic"
	}
	return f.Rarity
}

func (f *ExpansionSymbolField) Apply(cfg *config.Config) error {
	base := &TextField{
		Layer:  f.Layer,
		Text:   f.Glyph,
		Colour: cfg.Palette.Ink,
		Font:   cfg.Fonts.Expansion,
		Size:   cfg.FontSizes.Expansion,
	}
	return base.Apply(cfg)
}

// BasicFormattedTextField 编译符号与斜体但不带风味文本，
// 用于法术力费用与类别行。右对齐字段在重排后贴回原右缘。
type BasicFormattedTextField struct {
	Layer    Layer
	Text     string
	Colour   config.Color
	Size     float64
	Justify  Justification
	Compiler *markup.Compiler
}

func (f *BasicFormattedTextField) Apply(cfg *config.Config) error {
	orig := f.Layer.Bounds()

	base := &TextField{
		Layer:   f.Layer,
		Text:    f.Text,
		Colour:  f.Colour,
		Size:    f.Size,
		Justify: f.Justify,
	}
	if err := base.Apply(cfg); err != nil {
		return err
	}

	italics := f.Compiler.GenerateItalics(f.Text)
	spans, err := f.Compiler.Format(f.Text, italics, -1, f.Colour)
	if err != nil {
		return err
	}
	f.Layer.SetMarkup(spans)
	if f.Justify != JustifyNone {
		if sp, ok := f.Layer.(SpacingLayer); ok {
			sp.SetJustification(f.Justify)
		}
	}

	// 重排会改变图层尺寸；右对齐字段以原包围盒右缘为锚点，
	// 并在原高度内垂直居中。
	if f.Justify == JustifyRight && orig.Right > 0 {
		bounds := f.Layer.Bounds()
		newX := int(orig.Right - bounds.Width())
		midY := (orig.Top + orig.Bottom) / 2
		newY := int(midY - bounds.Height()/2)
		f.Layer.SetOffsets(newX, newY)
	}
	return nil
}

// FormattedTextField 编译规则文本与风味文本为样式段并写入图层。
type FormattedTextField struct {
	Layer       Layer
	Text        string
	Colour      config.Color
	FlavourText string
	IsCentred   bool
	Compiler    *markup.Compiler
}

func (f *FormattedTextField) Apply(cfg *config.Config) error {
	base := &TextField{Layer: f.Layer, Text: f.Text, Colour: f.Colour}
	if err := base.Apply(cfg); err != nil {
		return err
	}
	return f.format(cfg)
}

// format 合并规则文本与风味文本并套用样式段与行距。
func (f *FormattedTextField) format(cfg *config.Config) error {
	italics := f.Compiler.GenerateItalics(f.Text)
	flavour, italics, flavourIndex := mergeFlavour(f.Text, f.FlavourText, italics)

	spans, err := f.Compiler.Format(f.Text+"\n"+flavour, italics, flavourIndex, f.Colour)
	if err != nil {
		return err
	}
	f.Layer.SetMarkup(spans)

	if sp, ok := f.Layer.(SpacingLayer); ok {
		// 居中字段不加行距；有风味文本时行距抬升到风味行距。
		lead := cfg.Spacing.LineBreakLead
		if f.IsCentred {
			lead = 0
		}
		if flavourIndex > 0 && cfg.Spacing.FlavourTextLead > lead {
			lead = cfg.Spacing.FlavourTextLead
		}
		sp.SetLineSpacing(lead)
		if strings.Contains(f.Text, "•") {
			sp.SetIndent(cfg.Spacing.ModalIndent)
		}
		if f.IsCentred {
			sp.SetJustification(JustifyCenter)
		}
	}
	return nil
}

// mergeFlavour 处理风味文本的星号约定：奇偶切分后偶数段保持斜体，
// 奇数段恢复正体，星号本身不进入输出。返回合并后的风味文本、
// 追加过候选的斜体表与风味起点（原文的符文数，无风味时为 -1）。
func mergeFlavour(text, flavour string, italics []string) (string, []string, int) {
	if utf8.RuneCountInString(flavour) <= 1 {
		return flavour, italics, -1
	}

	parts := strings.Split(flavour, "*")
	if len(parts) > 1 {
		for i := 0; i < len(parts); i += 2 {
			if parts[i] != "" {
				italics = append(italics, parts[i])
			}
		}
		flavour = strings.Join(parts, "")
	} else {
		italics = append(italics, flavour)
	}
	return flavour, italics, utf8.RuneCountInString(text)
}

// FormattedTextArea 在固定宽度的文本框内排版规则文本，并按参考
// 图层收缩字号、垂直居中。
type FormattedTextArea struct {
	FormattedTextField
	Reference Layer
}

func (f *FormattedTextArea) Apply(cfg *config.Config) error {
	ref := f.Reference.Bounds()
	// 文本框取参考宽度的 95%，两侧各留 2.5% 内边距。
	boxWidth := ref.Width() * 0.95
	f.Layer.Resize(boxWidth, 0)

	inset := (ref.Width() - boxWidth) / 2
	_, y := f.Layer.Offsets()
	f.Layer.SetOffsets(int(ref.Left+inset), y)

	f.Layer.SetVisible(true)
	f.Layer.SetFontSize(cfg.FontSizes.Rules, UnitPX)
	f.Layer.SetText(f.Text)

	if err := f.format(cfg); err != nil {
		return err
	}

	if f.Text != "" || f.FlavourText != "" {
		ScaleTextToFitReference(f.Layer, f.Reference)
		VerticallyAlignText(f.Layer, f.Reference)
	}
	return nil
}

// CreatureFormattedTextArea 额外避让攻防框。
type CreatureFormattedTextArea struct {
	FormattedTextArea
	PTReference    Layer
	PTTopReference Layer
}

func (f *CreatureFormattedTextArea) Apply(cfg *config.Config) error {
	if err := f.FormattedTextArea.Apply(cfg); err != nil {
		return err
	}
	VerticallyNudgeCreatureText(f.Layer, f.PTReference, f.PTTopReference)
	return nil
}

// ShouldCentreRules 判断规则文本是否整体居中：风味文本至多一个
// 字符、规则文本不超过 70 个字符且不含换行。
func ShouldCentreRules(oracle, flavour string) bool {
	return utf8.RuneCountInString(flavour) <= 1 &&
		utf8.RuneCountInString(oracle) <= 70 &&
		!strings.Contains(oracle, "\n")
}
