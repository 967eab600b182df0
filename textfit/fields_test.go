package textfit

import (
	"testing"

	"github.com/ByLCY/vellum/config"
	"github.com/ByLCY/vellum/markup"
)

// TestTextFieldApply 验证基本字段写入文本、字号与单段样式。
func TestTextFieldApply(t *testing.T) {
	cfg := config.Default()
	layer := &stubLayer{widthPerSize: 1, heightPerSize: 1}

	field := &TextField{
		Layer:  layer,
		Text:   "Mark Poole",
		Colour: cfg.Palette.Paper,
		Font:   cfg.Fonts.Body,
		Size:   44,
	}
	if err := field.Apply(cfg); err != nil {
		t.Fatalf("字段套用失败: %v", err)
	}
	if !layer.visible || layer.text != "Mark Poole" || layer.size != 44 {
		t.Fatalf("图层状态不符: %+v", layer)
	}
	if len(layer.spans) != 1 || layer.spans[0].Family != cfg.Fonts.Body ||
		layer.spans[0].Colour != cfg.Palette.Paper {
		t.Fatalf("样式段不符: %+v", layer.spans)
	}

	// 未给字号时回落到配置默认值。
	fallback := &TextField{Layer: &stubLayer{}, Text: "x"}
	if err := fallback.Apply(cfg); err != nil {
		t.Fatalf("字段套用失败: %v", err)
	}
	if size, _ := fallback.Layer.FontSize(); size != cfg.FontSizes.Default {
		t.Fatalf("应采用默认字号: %g", size)
	}
}

// TestScaledTextFieldAvoidsReference 验证卡名字段避让右侧费用图层。
func TestScaledTextFieldAvoidsReference(t *testing.T) {
	cfg := config.Default()
	layer := &stubLayer{x: 230, widthPerSize: 20, heightPerSize: 1}
	ref := fixedStub(Box{Left: 2188, Right: 3060})

	field := &ScaledTextField{
		TextField: TextField{
			Layer: layer,
			Text:  "Very Long Legendary Card Name",
			Font:  cfg.Fonts.Title,
			Size:  140,
		},
		Reference: ref,
	}
	if err := field.Apply(cfg); err != nil {
		t.Fatalf("字段套用失败: %v", err)
	}
	if r := layer.Bounds().Right; r > 2188-rightGap+1e-6 {
		t.Fatalf("右缘未避让费用图层: right=%g", r)
	}
}

// TestExpansionSymbolFieldRarity 验证 bonus/special 归并到秘稀，
// 并以系列符号字体写入字形。
func TestExpansionSymbolFieldRarity(t *testing.T) {
	cfg := config.Default()

	cases := []struct {
		rarity string
		want   string
	}{
		{"common", "common"},
		{"mythic", "mythic"},
		{"bonus", "mythic"},
		{"special", "mythic"},
	}
	for _, tc := range cases {
		field := &ExpansionSymbolField{Rarity: tc.rarity}
		if got := field.NormalizedRarity(); got != tc.want {
			t.Fatalf("稀有度 %s 归并不符: got=%s want=%s", tc.rarity, got, tc.want)
		}
	}

	layer := &stubLayer{widthPerSize: 1, heightPerSize: 1}
	field := &ExpansionSymbolField{Layer: layer, Glyph: "\uE684", Rarity: "rare"}
	if err := field.Apply(cfg); err != nil {
		t.Fatalf("字段套用失败: %v", err)
	}
	if layer.text != "\uE684" || layer.size != cfg.FontSizes.Expansion {
		t.Fatalf("符号图层状态不符: %+v", layer)
	}
	if len(layer.spans) != 1 || layer.spans[0].Family != cfg.Fonts.Expansion {
		t.Fatalf("应使用系列符号字体: %+v", layer.spans)
	}
}

// TestBasicFormattedTextFieldRightAnchor 验证右对齐字段重排后
// 贴回原右缘并在原高度内垂直居中。
func TestBasicFormattedTextFieldRightAnchor(t *testing.T) {
	cfg := config.Default()
	c := markup.NewCompiler(cfg)

	// 初始字号 130 给出原包围盒，重排后字号 100 的包围盒更小。
	layer := &stubLayer{x: 2188, y: 262, size: 130, widthPerSize: 5, heightPerSize: 1}

	field := &BasicFormattedTextField{
		Layer:    layer,
		Text:     "{2}{R}{R}",
		Colour:   cfg.Palette.Ink,
		Size:     100,
		Justify:  JustifyRight,
		Compiler: c,
	}
	if err := field.Apply(cfg); err != nil {
		t.Fatalf("字段套用失败: %v", err)
	}

	// 原右缘 2188+130*5=2838，新宽度 500，锚回 2338；
	// 原高度 130 内居中新高度 100，y=262+15=277。
	if layer.x != 2338 || layer.y != 277 {
		t.Fatalf("右对齐锚点不符: x=%d y=%d", layer.x, layer.y)
	}
	if layer.justify != JustifyRight {
		t.Fatalf("对齐方式未设置: %v", layer.justify)
	}
	if len(layer.spans) == 0 || layer.spans[0].Family != cfg.Fonts.Symbol {
		t.Fatalf("费用应编译为符号样式段: %+v", layer.spans)
	}
}

// TestFormattedTextAreaGeometry 验证文本框取参考宽度的 95% 并
// 居中内缩，随后在参考高度内垂直居中。
func TestFormattedTextAreaGeometry(t *testing.T) {
	cfg := config.Default()
	c := markup.NewCompiler(cfg)

	layer := &stubLayer{x: 230, y: 2650, widthPerSize: 20, heightPerSize: 1}
	ref := fixedStub(Box{Left: 230, Top: 2650, Right: 3060, Bottom: 4000})

	field := &FormattedTextArea{
		FormattedTextField: FormattedTextField{
			Layer:    layer,
			Text:     "Flying • Trample",
			Colour:   cfg.Palette.Ink,
			Compiler: c,
		},
		Reference: ref,
	}
	if err := field.Apply(cfg); err != nil {
		t.Fatalf("字段套用失败: %v", err)
	}

	if layer.boxW != 2830*0.95 {
		t.Fatalf("文本框宽度不符: %g", layer.boxW)
	}
	if layer.x != 300 {
		t.Fatalf("内缩偏移不符: x=%d", layer.x)
	}
	// 字号 100、高度 100，在 1350 高的参考内居中到 3275。
	if layer.y != 3275 {
		t.Fatalf("垂直居中不符: y=%d", layer.y)
	}
	if layer.lead != cfg.Spacing.LineBreakLead {
		t.Fatalf("行距未设置: %g", layer.lead)
	}
	// 含列表符号的文本应设置悬挂缩进。
	if layer.indent != cfg.Spacing.ModalIndent {
		t.Fatalf("缩进未设置: %g", layer.indent)
	}
	if len(layer.spans) == 0 {
		t.Fatalf("样式段缺失")
	}
}

// TestFormattedTextFieldLineSpacing 验证行距分支：居中字段行距为零，
// 否则用换行行距；有风味文本时抬升到风味行距。
func TestFormattedTextFieldLineSpacing(t *testing.T) {
	cfg := config.Default()
	c := markup.NewCompiler(cfg)

	apply := func(text, flavour string, centred bool) *stubLayer {
		layer := &stubLayer{widthPerSize: 1, heightPerSize: 1}
		field := &FormattedTextField{
			Layer:       layer,
			Text:        text,
			Colour:      cfg.Palette.Ink,
			FlavourText: flavour,
			IsCentred:   centred,
			Compiler:    c,
		}
		if err := field.Apply(cfg); err != nil {
			t.Fatalf("字段套用失败: %v", err)
		}
		return layer
	}

	if got := apply("First strike\nTrample", "", false).lead; got != cfg.Spacing.LineBreakLead {
		t.Fatalf("默认行距不符: %g", got)
	}
	if got := apply("Flying", "", true).lead; got != 0 {
		t.Fatalf("居中字段行距应为零: %g", got)
	}
	if got := apply("Flying", "A quiet oath.", false).lead; got != cfg.Spacing.FlavourTextLead {
		t.Fatalf("风味行距未抬升: %g", got)
	}
	// 居中与风味并存时仍取风味行距。
	if got := apply("Flying", "A quiet oath.", true).lead; got != cfg.Spacing.FlavourTextLead {
		t.Fatalf("居中风味行距不符: %g", got)
	}
	// 单字符风味视为无风味，不抬升。
	if got := apply("Flying", "★", false).lead; got != cfg.Spacing.LineBreakLead {
		t.Fatalf("单字符风味不应抬升行距: %g", got)
	}
}

// TestFormattedTextAreaEmptySkipsFit 验证空文本不触发适配。
func TestFormattedTextAreaEmptySkipsFit(t *testing.T) {
	cfg := config.Default()
	c := markup.NewCompiler(cfg)

	layer := &stubLayer{x: 230, y: 2650, widthPerSize: 20, heightPerSize: 1}
	ref := fixedStub(Box{Left: 230, Top: 2650, Right: 3060, Bottom: 4000})

	field := &FormattedTextArea{
		FormattedTextField: FormattedTextField{Layer: layer, Compiler: c},
		Reference:          ref,
	}
	if err := field.Apply(cfg); err != nil {
		t.Fatalf("字段套用失败: %v", err)
	}
	if layer.y != 2650 {
		t.Fatalf("空文本不应垂直居中: y=%d", layer.y)
	}
}
