package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefault 验证内置配置的关键表项已就位。
func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Symbols["{T}"] != "ot" || cfg.Symbols["{W/U}"] != "QqLS" {
		t.Fatalf("符号表缺失关键条目: %+v", cfg.Symbols)
	}
	if len(cfg.AbilityWords) == 0 {
		t.Fatalf("异能词表为空")
	}
	if cfg.Fonts.Body == "" || cfg.Fonts.Symbol == "" {
		t.Fatalf("字体名称未配置: %+v", cfg.Fonts)
	}
	if cfg.FontSizes.Rules <= 0 || cfg.FontSizes.Default <= 0 {
		t.Fatalf("字号未配置: %+v", cfg.FontSizes)
	}
	if cfg.Palette.Ink != (Color{0, 0, 0}) || cfg.Palette.Paper != (Color{255, 255, 255}) {
		t.Fatalf("描边与纸白颜色不符: %+v", cfg.Palette)
	}

	// Default 返回共享实例。
	if Default() != cfg {
		t.Fatalf("内置配置应为单例")
	}
}

// TestLoadOverlay 验证用户配置只覆盖出现的键，其余保持默认。
func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.toml")
	content := `
[font_sizes]
rules = 88.0

[symbols]
"{NEW}" = "zz"

[expansion_symbols]
lea = "A"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.FontSizes.Rules != 88.0 {
		t.Fatalf("覆盖键未生效: %g", cfg.FontSizes.Rules)
	}
	if cfg.FontSizes.Name != Default().FontSizes.Name {
		t.Fatalf("未覆盖的键应保持默认: %g", cfg.FontSizes.Name)
	}
	if cfg.Symbols["{NEW}"] != "zz" || cfg.Symbols["{T}"] != "ot" {
		t.Fatalf("符号表叠加不符: %+v", cfg.Symbols)
	}

	// 叠加不应污染内置配置。
	if _, ok := Default().Symbols["{NEW}"]; ok {
		t.Fatalf("内置配置被用户配置污染")
	}
	if Default().FontSizes.Rules == 88.0 {
		t.Fatalf("内置字号被用户配置污染")
	}

	if cfg.ExpansionGlyph("LEA") != "A" {
		t.Fatalf("系列符号映射未生效")
	}
}

// TestLoadMissingFile 验证文件不存在时报错。
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "no-such.toml")); err == nil {
		t.Fatalf("缺失文件应报错")
	}
}

// TestExpansionGlyph 验证小写归一与通用符号回落。
func TestExpansionGlyph(t *testing.T) {
	cfg := Default().clone()
	cfg.ExpansionSymbols["znr"] = "Z"

	if cfg.ExpansionGlyph("ZNR") != "Z" {
		t.Fatalf("系列代码应按小写匹配")
	}
	if cfg.ExpansionGlyph("unknown") != fallbackExpansionGlyph {
		t.Fatalf("未知系列应回落到通用符号")
	}
	if cfg.ExpansionGlyph("") != fallbackExpansionGlyph {
		t.Fatalf("空系列代码应回落到通用符号")
	}
}
