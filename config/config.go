package config

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// 该包提供编译流程所需的全部配置数据：符号表、异能词表、
// 字体名称与默认字号、符号调色板。配置一经构建即视为只读，
// 以显式参数的方式传入各编译入口。

//go:embed default.toml
var defaultTOML []byte

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `toml:"r" json:"r"`
	G int `toml:"g" json:"g"`
	B int `toml:"b" json:"b"`
}

// FontNames 记录各文本角色对应的字体族名称。
type FontNames struct {
	Body       string `toml:"body" json:"body"`             // 正文
	BodyItalic string `toml:"body_italic" json:"bodyItalic"` // 正文斜体（提示文本、风味文本）
	Symbol     string `toml:"symbol" json:"symbol"`          // 法术力符号字体
	Title      string `toml:"title" json:"title"`            // 卡名与攻防
	Expansion  string `toml:"expansion" json:"expansion"`    // 系列符号字体
}

// FontSizes 记录各文本区域的默认字号（像素）。
type FontSizes struct {
	Name           float64 `toml:"name" json:"name"`
	ManaCost       float64 `toml:"mana_cost" json:"manaCost"`
	TypeLine       float64 `toml:"type_line" json:"typeLine"`
	Rules          float64 `toml:"rules" json:"rules"`
	PowerToughness float64 `toml:"power_toughness" json:"powerToughness"`
	Expansion      float64 `toml:"expansion" json:"expansion"`
	Artist         float64 `toml:"artist" json:"artist"`
	Default        float64 `toml:"default" json:"default"`
}

// Spacing 记录排版用的行距与缩进常量（点）。
type Spacing struct {
	ModalIndent     float64 `toml:"modal_indent" json:"modalIndent"`
	LineBreakLead   float64 `toml:"line_break_lead" json:"lineBreakLead"`
	FlavourTextLead float64 `toml:"flavour_text_lead" json:"flavourTextLead"`
}

// Palette 记录符号着色所需的固定颜色。
type Palette struct {
	White      Color `toml:"w" json:"w"`
	Blue       Color `toml:"u" json:"u"`
	Black      Color `toml:"b" json:"b"`
	Red        Color `toml:"r" json:"r"`
	Green      Color `toml:"g" json:"g"`
	Colourless Color `toml:"c" json:"c"`
	Ink        Color `toml:"ink" json:"ink"`     // 描边用纯黑
	Paper      Color `toml:"paper" json:"paper"` // 雪境符号用纯白
}

// Config 聚合全部配置数据。字段在加载后不应再被修改。
type Config struct {
	Fonts        FontNames         `toml:"fonts" json:"fonts"`
	FontSizes    FontSizes         `toml:"font_sizes" json:"fontSizes"`
	Spacing      Spacing           `toml:"spacing" json:"spacing"`
	Palette      Palette           `toml:"palette" json:"palette"`
	Symbols      map[string]string `toml:"symbols" json:"symbols"`
	AbilityWords []string          `toml:"ability_words" json:"abilityWords"`

	// ExpansionSymbols 把系列代码（小写）映射到系列符号字体的字形。
	ExpansionSymbols map[string]string `toml:"expansion_symbols" json:"expansionSymbols"`
}

// fallbackExpansionGlyph 是系列代码没有专用字形时的通用符号。
const fallbackExpansionGlyph = "\uE684"

// ExpansionGlyph 返回系列代码对应的系列符号字形。
func (c *Config) ExpansionGlyph(setCode string) string {
	if glyph, ok := c.ExpansionSymbols[strings.ToLower(setCode)]; ok && glyph != "" {
		return glyph
	}
	return fallbackExpansionGlyph
}

var (
	defaultOnce sync.Once
	defaultCfg  *Config
)

// Default 返回内置配置。内置 TOML 非法属于程序缺陷，直接 panic。
func Default() *Config {
	defaultOnce.Do(func() {
		cfg := &Config{}
		if err := toml.Unmarshal(defaultTOML, cfg); err != nil {
			panic(fmt.Sprintf("config: 内置配置解析失败: %v", err))
		}
		defaultCfg = cfg
	})
	return defaultCfg
}

// Load 在内置配置的基础上叠加 path 指定的 TOML 文件。
// 文件中出现的键覆盖默认值，未出现的键保持不变。
func Load(path string) (*Config, error) {
	cfg := Default().clone()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: 读取配置 %s 失败: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) clone() *Config {
	out := *c
	out.Symbols = make(map[string]string, len(c.Symbols))
	for k, v := range c.Symbols {
		out.Symbols[k] = v
	}
	out.AbilityWords = append([]string(nil), c.AbilityWords...)
	out.ExpansionSymbols = make(map[string]string, len(c.ExpansionSymbols))
	for k, v := range c.ExpansionSymbols {
		out.ExpansionSymbols[k] = v
	}
	return &out
}
