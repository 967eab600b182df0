package frame

import "strings"

// 该包实现框架图层选择：根据法术力费用、类别行、规则文本与颜色标识
// 计算背景、边线与名称框应启用的图层键。分支顺序沿袭既有产品行为，
// 地与非地走完全独立的规则集；不要在未经确认的情况下“修正”分支先后。

// Layers 是框架选择的结果。
type Layers struct {
	Background   string `json:"background"`
	Pinlines     string `json:"pinlines"`
	Twins        string `json:"twins"`
	IsColourless bool   `json:"isColourless"`
}

// basicLandTypes 按固定顺序列出基本地类别及其颜色。
var basicLandTypes = []struct {
	name   string
	colour string
}{
	{"Plains", White},
	{"Island", Blue},
	{"Swamp", Black},
	{"Mountain", Red},
	{"Forest", Green},
}

// hybridSymbols 是混合费用在法术力字符串中的 10 种写法。
var hybridSymbols = []string{
	"W/U", "U/B", "B/R", "R/G", "G/W",
	"W/B", "B/G", "G/U", "U/R", "R/W",
}

// Select 是框架选择入口。colourIdentity 与 colourIndicator 来自
// 卡牌数据源，均可为 nil。
func Select(manaCost, typeLine, oracleText string, colourIdentity, colourIndicator []string) Layers {
	if strings.Contains(typeLine, Land) {
		return selectLand(typeLine, oracleText)
	}
	return selectNonland(manaCost, typeLine, oracleText, colourIdentity, colourIndicator)
}

func selectLand(typeLine, oracleText string) Layers {
	// twins 以空串作为“尚未赋值”的哨兵，后续分支依赖该约定。
	twins := ""

	basicIdentity := ""
	for _, basic := range basicLandTypes {
		if strings.Contains(typeLine, basic.name) {
			basicIdentity += basic.colour
		}
	}

	if len(basicIdentity) == 1 {
		twins = basicIdentity
	} else if len(basicIdentity) == 2 {
		if fixed, ok := FixColourPair(basicIdentity); ok {
			basicIdentity = fixed
		}
		return Layers{Background: Land, Pinlines: basicIdentity, Twins: Land}
	}

	coloursTapped := ""
	for _, line := range strings.Split(oracleText, "\n") {
		lower := strings.ToLower(line)

		if strings.Contains(lower, "search your library") && !strings.Contains(lower, "cycling") {
			basicIdentity = ""
			for _, basic := range basicLandTypes {
				if strings.Contains(line, basic.name) {
					basicIdentity += basic.colour
				}
			}

			switch len(basicIdentity) {
			case 1:
				return Layers{Background: Land, Pinlines: basicIdentity, Twins: basicIdentity}
			case 2:
				if fixed, ok := FixColourPair(basicIdentity); ok {
					basicIdentity = fixed
				}
				return Layers{Background: Land, Pinlines: basicIdentity, Twins: Land}
			case 3:
				return Layers{Background: Land, Pinlines: Land, Twins: Land}
			default:
				if strings.Contains(line, "land") {
					if !strings.Contains(line, "tapped") || strings.Contains(line, "untap") {
						return Layers{Background: Land, Pinlines: Gold, Twins: Gold}
					}
					return Layers{Background: Land, Pinlines: Land, Twins: Land}
				}
			}
		}

		if strings.Contains(lower, "add") && strings.Contains(line, "mana") &&
			(strings.Index(line, "color ") > 0 ||
				strings.Index(line, "colors ") > 0 ||
				strings.Index(line, "color.") > 0 ||
				strings.Index(line, "colors.") > 0) {
			if !strings.Contains(line, "enters the battlefield") &&
				!strings.Contains(line, "Remove a charge counter") &&
				!strings.Contains(line, "Sacrifice") &&
				!strings.Contains(line, "luck counter") {
				return Layers{Background: Land, Pinlines: Gold, Twins: Gold}
			}
		}

		// {T} 先于冒号出现（均按 Index 语义，不存在时为 -1）且该行含 add，
		// 则把行内出现的颜色符号并入 coloursTapped。
		if strings.Index(line, "{T}") < strings.Index(line, ":") && strings.Contains(lower, "add") {
			for _, colour := range colours {
				if strings.Contains(line, "{"+colour+"}") && !strings.Contains(coloursTapped, colour) {
					coloursTapped += colour
				}
			}
		}
	}

	var pinlines string
	switch {
	case len(coloursTapped) == 1:
		pinlines = coloursTapped
		if twins == "" {
			twins = coloursTapped
		}
	case len(coloursTapped) == 2:
		if fixed, ok := FixColourPair(coloursTapped); ok {
			coloursTapped = fixed
		}
		pinlines = coloursTapped
		if twins == "" {
			twins = Land
		}
	case len(coloursTapped) > 2:
		pinlines = Gold
		if twins == "" {
			twins = Gold
		}
	default:
		pinlines = Land
		if twins == "" {
			twins = Land
		}
	}

	return Layers{Background: Land, Pinlines: pinlines, Twins: twins}
}

func selectNonland(manaCost, typeLine, oracleText string, colourIdentity, colourIndicator []string) Layers {
	identity := ""
	if manaCost == "" || (manaCost == "{0}" && !strings.Contains(typeLine, Artifact)) {
		switch {
		case len(colourIdentity) == 0:
			identity = ""
		case colourIndicator != nil:
			identity = strings.Join(colourIndicator, "")
		default:
			identity = strings.Join(colourIdentity, "")
		}
	} else {
		for _, colour := range colours {
			if strings.Contains(manaCost, "{"+colour) || strings.Contains(manaCost, colour+"}") {
				identity += colour
			}
		}
	}

	if len(identity) == 2 {
		if fixed, ok := FixColourPair(identity); ok {
			identity = fixed
		}
	}

	if strings.Index(oracleText, " is all colors.") > 0 {
		identity = "WUBRG"
	}

	devoid := strings.Contains(oracleText, "Devoid") && len(identity) > 0
	if (len(identity) == 0 && !strings.Contains(typeLine, Artifact)) ||
		devoid ||
		(manaCost == "" && strings.Contains(typeLine, "Eldrazi")) {
		out := Layers{Background: Colourless, Pinlines: Colourless, Twins: Colourless, IsColourless: true}
		if devoid {
			if len(identity) > 1 {
				out.Twins = Gold
				out.Background = Gold
			} else {
				out.Twins = identity
				out.Background = identity
			}
		}
		return out
	}

	hybrid := false
	if len(identity) == 2 {
		for _, symbol := range hybridSymbols {
			if strings.Contains(manaCost, symbol) {
				hybrid = true
				break
			}
		}
	}

	var background string
	switch {
	case strings.Contains(typeLine, Artifact):
		background = Artifact
	case hybrid:
		background = identity
	case len(identity) >= 2:
		background = Gold
	default:
		background = identity
	}
	if strings.Contains(typeLine, Vehicle) {
		background = Vehicle
	}

	var pinlines string
	switch {
	case len(identity) == 0:
		pinlines = Artifact
	case len(identity) <= 2:
		pinlines = identity
	default:
		pinlines = Gold
	}

	var twins string
	switch {
	case len(identity) == 0:
		twins = Artifact
	case len(identity) == 1:
		twins = identity
	case hybrid:
		twins = Land
	default:
		twins = Gold
	}

	return Layers{Background: background, Pinlines: pinlines, Twins: twins}
}
