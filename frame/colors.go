package frame

// 框架图层键：单色用颜色字母本身，其余为固定的材质/类别名称。
const (
	White = "W"
	Blue  = "U"
	Black = "B"
	Red   = "R"
	Green = "G"

	Artifact   = "Artifact"
	Colourless = "Colourless"
	Land       = "Land"
	Gold       = "Gold"
	Vehicle    = "Vehicle"
)

// colours 按 WUBRG 顺序列出五色字母。
var colours = []string{White, Blue, Black, Red, Green}

// colourPairs 是 10 个双色组合的规范顺序表。
var colourPairs = []string{
	"WU", "UB", "BR", "RG", "GW",
	"WB", "BG", "GU", "UR", "RW",
}

// FixColourPair 把无序的双色字符串规范为固定顺序表中的条目。
// 两个字母都出现在某个表项中即视为匹配；无匹配时返回 ok=false，
// 调用方保留原始输入（软回退）。对已规范的输入是幂等的。
func FixColourPair(input string) (string, bool) {
	for _, pair := range colourPairs {
		if containsRune(input, pair[0]) && containsRune(input, pair[1]) {
			return pair, true
		}
	}
	return "", false
}

func containsRune(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}
