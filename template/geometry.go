package template

import "github.com/ByLCY/vellum/textfit"

// 文本区域名称。坐标按 3288x4488 的像素画布标定。
const (
	AreaName      = "name"
	AreaManaCost  = "mana_cost"
	AreaTypeLine  = "type_line"
	AreaExpansion = "expansion"
	AreaRules     = "rules"
	AreaPT        = "pt"
	AreaPTTop     = "pt_top"
	AreaArtist    = "artist"
)

var geometry = map[string]textfit.Box{
	AreaName:      {Left: 230, Top: 255, Right: 2430, Bottom: 402},
	AreaManaCost:  {Left: 2188, Top: 262, Right: 3060, Bottom: 390},
	AreaTypeLine:  {Left: 230, Top: 2430, Right: 2780, Bottom: 2561},
	AreaExpansion: {Left: 2880, Top: 2420, Right: 3035, Bottom: 2584},
	AreaRules:     {Left: 230, Top: 2650, Right: 3060, Bottom: 4000},
	AreaPT:        {Left: 2620, Top: 3990, Right: 3060, Bottom: 4180},
	AreaPTTop:     {Left: 2620, Top: 3860, Right: 3060, Bottom: 3990},
	AreaArtist:    {Left: 420, Top: 4240, Right: 1500, Bottom: 4330},
}

// Area 返回命名区域的包围盒；未知区域返回零值。
func Area(name string) textfit.Box {
	return geometry[name]
}
