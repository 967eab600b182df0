// Package template 维护布局类别到框架模板的注册表。
package template

import (
	"fmt"

	"github.com/ByLCY/vellum/layout"
)

// Entry 记录某个布局类别的默认模板与备选模板。
type Entry struct {
	Default    string
	Alternates []string
}

var registry = map[layout.Class]Entry{
	layout.ClassNormal: {
		Default: "normal",
		Alternates: []string{
			"normal_classic", "normal_extended", "womens_day",
			"stargazing", "masterpiece", "expedition",
		},
	},
	layout.ClassTransformFront: {Default: "transform_front"},
	layout.ClassTransformBack:  {Default: "transform_back"},
	layout.ClassIxalan:         {Default: "ixalan"},
	layout.ClassMDFCFront:      {Default: "mdfc_front"},
	layout.ClassMDFCBack:       {Default: "mdfc_back"},
	layout.ClassMutate:         {Default: "mutate"},
	layout.ClassAdventure:      {Default: "adventure"},
	layout.ClassLeveler:        {Default: "leveler"},
	layout.ClassSaga:           {Default: "saga"},
	layout.ClassMiracle:        {Default: "miracle"},
	layout.ClassPlaneswalker: {
		Default:    "planeswalker",
		Alternates: []string{"planeswalker_extended"},
	},
	layout.ClassSnow: {Default: "snow"},
	layout.ClassBasic: {
		Default: "basic_land",
		Alternates: []string{
			"basic_land_classic", "basic_land_theros", "basic_land_unstable",
		},
	},
	layout.ClassPlanar: {Default: "planar"},
	layout.ClassToken:  {Default: "token"},
}

// Select 返回类别应使用的模板名。requested 非空且属于该类别的
// 备选模板时采用之，否则回落到默认模板。
func Select(class layout.Class, requested string) (string, error) {
	entry, ok := registry[class]
	if !ok {
		return "", fmt.Errorf("template: 布局类别 %s 没有注册模板", class)
	}
	if requested != "" {
		for _, alt := range entry.Alternates {
			if alt == requested {
				return requested, nil
			}
		}
	}
	return entry.Default, nil
}

// Customize 套用模板特有的布局覆盖。Masterpiece 系列固定使用
// 青铜色的名称框与背景。
func Customize(name string, l *layout.Layout) {
	if name == "masterpiece" {
		l.Frame.Twins = "Bronze"
		l.Frame.Background = "Bronze"
	}
}
