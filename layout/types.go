package layout

import "github.com/ByLCY/vellum/frame"

// 该文件定义布局结果结构，供布局计算、文本装配与调试 JSON 共用。

// Class 是卡牌的视觉布局类别，决定套用哪一组框架模板。
type Class string

const (
	ClassNormal         Class = "normal"
	ClassTransformFront Class = "transform_front"
	ClassTransformBack  Class = "transform_back"
	ClassIxalan         Class = "ixalan"
	ClassMDFCFront      Class = "mdfc_front"
	ClassMDFCBack       Class = "mdfc_back"
	ClassMutate         Class = "mutate"
	ClassAdventure      Class = "adventure"
	ClassLeveler        Class = "leveler"
	ClassSaga           Class = "saga"
	ClassMiracle        Class = "miracle"
	ClassPlaneswalker   Class = "planeswalker"
	ClassSnow           Class = "snow"
	ClassBasic          Class = "basic"
	ClassPlanar         Class = "planar"
	ClassToken          Class = "token"
)

// Face 标识双面卡中被渲染的一面。单面卡视为正面。
type Face int

const (
	FaceFront Face = 0
	FaceBack  Face = 1
)

// Layout 保存一张卡一个面的全部布局输入：文本字段、框架图层
// 与派生标志。字段在 Build 返回后视为只读。
type Layout struct {
	Class Class `json:"class"`
	Face  Face  `json:"face"`

	Name        string `json:"name"`
	ManaCost    string `json:"manaCost"`
	TypeLine    string `json:"typeLine"`
	OracleText  string `json:"oracleText"`
	FlavourText string `json:"flavourText"`
	Power       string `json:"power"`
	Toughness   string `json:"toughness"`

	Rarity  string `json:"rarity"`
	Artist  string `json:"artist"`
	SetCode string `json:"setCode"`

	ColourIdentity  []string `json:"colourIdentity"`
	ColourIndicator []string `json:"colourIndicator"`
	Keywords        []string `json:"keywords"`
	FrameEffects    []string `json:"frameEffects"`

	// TransformIcon 取第一个 frame effect；双面卡的图标名由数据源
	// 按此约定给出。
	TransformIcon string `json:"transformIcon,omitempty"`

	Frame frame.Layers `json:"frame"`

	IsNyx       bool `json:"isNyx"`
	IsCreature  bool `json:"isCreature"`
	IsLegendary bool `json:"isLegendary"`
	IsLand      bool `json:"isLand"`
	IsCompanion bool `json:"isCompanion"`

	// 双面卡另一面的攻防，用于正面标注背面数值。
	OtherFacePower     string `json:"otherFacePower,omitempty"`
	OtherFaceToughness string `json:"otherFaceToughness,omitempty"`

	// 模式双面卡底栏：另一面的名称框图层与左右提示文本。
	OtherFaceTwins string `json:"otherFaceTwins,omitempty"`
	OtherFaceLeft  string `json:"otherFaceLeft,omitempty"`
	OtherFaceRight string `json:"otherFaceRight,omitempty"`

	Adventure *AdventureHalf `json:"adventure,omitempty"`
	Leveler   *LevelerText   `json:"leveler,omitempty"`

	// SagaLines 是传奇卡逐章节的效果文本（已去掉章节编号）。
	SagaLines []string `json:"sagaLines,omitempty"`
}

// AdventureHalf 是出游卡左下半区的文本字段。
type AdventureHalf struct {
	Name       string `json:"name"`
	ManaCost   string `json:"manaCost"`
	TypeLine   string `json:"typeLine"`
	OracleText string `json:"oracleText"`
}

// LevelerText 是等级卡规则文本按级别拆分后的各段。
type LevelerText struct {
	LevelUpText          string `json:"levelUpText"`
	MiddleLevel          string `json:"middleLevel"`
	MiddlePowerToughness string `json:"middlePowerToughness"`
	LevelsXYText         string `json:"levelsXYText"`
	BottomLevel          string `json:"bottomLevel"`
	BottomPowerToughness string `json:"bottomPowerToughness"`
	LevelsZPlusText      string `json:"levelsZPlusText"`
}
