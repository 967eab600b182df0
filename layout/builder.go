package layout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ByLCY/vellum/card"
	"github.com/ByLCY/vellum/frame"
)

// basicLandNames 列出可直接走极简布局的基本地卡名。
var basicLandNames = []string{
	"Plains", "Island", "Swamp", "Mountain", "Forest", "Wastes",
	"Snow-Covered Plains", "Snow-Covered Island", "Snow-Covered Swamp",
	"Snow-Covered Mountain", "Snow-Covered Forest",
}

// shapeBuilders 按数据源的 layout 形状分派到对应的装配函数。
// 每个装配函数负责填充文本字段并返回该形状的默认类别。
var shapeBuilders = map[string]func(*card.Record, string) (*Layout, Class, error){
	"normal":    buildNormal,
	"transform": buildTransform,
	"meld":      buildMeld,
	"modal_dfc": buildModalDFC,
	"adventure": buildAdventure,
	"leveler":   buildLeveler,
	"saga":      buildSaga,
	"planar":    buildPlanar,
	"token":     buildToken,
}

// Build 根据卡牌记录与目标卡名生成布局。cardName 用于在双面卡中
// 选定被渲染的一面；为空时取记录自身的卡名。
func Build(rec *card.Record, cardName string) (*Layout, error) {
	if rec == nil {
		return nil, fmt.Errorf("layout: 卡牌记录为空")
	}
	if cardName == "" {
		cardName = rec.Name
	}

	// 基本地不经过框架选择，直接使用固定类别。
	for _, name := range basicLandNames {
		if cardName == name {
			return &Layout{
				Class:   ClassBasic,
				Name:    cardName,
				Artist:  rec.Artist,
				Rarity:  rec.Rarity,
				SetCode: rec.Set,
			}, nil
		}
	}

	build, ok := shapeBuilders[rec.Layout]
	if !ok {
		return nil, fmt.Errorf("layout: 不支持的卡牌形状 %q", rec.Layout)
	}
	l, defaultClass, err := build(rec, cardName)
	if err != nil {
		return nil, err
	}

	l.Rarity = rec.Rarity
	l.Artist = rec.Artist
	l.SetCode = rec.Set
	if l.ColourIdentity == nil {
		l.ColourIdentity = rec.ColourIdentity
	}
	l.Keywords = rec.Keywords
	l.FrameEffects = rec.FrameEffects

	l.Class = resolveClass(l, defaultClass)
	l.Frame = frame.Select(l.ManaCost, l.TypeLine, l.OracleText, l.ColourIdentity, l.ColourIndicator)

	l.IsNyx = containsString(l.FrameEffects, "nyxtouched")
	l.IsCompanion = containsString(l.FrameEffects, "companion")
	l.IsCreature = l.Power != "" && l.Toughness != ""
	l.IsLegendary = strings.Contains(l.TypeLine, "Legendary")
	l.IsLand = strings.Contains(l.TypeLine, "Land")

	return l, nil
}

// resolveClass 在形状默认类别的基础上套用覆盖链。分支先后有含义：
// 背面判定优先于类别行关键字，关键字先于 frame effect。
func resolveClass(l *Layout, defaultClass Class) Class {
	class := defaultClass
	if defaultClass == ClassTransformFront && l.Face == FaceBack {
		class = ClassTransformBack
		if strings.Contains(l.TypeLine, "Land") {
			class = ClassIxalan
		}
	} else if defaultClass == ClassMDFCFront && l.Face == FaceBack {
		class = ClassMDFCBack
	} else if strings.Contains(l.TypeLine, "Planeswalker") {
		class = ClassPlaneswalker
	} else if strings.Contains(l.TypeLine, "Snow") {
		class = ClassSnow
	} else if containsString(l.Keywords, "Mutate") {
		class = ClassMutate
	} else if containsString(l.FrameEffects, "miracle") {
		class = ClassMiracle
	}
	return class
}

// determineFace 按卡名匹配双面卡的正反面。
func determineFace(rec *card.Record, cardName string) (Face, error) {
	if len(rec.Faces) < 2 {
		return FaceFront, fmt.Errorf("layout: 卡牌 %s 缺少双面数据", rec.Name)
	}
	if rec.Faces[0].Name == cardName {
		return FaceFront, nil
	}
	if rec.Faces[1].Name == cardName {
		return FaceBack, nil
	}
	return FaceFront, fmt.Errorf("layout: 卡名 %s 不匹配任何一面", cardName)
}

// normalizeOracle 把数据源中的数学负号统一为连字符。
func normalizeOracle(text string) string {
	return strings.ReplaceAll(text, "−", "-")
}

func firstFrameEffect(effects []string) string {
	if len(effects) == 0 {
		return ""
	}
	return effects[0]
}

func buildNormal(rec *card.Record, cardName string) (*Layout, Class, error) {
	return &Layout{
		Name:            rec.Name,
		ManaCost:        rec.ManaCost,
		TypeLine:        rec.TypeLine,
		OracleText:      normalizeOracle(rec.OracleText),
		FlavourText:     rec.FlavourText,
		Power:           rec.Power,
		Toughness:       rec.Toughness,
		ColourIndicator: rec.ColourIndicator,
	}, ClassNormal, nil
}

func buildTransform(rec *card.Record, cardName string) (*Layout, Class, error) {
	face, err := determineFace(rec, cardName)
	if err != nil {
		return nil, "", err
	}
	this, other := rec.Faces[face], rec.Faces[1-face]

	return &Layout{
		Face:               face,
		Name:               this.Name,
		ManaCost:           this.ManaCost,
		TypeLine:           this.TypeLine,
		OracleText:         normalizeOracle(this.OracleText),
		FlavourText:        this.FlavourText,
		Power:              this.Power,
		Toughness:          this.Toughness,
		ColourIndicator:    this.ColourIndicator,
		OtherFacePower:     other.Power,
		OtherFaceToughness: other.Toughness,
		TransformIcon:      firstFrameEffect(rec.FrameEffects),
	}, ClassTransformFront, nil
}

func buildMeld(rec *card.Record, cardName string) (*Layout, Class, error) {
	l, _, err := buildNormal(rec, cardName)
	if err != nil {
		return nil, "", err
	}

	// 融合卡自身是正面；卡名与融合结果一致时按背面渲染，
	// 否则把融合结果的攻防标注到本面。
	meldName := ""
	var meldInfo *card.PartInfo
	for _, part := range rec.AllParts {
		if part.Component == "meld_result" {
			meldName = part.Name
			meldInfo = part.Info
			break
		}
	}
	if l.Name == meldName {
		l.Face = FaceBack
	} else if meldInfo != nil {
		l.OtherFacePower = meldInfo.Power
		l.OtherFaceToughness = meldInfo.Toughness
	}
	l.TransformIcon = firstFrameEffect(rec.FrameEffects)
	return l, ClassTransformFront, nil
}

func buildModalDFC(rec *card.Record, cardName string) (*Layout, Class, error) {
	face, err := determineFace(rec, cardName)
	if err != nil {
		return nil, "", err
	}
	this, other := rec.Faces[face], rec.Faces[1-face]

	l := &Layout{
		Face:            face,
		Name:            this.Name,
		ManaCost:        this.ManaCost,
		TypeLine:        this.TypeLine,
		OracleText:      normalizeOracle(this.OracleText),
		FlavourText:     this.FlavourText,
		Power:           this.Power,
		Toughness:       this.Toughness,
		ColourIndicator: this.ColourIndicator,
		TransformIcon:   "modal_dfc",
	}

	// 底栏：另一面的名称框颜色、最后一个类别词与施放提示。
	l.OtherFaceTwins = frame.Select(
		other.ManaCost, other.TypeLine, other.OracleText,
		other.ColourIdentity, nil,
	).Twins

	words := strings.Split(other.TypeLine, " ")
	l.OtherFaceLeft = words[len(words)-1]
	l.OtherFaceRight = other.ManaCost

	if strings.Contains(other.TypeLine, "Land") {
		// 地面的提示取第一条以 {T} 开头的法术力异能，截到第一个句号。
		manaText := other.OracleText
		lines := strings.Split(other.OracleText, "\n")
		if len(lines) > 1 {
			for _, line := range lines {
				if strings.HasPrefix(line, "{T}") {
					manaText = line
					break
				}
			}
		}
		l.OtherFaceRight = strings.SplitN(manaText, ".", 2)[0] + "."
	}

	return l, ClassMDFCFront, nil
}

func buildAdventure(rec *card.Record, cardName string) (*Layout, Class, error) {
	if len(rec.Faces) < 2 {
		return nil, "", fmt.Errorf("layout: 出游卡 %s 缺少双面数据", rec.Name)
	}
	creature, adventure := rec.Faces[0], rec.Faces[1]

	return &Layout{
		Name:        creature.Name,
		ManaCost:    creature.ManaCost,
		TypeLine:    creature.TypeLine,
		OracleText:  creature.OracleText,
		FlavourText: creature.FlavourText,
		Power:       rec.Power,
		Toughness:   rec.Toughness,
		Adventure: &AdventureHalf{
			Name:       adventure.Name,
			ManaCost:   adventure.ManaCost,
			TypeLine:   adventure.TypeLine,
			OracleText: adventure.OracleText,
		},
	}, ClassAdventure, nil
}

var levelerPattern = regexp.MustCompile(
	`^([\s\S]*)\nLEVEL (\d*-\d*)\n(\d*/\d*)\n([\s\S]*)\n?LEVEL (\d*\+)\n(\d*/\d*)\n([\s\S]*)?$`,
)

func buildLeveler(rec *card.Record, cardName string) (*Layout, Class, error) {
	l, _, err := buildNormal(rec, cardName)
	if err != nil {
		return nil, "", err
	}

	m := levelerPattern.FindStringSubmatch(l.OracleText)
	if m == nil {
		return nil, "", fmt.Errorf("layout: 等级卡 %s 的规则文本不符合 LEVEL 段式", l.Name)
	}
	l.Leveler = &LevelerText{
		LevelUpText:          m[1],
		MiddleLevel:          m[2],
		MiddlePowerToughness: m[3],
		LevelsXYText:         m[4],
		BottomLevel:          m[5],
		BottomPowerToughness: m[6],
		LevelsZPlusText:      m[7],
	}
	return l, ClassLeveler, nil
}

func buildSaga(rec *card.Record, cardName string) (*Layout, Class, error) {
	l, _, err := buildNormal(rec, cardName)
	if err != nil {
		return nil, "", err
	}

	// 第一行是提示文本，其余每行去掉章节编号（长破折号之前的部分）。
	// 没有分隔符的行原样保留。
	lines := strings.Split(l.OracleText, "\n")
	if len(lines) > 1 {
		l.SagaLines = make([]string, 0, len(lines)-1)
		for _, line := range lines[1:] {
			if _, after, found := strings.Cut(line, " — "); found {
				line = after
			}
			l.SagaLines = append(l.SagaLines, line)
		}
	}
	return l, ClassSaga, nil
}

func buildPlanar(rec *card.Record, cardName string) (*Layout, Class, error) {
	return &Layout{
		Name:       rec.Name,
		TypeLine:   rec.TypeLine,
		OracleText: rec.OracleText,
	}, ClassPlanar, nil
}

func buildToken(rec *card.Record, cardName string) (*Layout, Class, error) {
	return &Layout{
		Name:        rec.Name,
		ManaCost:    rec.ManaCost,
		TypeLine:    rec.TypeLine,
		OracleText:  rec.OracleText,
		FlavourText: rec.FlavourText,
		Power:       rec.Power,
		Toughness:   rec.Toughness,
	}, ClassToken, nil
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
