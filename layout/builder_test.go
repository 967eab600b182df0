package layout

import (
	"strings"
	"testing"

	"github.com/ByLCY/vellum/card"
	"github.com/ByLCY/vellum/frame"
)

// TestBuildNormal 验证普通卡的文本字段、框架与派生标志。
func TestBuildNormal(t *testing.T) {
	rec := &card.Record{
		Name:       "Grizzly Bears",
		Layout:     "normal",
		ManaCost:   "{1}{G}",
		TypeLine:   "Creature — Bear",
		OracleText: "",
		Power:      "2",
		Toughness:  "2",
		Rarity:     "common",
		Artist:     "D. Alexander Gregory",
		Set:        "lea",
	}

	l, err := Build(rec, "")
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if l.Class != ClassNormal {
		t.Fatalf("普通卡类别应为 normal: got=%s", l.Class)
	}
	if !l.IsCreature || l.IsLegendary || l.IsLand {
		t.Fatalf("派生标志不符: %+v", l)
	}
	if l.Frame.Background != "G" || l.Frame.Pinlines != "G" || l.Frame.Twins != "G" {
		t.Fatalf("单绿框架不符: %+v", l.Frame)
	}
	if l.Rarity != "common" || l.Artist != "D. Alexander Gregory" || l.SetCode != "lea" {
		t.Fatalf("元数据未填充: %+v", l)
	}
}

// TestBuildBasicLand 验证基本地短路：不做框架选择，直接给固定类别。
func TestBuildBasicLand(t *testing.T) {
	rec := &card.Record{
		Name:   "Forest",
		Layout: "normal",
		Rarity: "common",
		Set:    "znr",
	}
	l, err := Build(rec, "")
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if l.Class != ClassBasic {
		t.Fatalf("基本地类别应为 basic: got=%s", l.Class)
	}
	if l.Frame != (frame.Layers{}) {
		t.Fatalf("基本地不应做框架选择: %+v", l.Frame)
	}
	if l.SetCode != "znr" {
		t.Fatalf("系列代码未填充: %q", l.SetCode)
	}
}

// TestBuildUnknownShape 验证未知形状报错。
func TestBuildUnknownShape(t *testing.T) {
	if _, err := Build(&card.Record{Name: "X", Layout: "scheme"}, ""); err == nil {
		t.Fatalf("未知形状应报错")
	}
	if _, err := Build(nil, ""); err == nil {
		t.Fatalf("空记录应报错")
	}
}

// TestResolveClassOverrides 验证类别覆盖链的各分支。
func TestResolveClassOverrides(t *testing.T) {
	cases := []struct {
		name string
		rec  *card.Record
		want Class
	}{
		{
			name: "鹏洛客",
			rec: &card.Record{
				Name: "P", Layout: "normal",
				TypeLine: "Legendary Planeswalker — Jace", ManaCost: "{1}{U}",
			},
			want: ClassPlaneswalker,
		},
		{
			name: "雪境",
			rec: &card.Record{
				Name: "S", Layout: "normal",
				TypeLine: "Snow Creature — Yeti", ManaCost: "{2}{R}",
				Power: "3", Toughness: "3",
			},
			want: ClassSnow,
		},
		{
			name: "变容关键字",
			rec: &card.Record{
				Name: "M", Layout: "normal",
				TypeLine: "Creature — Dinosaur", ManaCost: "{2}{G}",
				Power: "4", Toughness: "4",
				Keywords: []string{"Mutate"},
			},
			want: ClassMutate,
		},
		{
			name: "神迹框架效果",
			rec: &card.Record{
				Name: "W", Layout: "normal",
				TypeLine: "Sorcery", ManaCost: "{4}{W}{W}",
				FrameEffects: []string{"miracle"},
			},
			want: ClassMiracle,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Build(tc.rec, "")
			if err != nil {
				t.Fatalf("布局计算失败: %v", err)
			}
			if l.Class != tc.want {
				t.Fatalf("类别覆盖不符: got=%s want=%s", l.Class, tc.want)
			}
		})
	}
}

func transformRecord() *card.Record {
	return &card.Record{
		Name:           "Delver of Secrets // Insectile Aberration",
		Layout:         "transform",
		ColourIdentity: []string{"U"},
		FrameEffects:   []string{"sunmoondfc"},
		Faces: []card.Face{
			{
				Name: "Delver of Secrets", ManaCost: "{U}",
				TypeLine: "Creature — Human Wizard",
				Power:    "1", Toughness: "1",
			},
			{
				Name:     "Insectile Aberration",
				TypeLine: "Creature — Human Insect",
				Power:    "3", Toughness: "2",
				ColourIndicator: []string{"U"},
			},
		},
	}
}

// TestBuildTransform 验证双面卡按卡名选面以及背面类别覆盖。
func TestBuildTransform(t *testing.T) {
	front, err := Build(transformRecord(), "Delver of Secrets")
	if err != nil {
		t.Fatalf("正面布局失败: %v", err)
	}
	if front.Face != FaceFront || front.Class != ClassTransformFront {
		t.Fatalf("正面判定不符: face=%d class=%s", front.Face, front.Class)
	}
	if front.OtherFacePower != "3" || front.OtherFaceToughness != "2" {
		t.Fatalf("背面攻防未标注: %+v", front)
	}
	if front.TransformIcon != "sunmoondfc" {
		t.Fatalf("变身图标不符: %q", front.TransformIcon)
	}

	back, err := Build(transformRecord(), "Insectile Aberration")
	if err != nil {
		t.Fatalf("背面布局失败: %v", err)
	}
	if back.Face != FaceBack || back.Class != ClassTransformBack {
		t.Fatalf("背面判定不符: face=%d class=%s", back.Face, back.Class)
	}
	// 背面无费用，颜色指示优先于颜色标识。
	if back.Frame.Pinlines != "U" {
		t.Fatalf("背面应按颜色指示取色: %+v", back.Frame)
	}
}

// TestBuildTransformLandBack 验证变身背面为地时切到依夏兰类别。
func TestBuildTransformLandBack(t *testing.T) {
	rec := transformRecord()
	rec.Faces[1].TypeLine = "Land"
	rec.Faces[1].Power, rec.Faces[1].Toughness = "", ""
	rec.Faces[1].ColourIndicator = nil

	l, err := Build(rec, "Insectile Aberration")
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if l.Class != ClassIxalan {
		t.Fatalf("地背面类别应为 ixalan: got=%s", l.Class)
	}
}

// TestBuildTransformFaceErrors 验证缺面与卡名不匹配的报错。
func TestBuildTransformFaceErrors(t *testing.T) {
	if _, err := Build(&card.Record{Name: "T", Layout: "transform"}, "T"); err == nil {
		t.Fatalf("缺少双面数据应报错")
	}
	if _, err := Build(transformRecord(), "No Such Face"); err == nil {
		t.Fatalf("卡名不匹配任何一面应报错")
	}
}

// TestBuildModalDFC 验证模式双面卡的底栏字段。
func TestBuildModalDFC(t *testing.T) {
	rec := &card.Record{
		Name:   "Emeria's Call // Emeria, Shattered Skyclave",
		Layout: "modal_dfc",
		Faces: []card.Face{
			{
				Name: "Emeria's Call", ManaCost: "{4}{W}{W}{W}",
				TypeLine:       "Sorcery",
				ColourIdentity: []string{"W"},
			},
			{
				Name:           "Emeria, Shattered Skyclave",
				TypeLine:       "Land",
				OracleText:     "As this land enters, you may pay 3 life.\n{T}: Add {W}. It hurts.",
				ColourIdentity: []string{"W"},
			},
		},
	}

	l, err := Build(rec, "Emeria's Call")
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if l.Class != ClassMDFCFront {
		t.Fatalf("正面类别应为 mdfc_front: got=%s", l.Class)
	}
	if l.TransformIcon != "modal_dfc" {
		t.Fatalf("模式双面卡图标固定: %q", l.TransformIcon)
	}
	// 另一面横置产单色白，名称框随产色。
	if l.OtherFaceTwins != frame.White {
		t.Fatalf("另一面名称框应随产色: %q", l.OtherFaceTwins)
	}
	if l.OtherFaceLeft != "Land" {
		t.Fatalf("底栏左侧应为类别行末词: %q", l.OtherFaceLeft)
	}
	// 地面提示取第一条 {T} 异能并截到第一个句号。
	if l.OtherFaceRight != "{T}: Add {W}." {
		t.Fatalf("底栏右侧提示不符: %q", l.OtherFaceRight)
	}

	back, err := Build(rec, "Emeria, Shattered Skyclave")
	if err != nil {
		t.Fatalf("背面布局失败: %v", err)
	}
	if back.Class != ClassMDFCBack {
		t.Fatalf("背面类别应为 mdfc_back: got=%s", back.Class)
	}
	// 背面底栏提示非地面，用另一面的法术力费用。
	if back.OtherFaceRight != "{4}{W}{W}{W}" {
		t.Fatalf("背面底栏右侧应为正面费用: %q", back.OtherFaceRight)
	}
}

// TestBuildAdventure 验证出游卡主体与左下半区的拆分。
func TestBuildAdventure(t *testing.T) {
	rec := &card.Record{
		Name:   "Brazen Borrower // Petty Theft",
		Layout: "adventure",
		Power:  "3", Toughness: "1",
		Faces: []card.Face{
			{
				Name: "Brazen Borrower", ManaCost: "{1}{U}{U}",
				TypeLine:   "Creature — Faerie Rogue",
				OracleText: "Flash\nFlying",
			},
			{
				Name: "Petty Theft", ManaCost: "{1}{U}",
				TypeLine:   "Instant — Adventure",
				OracleText: "Return target nonland permanent an opponent controls to its owner's hand.",
			},
		},
	}

	l, err := Build(rec, "")
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if l.Class != ClassAdventure {
		t.Fatalf("出游卡类别不符: got=%s", l.Class)
	}
	if l.Name != "Brazen Borrower" || l.Power != "3" || l.Toughness != "1" {
		t.Fatalf("主体字段不符: %+v", l)
	}
	if l.Adventure == nil || l.Adventure.Name != "Petty Theft" || l.Adventure.ManaCost != "{1}{U}" {
		t.Fatalf("出游半区不符: %+v", l.Adventure)
	}
}

// TestBuildLeveler 验证 LEVEL 段式拆分与不符合段式的报错。
func TestBuildLeveler(t *testing.T) {
	rec := &card.Record{
		Name:     "Kargan Dragonlord",
		Layout:   "leveler",
		ManaCost: "{R}",
		TypeLine: "Creature — Human Warrior",
		Power:    "2", Toughness: "2",
		OracleText: "Level up {R} ({R}: Put a level counter on this. Level up only as a sorcery.)\n" +
			"LEVEL 4-7\n4/4\nFlying\n" +
			"LEVEL 8+\n8/8\nFlying, trample\n{R}: Kargan Dragonlord gets +1/+0 until end of turn.",
	}

	l, err := Build(rec, "")
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if l.Class != ClassLeveler || l.Leveler == nil {
		t.Fatalf("等级卡拆分缺失: %+v", l)
	}
	lv := l.Leveler
	if lv.MiddleLevel != "4-7" || lv.MiddlePowerToughness != "4/4" {
		t.Fatalf("中段不符: %+v", lv)
	}
	if lv.BottomLevel != "8+" || lv.BottomPowerToughness != "8/8" {
		t.Fatalf("末段不符: %+v", lv)
	}
	if !strings.HasPrefix(lv.LevelUpText, "Level up {R}") {
		t.Fatalf("升级文本不符: %q", lv.LevelUpText)
	}
	if !strings.Contains(lv.LevelsZPlusText, "trample") {
		t.Fatalf("末段文本不符: %q", lv.LevelsZPlusText)
	}

	rec.OracleText = "No levels here."
	if _, err := Build(rec, ""); err == nil {
		t.Fatalf("不符合 LEVEL 段式应报错")
	}
}

// TestBuildSaga 验证章节行去编号且无分隔符的行原样保留。
func TestBuildSaga(t *testing.T) {
	rec := &card.Record{
		Name:     "History of Benalia",
		Layout:   "saga",
		ManaCost: "{1}{W}{W}",
		TypeLine: "Enchantment — Saga",
		OracleText: "(As this Saga enters and after your draw step, add a lore counter.)\n" +
			"I, II — Create a 2/2 white Knight creature token with vigilance.\n" +
			"III — Knights you control get +2/+1 until end of turn.\n" +
			"Sacrifice this Saga.",
	}

	l, err := Build(rec, "")
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if l.Class != ClassSaga {
		t.Fatalf("传纪类别不符: got=%s", l.Class)
	}
	want := []string{
		"Create a 2/2 white Knight creature token with vigilance.",
		"Knights you control get +2/+1 until end of turn.",
		"Sacrifice this Saga.",
	}
	if len(l.SagaLines) != len(want) {
		t.Fatalf("章节行数不符: %v", l.SagaLines)
	}
	for i := range want {
		if l.SagaLines[i] != want[i] {
			t.Fatalf("章节行 %d 不符: got=%q want=%q", i, l.SagaLines[i], want[i])
		}
	}
}

// TestBuildMeld 验证融合卡的正反面判定与结果攻防标注。
func TestBuildMeld(t *testing.T) {
	rec := &card.Record{
		Name:     "Gisela, the Broken Blade",
		Layout:   "meld",
		ManaCost: "{2}{W}{W}",
		TypeLine: "Legendary Creature — Angel Horror",
		Power:    "4", Toughness: "3",
		AllParts: []card.RelatedPart{
			{Component: "meld_part", Name: "Bruna, the Fading Light"},
			{
				Component: "meld_result", Name: "Brisela, Voice of Nightmares",
				Info: &card.PartInfo{Power: "9", Toughness: "10"},
			},
		},
	}

	l, err := Build(rec, "")
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if l.Face != FaceFront {
		t.Fatalf("融合部件应为正面: face=%d", l.Face)
	}
	if l.OtherFacePower != "9" || l.OtherFaceToughness != "10" {
		t.Fatalf("融合结果攻防未标注: %+v", l)
	}

	rec.Name = "Brisela, Voice of Nightmares"
	result, err := Build(rec, "")
	if err != nil {
		t.Fatalf("融合结果布局失败: %v", err)
	}
	if result.Face != FaceBack {
		t.Fatalf("融合结果应按背面渲染: face=%d", result.Face)
	}
}

// TestNormalizeOracle 验证数学负号统一为连字符。
func TestNormalizeOracle(t *testing.T) {
	rec := &card.Record{
		Name: "N", Layout: "normal", ManaCost: "{3}{B}",
		TypeLine:   "Legendary Planeswalker — Liliana",
		OracleText: "−2: Target creature gets −X/−X.",
	}
	l, err := Build(rec, "")
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if l.OracleText != "-2: Target creature gets -X/-X." {
		t.Fatalf("负号未归一: %q", l.OracleText)
	}
}
