package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/vellum/card"
	"github.com/ByLCY/vellum/config"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/markup"
	"github.com/ByLCY/vellum/render"
	canvasrender "github.com/ByLCY/vellum/render/canvas"
	"github.com/ByLCY/vellum/template"
	"github.com/ByLCY/vellum/textfit"
)

func main() {
	cardPath := flag.String("card", "", "卡牌 JSON 文件路径")
	artPath := flag.String("art", "", "美术文件路径，按 \"Name (Artist).ext\" 解析卡名与画师")
	cardName := flag.String("name", "", "卡名，双面卡用于选定渲染的一面")
	configPath := flag.String("config", "", "配置 TOML 路径，省略时使用内置配置")
	templateName := flag.String("template", "", "备选模板名，省略时使用类别默认模板")
	debugPath := flag.String("debug", "", "布局调试 JSON 输出路径")
	outputPath := flag.String("render", "", "PDF 校样输出路径，省略时只做布局")
	fontDir := flag.String("font-dir", "", "字体目录，文件名需与配置中的字体族一致")
	flag.Parse()

	if *cardPath == "" {
		log.Fatal("必须通过 -card 指定卡牌 JSON 文件")
	}

	if err := run(*cardPath, *artPath, *cardName, *configPath, *templateName, *debugPath, *outputPath, *fontDir); err != nil {
		log.Fatalf("生成卡面失败: %v", err)
	}
}

// run 串联配置加载、布局计算、模板选择与可选的校样渲染。
func run(cardPath, artPath, cardName, configPath, templateName, debugPath, outputPath, fontDir string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	rec, err := card.DecodeFile(cardPath)
	if err != nil {
		return err
	}

	artist := rec.Artist
	if artPath != "" {
		name, fileArtist := card.ParseFileName(artPath)
		if cardName == "" {
			cardName = name
		}
		if fileArtist != "" {
			artist = fileArtist
		}
	}

	l, err := layout.Build(rec, cardName)
	if err != nil {
		return err
	}
	l.Artist = artist

	tmpl, err := template.Select(l.Class, templateName)
	if err != nil {
		return err
	}
	template.Customize(tmpl, l)

	if debugPath != "" {
		if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(l, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	log.Printf("卡名 %s：类别 %s，模板 %s，框架 %s/%s/%s",
		l.Name, l.Class, tmpl,
		l.Frame.Background, l.Frame.Pinlines, l.Frame.Twins)

	if outputPath == "" {
		return nil
	}

	r := canvasrender.NewRenderer(canvasrender.Options{Fonts: fontResources(cfg, fontDir)})
	proof, err := buildProof(cfg, r, l, tmpl)
	if err != nil {
		return err
	}

	pdfBytes, err := r.Render([]*render.Card{proof})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

// fontResources 按配置的字体族名从字体目录映射 TTF 文件。
func fontResources(cfg *config.Config, fontDir string) map[string]canvasrender.Resource {
	if fontDir == "" {
		return nil
	}
	out := map[string]canvasrender.Resource{}
	for _, family := range []string{
		cfg.Fonts.Body, cfg.Fonts.BodyItalic, cfg.Fonts.Symbol,
		cfg.Fonts.Title, cfg.Fonts.Expansion,
	} {
		if family == "" {
			continue
		}
		out[family] = canvasrender.Resource{Path: filepath.Join(fontDir, family+".ttf")}
	}
	return out
}

// buildProof 把布局结果落到画布图层上：写入各文本区域并执行
// 字号适配，返回可渲染的卡面。
func buildProof(cfg *config.Config, r *canvasrender.Renderer, l *layout.Layout, tmpl string) (*render.Card, error) {
	compiler := markup.NewCompiler(cfg)

	manaLayer := r.NewTextLayer("mana_cost", cfg.Fonts.Symbol, cfg.FontSizes.ManaCost, template.Area(template.AreaManaCost))
	nameLayer := r.NewTextLayer("name", cfg.Fonts.Title, cfg.FontSizes.Name, template.Area(template.AreaName))
	typeLayer := r.NewTextLayer("type_line", cfg.Fonts.Title, cfg.FontSizes.TypeLine, template.Area(template.AreaTypeLine))
	expansionLayer := r.NewTextLayer("expansion", cfg.Fonts.Expansion, cfg.FontSizes.Expansion, template.Area(template.AreaExpansion))
	rulesLayer := r.NewTextLayer("rules", cfg.Fonts.Body, cfg.FontSizes.Rules, template.Area(template.AreaRules))
	artistLayer := r.NewTextLayer("artist", cfg.Fonts.Body, cfg.FontSizes.Artist, template.Area(template.AreaArtist))

	rulesRef := r.NewReferenceLayer("rules_reference", template.Area(template.AreaRules))
	ptRef := r.NewReferenceLayer("pt_reference", template.Area(template.AreaPT))
	ptTopRef := r.NewReferenceLayer("pt_top_reference", template.Area(template.AreaPTTop))

	mana := &textfit.BasicFormattedTextField{
		Layer:    manaLayer,
		Text:     l.ManaCost,
		Colour:   cfg.Palette.Ink,
		Size:     cfg.FontSizes.ManaCost,
		Justify:  textfit.JustifyRight,
		Compiler: compiler,
	}
	if err := mana.Apply(cfg); err != nil {
		return nil, err
	}

	name := &textfit.ScaledTextField{
		TextField: textfit.TextField{
			Layer:  nameLayer,
			Text:   l.Name,
			Colour: cfg.Palette.Ink,
			Font:   cfg.Fonts.Title,
			Size:   cfg.FontSizes.Name,
		},
		Reference: manaLayer,
	}
	if err := name.Apply(cfg); err != nil {
		return nil, err
	}

	expansion := &textfit.ExpansionSymbolField{
		Layer:  expansionLayer,
		Glyph:  cfg.ExpansionGlyph(l.SetCode),
		Rarity: l.Rarity,
	}
	if err := expansion.Apply(cfg); err != nil {
		return nil, err
	}

	typeLine := &textfit.ScaledTextField{
		TextField: textfit.TextField{
			Layer:  typeLayer,
			Text:   l.TypeLine,
			Colour: cfg.Palette.Ink,
			Font:   cfg.Fonts.Title,
			Size:   cfg.FontSizes.TypeLine,
		},
		Reference: expansionLayer,
	}
	if err := typeLine.Apply(cfg); err != nil {
		return nil, err
	}

	centred := textfit.ShouldCentreRules(l.OracleText, l.FlavourText)
	area := textfit.FormattedTextArea{
		FormattedTextField: textfit.FormattedTextField{
			Layer:       rulesLayer,
			Text:        l.OracleText,
			Colour:      cfg.Palette.Ink,
			FlavourText: l.FlavourText,
			IsCentred:   centred,
			Compiler:    compiler,
		},
		Reference: rulesRef,
	}
	layers := []textfit.Layer{rulesRef, manaLayer, nameLayer, expansionLayer, typeLayer, rulesLayer, artistLayer}

	if l.IsCreature {
		creature := &textfit.CreatureFormattedTextArea{
			FormattedTextArea: area,
			PTReference:       ptRef,
			PTTopReference:    ptTopRef,
		}
		if err := creature.Apply(cfg); err != nil {
			return nil, err
		}

		ptLayer := r.NewTextLayer("pt", cfg.Fonts.Title, cfg.FontSizes.PowerToughness, template.Area(template.AreaPT))
		pt := &textfit.TextField{
			Layer:  ptLayer,
			Text:   l.Power + "/" + l.Toughness,
			Colour: cfg.Palette.Ink,
			Font:   cfg.Fonts.Title,
			Size:   cfg.FontSizes.PowerToughness,
		}
		if err := pt.Apply(cfg); err != nil {
			return nil, err
		}
		layers = append(layers, ptRef, ptTopRef, ptLayer)
	} else {
		if err := area.Apply(cfg); err != nil {
			return nil, err
		}
	}

	artist := &textfit.TextField{
		Layer:  artistLayer,
		Text:   l.Artist,
		Colour: cfg.Palette.Paper,
		Font:   cfg.Fonts.Body,
		Size:   cfg.FontSizes.Artist,
	}
	if err := artist.Apply(cfg); err != nil {
		return nil, err
	}

	return &render.Card{Name: l.Name, Template: tmpl, Layers: layers}, nil
}
