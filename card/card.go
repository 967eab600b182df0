package card

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// 该包定义卡牌数据源的原始记录结构。字段形状与外部卡牌数据库的
// JSON 输出对齐；记录一经解码即视为只读输入。

// Record 是一张卡牌的原始记录。单面卡的文本字段直接生效，
// 多面卡的文本字段按 Faces 拆分。
type Record struct {
	Name            string        `json:"name"`
	Layout          string        `json:"layout"`
	ManaCost        string        `json:"mana_cost"`
	TypeLine        string        `json:"type_line"`
	OracleText      string        `json:"oracle_text"`
	FlavourText     string        `json:"flavor_text"`
	Power           string        `json:"power"`
	Toughness       string        `json:"toughness"`
	Rarity          string        `json:"rarity"`
	Artist          string        `json:"artist"`
	Set             string        `json:"set"`
	ColourIdentity  []string      `json:"color_identity"`
	ColourIndicator []string      `json:"color_indicator"`
	Keywords        []string      `json:"keywords"`
	FrameEffects    []string      `json:"frame_effects"`
	Faces           []Face        `json:"card_faces"`
	AllParts        []RelatedPart `json:"all_parts"`
}

// Face 是多面卡的一个印刷面。
type Face struct {
	Name            string   `json:"name"`
	ManaCost        string   `json:"mana_cost"`
	TypeLine        string   `json:"type_line"`
	OracleText      string   `json:"oracle_text"`
	FlavourText     string   `json:"flavor_text"`
	Power           string   `json:"power"`
	Toughness       string   `json:"toughness"`
	ColourIdentity  []string `json:"color_identity"`
	ColourIndicator []string `json:"color_indicator"`
}

// RelatedPart 描述与本卡相关联的其它卡（例如融合结果）。
type RelatedPart struct {
	Component string    `json:"component"`
	Name      string    `json:"name"`
	URI       string    `json:"uri"`
	Info      *PartInfo `json:"info"`
}

// PartInfo 是关联卡的补充数据，由数据源预先取回。
type PartInfo struct {
	Power     string `json:"power"`
	Toughness string `json:"toughness"`
}

// Decode 从 r 解码一条记录。
func Decode(r io.Reader) (*Record, error) {
	rec := &Record{}
	if err := json.NewDecoder(r).Decode(rec); err != nil {
		return nil, fmt.Errorf("card: 解析卡牌 JSON 失败: %w", err)
	}
	return rec, nil
}

// DecodeFile 从文件解码一条记录。
func DecodeFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("card: 无法打开卡牌文件 %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// ParseFileName 按 "Name (Artist).ext" 约定从美术文件名中取出
// 卡名与可选的画师名。
func ParseFileName(path string) (name, artist string) {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}

	open := strings.LastIndex(base, " (")
	closing := strings.LastIndex(base, ")")
	if open > 0 && closing > open {
		return base[:open], base[open+2 : closing]
	}
	return base, ""
}
