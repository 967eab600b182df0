// Package markup compiles raw card text into styled spans. Brace-delimited
// symbol tokens are replaced with glyph runs from the symbol font, reminder
// text and ability words are italicised, and flavour text is italicised from
// its start offset onward. All offsets in this package count runes of the
// expanded text, never bytes of the input.
package markup

import (
	"strings"

	"github.com/ByLCY/vellum/config"
)

// SymbolRun records one expanded symbol: where its glyphs start in the
// expanded text and the colour of each glyph.
type SymbolRun struct {
	Index   int
	Colours []config.Color
}

// Range is a half-open rune interval [Start, End) of the expanded text.
type Range struct {
	Start int
	End   int
}

// Span is a maximal run of expanded text sharing one style. Spans tile
// the expanded text exactly, in order, with no gaps or overlaps.
type Span struct {
	Text   string       `json:"text"`
	Family string       `json:"family"`
	Italic bool         `json:"italic"`
	Colour config.Color `json:"colour"`
}

// Compiler holds the configuration tables used while compiling.
type Compiler struct {
	cfg *config.Config
}

// NewCompiler returns a compiler bound to cfg.
func NewCompiler(cfg *config.Config) *Compiler {
	return &Compiler{cfg: cfg}
}

// LocateSymbols expands every symbol token in input to its glyph run and
// returns the expanded text together with the located runs. An unmapped
// symbol token or one with no colour rule is an error; card text is
// finite and a miss means the symbol table needs a new entry.
func (c *Compiler) LocateSymbols(input string) (string, []SymbolRun, error) {
	tokens, err := scanTokens(input)
	if err != nil {
		return "", nil, err
	}

	var out []rune
	var runs []SymbolRun
	for _, tok := range tokens {
		if !tok.symbol {
			out = append(out, []rune(tok.value)...)
			continue
		}
		glyphs, ok := c.cfg.Symbols[tok.value]
		if !ok {
			return "", nil, &UnknownSymbolError{Symbol: tok.value}
		}
		glyphRunes := []rune(glyphs)
		colours, err := symbolColours(tok.value, len(glyphRunes), c.cfg.Palette)
		if err != nil {
			return "", nil, err
		}
		runs = append(runs, SymbolRun{Index: len(out), Colours: colours})
		out = append(out, glyphRunes...)
	}
	return string(out), runs, nil
}

// ExpandSymbols rewrites symbol tokens to glyph runs without tracking
// colours. Unmapped tokens pass through verbatim; this lenient form is
// for matching italic phrases against already-expanded text, where a
// miss should not abort the card.
func (c *Compiler) ExpandSymbols(input string) string {
	tokens, err := scanTokens(input)
	if err != nil {
		return input
	}
	var out strings.Builder
	for _, tok := range tokens {
		if tok.symbol {
			if glyphs, ok := c.cfg.Symbols[tok.value]; ok {
				out.WriteString(glyphs)
				continue
			}
		}
		out.WriteString(tok.value)
	}
	return out.String()
}

// LocateItalics finds every occurrence of every phrase in the expanded
// text and returns the matched intervals. Phrases containing a symbol
// token are expanded first so they line up with the expanded text.
// Matches of one phrase never overlap each other; matches of different
// phrases may.
func (c *Compiler) LocateItalics(expanded string, phrases []string) []Range {
	text := []rune(expanded)

	var ranges []Range
	for _, phrase := range phrases {
		if strings.Contains(phrase, "{") {
			phrase = c.ExpandSymbols(phrase)
		}
		needle := []rune(phrase)
		if len(needle) == 0 {
			continue
		}
		from := 0
		for {
			start := indexRunes(text, needle, from)
			if start < 0 {
				break
			}
			from = start + len(needle)
			ranges = append(ranges, Range{Start: start, End: from})
		}
	}
	return ranges
}

// GenerateItalics derives the italic phrases of a rules text: each
// parenthesised reminder clause, plus every configured ability word
// followed by an em dash. Nested parentheses are not a thing in card
// text, so the scan pairs each "(" with the nearest ")".
func (c *Compiler) GenerateItalics(text string) []string {
	var phrases []string

	rest := text
	for {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(rest[open+1:], ')')
		if closing < 0 {
			break
		}
		end := open + 1 + closing + 1
		phrases = append(phrases, rest[open:end])
		rest = rest[end:]
	}

	for _, word := range c.cfg.AbilityWords {
		phrases = append(phrases, word+" —")
	}
	return phrases
}

// BuildSpans assigns a style to every rune of the expanded text and
// coalesces equal neighbours into spans. Precedence per rune: a symbol
// glyph keeps its symbol colour, then flavour text (at or past
// flavourIndex, -1 for none) renders italic, then located italic
// intervals, then the plain body style. Carriage returns become line
// feeds first so interval offsets stay valid.
func (c *Compiler) BuildSpans(expanded string, symbols []SymbolRun, italics []Range, flavourIndex int, base config.Color) []Span {
	text := []rune(strings.ReplaceAll(expanded, "\r", "\n"))

	if len(text) == 0 {
		return []Span{{Family: c.cfg.Fonts.Body, Colour: base}}
	}

	symbolAt := make(map[int]config.Color)
	for _, run := range symbols {
		for i, colour := range run.Colours {
			symbolAt[run.Index+i] = colour
		}
	}

	italicAt := make([]bool, len(text))
	for _, r := range italics {
		for i := max(r.Start, 0); i < min(r.End, len(text)); i++ {
			italicAt[i] = true
		}
	}

	styleAt := func(i int) Span {
		if colour, ok := symbolAt[i]; ok {
			return Span{Family: c.cfg.Fonts.Symbol, Colour: colour}
		}
		if (flavourIndex >= 0 && i >= flavourIndex) || italicAt[i] {
			return Span{Family: c.cfg.Fonts.BodyItalic, Italic: true, Colour: base}
		}
		return Span{Family: c.cfg.Fonts.Body, Colour: base}
	}

	var spans []Span
	current := styleAt(0)
	start := 0
	for i := 1; i <= len(text); i++ {
		var next Span
		if i < len(text) {
			next = styleAt(i)
		}
		if i == len(text) || next != current {
			current.Text = string(text[start:i])
			spans = append(spans, current)
			current = next
			start = i
		}
	}
	return spans
}

// Format runs the whole pipeline: expand symbols, locate the italic
// phrases, and build the styled spans. flavourIndex is a rune offset
// into the expanded text, or -1 when the text has no flavour part.
func (c *Compiler) Format(input string, phrases []string, flavourIndex int, base config.Color) ([]Span, error) {
	expanded, runs, err := c.LocateSymbols(input)
	if err != nil {
		return nil, err
	}
	italics := c.LocateItalics(expanded, phrases)
	return c.BuildSpans(expanded, runs, italics, flavourIndex, base), nil
}

// indexRunes returns the first index at or after from where needle
// occurs in text, or -1.
func indexRunes(text, needle []rune, from int) int {
	for i := from; i+len(needle) <= len(text); i++ {
		match := true
		for j := range needle {
			if text[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
