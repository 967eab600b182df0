package markup

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// textLexer splits card text into symbol tokens and plain runs.
	// A Symbol is a brace-delimited token up to the nearest closing
	// brace on the same line; a dangling "{" falls through as Brace
	// and is treated as plain text.
	textLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Symbol", Pattern: `\{[^}\n]*\}`},
		{Name: "Text", Pattern: `[^{]+`},
		{Name: "Brace", Pattern: `\{`},
	})

	symbolTokenType = mustTokenType("Symbol")
)

// token is one lexical unit of card text.
type token struct {
	symbol bool
	value  string
}

// scanTokens performs a single forward pass over input and returns the
// token sequence in source order. Offsets into the expanded text are
// assigned later, while splicing glyphs, so they never drift.
func scanTokens(input string) ([]token, error) {
	lx, err := textLexer.LexString("", input)
	if err != nil {
		return nil, fmt.Errorf("markup: lex card text: %w", err)
	}

	var tokens []token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, fmt.Errorf("markup: lex card text: %w", err)
		}
		if tok.EOF() {
			break
		}
		tokens = append(tokens, token{
			symbol: tok.Type == symbolTokenType,
			value:  tok.Value,
		})
	}
	return tokens, nil
}

func mustTokenType(name string) lexer.TokenType {
	symbols := textLexer.Symbols()
	tt, ok := symbols[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
