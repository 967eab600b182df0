package markup

import "fmt"

// UnknownSymbolError reports a symbol token with no entry in the symbol
// table. The token is preserved verbatim for the error message.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("markup: symbol %s has no glyph mapping", e.Symbol)
}
