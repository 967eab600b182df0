package markup

import (
	"fmt"
	"regexp"

	"github.com/ByLCY/vellum/config"
)

var (
	phyrexianRe       = regexp.MustCompile(`^\{([WUBRG])/P\}$`)
	hybridRe          = regexp.MustCompile(`^\{([2WUBRGC])/([WUBRG])\}$`)
	phyrexianHybridRe = regexp.MustCompile(`^\{([WUBRG])/([WUBRG])/P\}$`)
	plainRe           = regexp.MustCompile(`^\{([WUBRG])\}$`)
)

// symbolColours returns one colour per glyph of the rendered symbol, in
// glyph order. The base map deliberately paints {B} with the colourless
// grey so the skull reads against a dark background; the saturated map
// keeps true black and is used where the symbol carries its own
// circle glyph. Do not merge the two maps.
func symbolColours(symbol string, glyphLen int, pal config.Palette) ([]config.Color, error) {
	base := map[string]config.Color{
		"W": pal.White,
		"U": pal.Blue,
		"B": pal.Colourless,
		"R": pal.Red,
		"G": pal.Green,
		"2": pal.Colourless,
		"C": pal.Colourless,
	}
	saturated := map[string]config.Color{
		"W": pal.White,
		"U": pal.Blue,
		"B": pal.Black,
		"R": pal.Red,
		"G": pal.Green,
		"2": pal.Colourless,
		"C": pal.Colourless,
	}

	switch symbol {
	case "{E}", "{CHAOS}", "{P}":
		return []config.Color{pal.Ink}, nil
	case "{S}":
		return []config.Color{pal.Colourless, pal.Ink, pal.Paper}, nil
	case "{Q}":
		return []config.Color{pal.Ink, pal.Paper}, nil
	}

	if m := phyrexianRe.FindStringSubmatch(symbol); m != nil {
		return []config.Color{saturated[m[1]], pal.Ink}, nil
	}

	if m := hybridRe.FindStringSubmatch(symbol); m != nil {
		colours := base
		if m[1] == "2" || m[1] == "C" {
			colours = saturated
		}
		return []config.Color{colours[m[2]], colours[m[1]], pal.Ink, pal.Ink}, nil
	}

	if m := phyrexianHybridRe.FindStringSubmatch(symbol); m != nil {
		return []config.Color{base[m[2]], base[m[1]], pal.Ink}, nil
	}

	if m := plainRe.FindStringSubmatch(symbol); m != nil {
		return []config.Color{base[m[1]], pal.Ink}, nil
	}

	// Generic numeric and variable symbols render as a coloured circle
	// with an overlaid figure.
	if glyphLen == 2 {
		return []config.Color{pal.Colourless, pal.Ink}, nil
	}

	return nil, fmt.Errorf("markup: no colour rule for symbol %q", symbol)
}
