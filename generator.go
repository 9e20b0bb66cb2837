package impression

import (
	"fmt"
	"strconv"
)

// GenerateFunc maps the canonical IR into one external format's bytes.
// Generators are pure readers of the IR.
type GenerateFunc func(ds *DesignSystem) ([]byte, error)

// generators is the static dispatch table; one entry per supported format.
var generators = map[Format]GenerateFunc{
	FormatImpression:      GenerateImpression,
	FormatW3C:             GenerateW3C,
	FormatStyleDictionary: GenerateStyleDictionary,
	FormatFigma:           GenerateFigma,
	FormatTailwind:        GenerateTailwind,
	FormatCSSVariables:    GenerateCSSVariables,
	FormatShadcn:          GenerateShadcn,
}

// Generate renders the IR in the given format.
func Generate(format Format, ds *DesignSystem) ([]byte, error) {
	fn, ok := generators[format]
	if !ok {
		return nil, fmt.Errorf("no generator registered for format %q", format)
	}
	return fn(ds)
}

// Ordinal slot tables. Downstream tools (Tailwind, shadcn) expect these
// exact semantic slot names, so the tables are a compatibility contract:
// do not reorder or rename entries. Because slots are assigned by position,
// generator output is not stable under reordering of the source palette.
var (
	sizeOrdinals     = []string{"xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl", "7xl", "8xl", "9xl"}
	radiusOrdinals   = []string{"sm", "DEFAULT", "md", "lg", "xl", "2xl", "3xl", "full"}
	durationOrdinals = []string{"fast", "normal", "DEFAULT", "slow", "slower"}
	colorOrdinals    = []string{"primary", "secondary", "accent", "neutral", "muted", "info", "success", "warning", "error"}
	screenOrdinals   = []string{"sm", "md", "lg", "xl", "2xl"}
)

// ordinalAt returns the i-th slot name, falling back to a numbered suffix
// past the end of the table.
func ordinalAt(table []string, i int) string {
	if i < len(table) {
		return table[i]
	}
	return table[len(table)-1] + "-" + strconv.Itoa(i-len(table)+2)
}

// tokenSlot names a token: its role when present, otherwise the positional
// slot from the given ordinal table.
func tokenSlot(tok Token, i int, table []string) string {
	if tok.Role != "" {
		return tok.Role
	}
	return ordinalAt(table, i)
}
