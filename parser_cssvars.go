package impression

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSSVariables extracts custom properties from raw CSS text
// (:root { --name: value; } and any other rule declaring --* properties)
// and routes each declaration into the IR by name heuristics.
func ParseCSSVariables(data []byte) (*DesignSystem, error) {
	ds := NewDesignSystem()
	vars := lexCustomProperties(string(data))
	for _, name := range sortedKeys(vars) {
		ds.Colors.Variables[name] = vars[name]
		routeToken(ds, classifyByName(name), name, vars[name])
	}
	finishScales(ds)
	return ds, nil
}

// lexCustomProperties runs the CSS lexer over a stylesheet and collects
// --name: value declarations. Later declarations of the same name win,
// matching cascade order within a single sheet.
func lexCustomProperties(content string) map[string]string {
	vars := make(map[string]string)
	lexer := css.NewLexer(parse.NewInputString(content))

	var currentName string
	var currentVal []string
	inValue := false

	flush := func() {
		if currentName != "" && len(currentVal) > 0 {
			vars[currentName] = strings.TrimSpace(strings.Join(currentVal, ""))
		}
		currentName = ""
		currentVal = nil
		inValue = false
	}

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal.
			flush()
			break
		}
		s := string(text)

		switch {
		case strings.HasPrefix(s, "--") && !inValue:
			flush()
			currentName = s
		case tt == css.ColonToken && currentName != "" && !inValue:
			inValue = true
		case tt == css.SemicolonToken || tt == css.RightBraceToken:
			flush()
		case inValue:
			currentVal = append(currentVal, s)
		}
	}

	return vars
}

// GenerateCSSVariables renders the IR as a :root block of custom properties,
// using roles where present and ordinal slot names otherwise.
func GenerateCSSVariables(ds *DesignSystem) ([]byte, error) {
	var b strings.Builder
	b.WriteString(":root {\n")

	writeVar := func(name, value string) {
		b.WriteString("  --")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	}

	for i, tok := range ds.Colors.Palette {
		writeVar("color-"+tokenSlot(tok, i, sizeOrdinals), tok.Value)
	}
	for i, f := range ds.Typography.Families {
		name := "font-family"
		if f.Role != "" {
			name = "font-" + f.Role
		} else if i > 0 {
			name = "font-family-" + ordinalAt(sizeOrdinals, i)
		}
		writeVar(name, quoteFamily(f.Family))
	}
	for i, v := range ds.Typography.Scale {
		writeVar("font-size-"+ordinalAt(sizeOrdinals, i), v)
	}
	for i, v := range ds.Spacing.Scale {
		writeVar("space-"+ordinalAt(sizeOrdinals, i), v)
	}
	for i, tok := range ds.BorderRadius {
		writeVar("radius-"+strings.ToLower(tokenSlot(tok, i, radiusOrdinals)), tok.Value)
	}
	for i, tok := range ds.Shadows {
		writeVar("shadow-"+tokenSlot(tok, i, sizeOrdinals), tok.Value)
	}
	for i, v := range ds.Animations.Durations {
		writeVar("duration-"+strings.ToLower(ordinalAt(durationOrdinals, i)), v)
	}
	for i, v := range ds.Animations.Easings {
		writeVar("ease-"+ordinalAt(sizeOrdinals, i), v)
	}

	b.WriteString("}\n")
	return []byte(b.String()), nil
}

// quoteFamily quotes a font family name containing spaces.
func quoteFamily(family string) string {
	if strings.ContainsAny(family, " ") && !strings.HasPrefix(family, `"`) {
		return `"` + family + `"`
	}
	return family
}
