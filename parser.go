package impression

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ParseFunc maps one external format's bytes into the canonical IR.
type ParseFunc func(data []byte) (*DesignSystem, error)

// parsers is the static dispatch table; one entry per supported format.
// Keeping the table closed over the Format enum preserves exhaustiveness
// that a string switch would lose.
var parsers = map[Format]ParseFunc{
	FormatImpression:      ParseImpression,
	FormatW3C:             ParseW3C,
	FormatStyleDictionary: ParseStyleDictionary,
	FormatFigma:           ParseFigma,
	FormatTailwind:        ParseTailwind,
	FormatCSSVariables:    ParseCSSVariables,
	FormatShadcn:          ParseShadcn,
}

// Parse converts data in the given format into the IR.
func Parse(format Format, data []byte) (*DesignSystem, error) {
	fn, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser registered for format %q", format)
	}
	return fn(data)
}

// sortedKeys returns a map's keys in lexical order. Document walks must
// visit siblings deterministically: token arrays keep insertion order, and
// Go's randomized map iteration would otherwise leak into palette order,
// ordinal slot names, and snapshot content hashes.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TokenKind classifies a leaf value during a parser walk.
type TokenKind string

const (
	KindColor         TokenKind = "color"
	KindDimension     TokenKind = "dimension"
	KindFontFamily    TokenKind = "fontFamily"
	KindFontWeight    TokenKind = "fontWeight"
	KindLineHeight    TokenKind = "lineHeight"
	KindLetterSpacing TokenKind = "letterSpacing"
	KindDuration      TokenKind = "duration"
	KindEasing        TokenKind = "cubicBezier"
	KindShadow        TokenKind = "shadow"
	KindRadius        TokenKind = "borderRadius"
	KindSpacing       TokenKind = "spacing"
	KindFontSize      TokenKind = "fontSize"
	KindBreakpoint    TokenKind = "breakpoint"
	KindOther         TokenKind = "other"
)

// classifyByType maps explicit type tags (W3C, Style Dictionary, Tokens
// Studio) to a TokenKind.
func classifyByType(typeTag string) TokenKind {
	switch strings.ToLower(typeTag) {
	case "color":
		return KindColor
	case "dimension", "sizing", "size", "spacing", "space":
		return KindDimension
	case "fontfamily", "fontfamilies":
		return KindFontFamily
	case "fontweight", "fontweights":
		return KindFontWeight
	case "lineheight", "lineheights":
		return KindLineHeight
	case "letterspacing":
		return KindLetterSpacing
	case "duration":
		return KindDuration
	case "cubicbezier":
		return KindEasing
	case "shadow", "boxshadow":
		return KindShadow
	case "borderradius":
		return KindRadius
	case "fontsize", "fontsizes":
		return KindFontSize
	}
	return KindOther
}

// classifyByName is the best-effort fallback for formats without type tags.
// Substring heuristics are necessarily imprecise; callers treat the result
// as a categorization hint, not a guarantee.
func classifyByName(name string) TokenKind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "color") || strings.Contains(n, "colour") ||
		strings.Contains(n, "background") || strings.Contains(n, "foreground") ||
		strings.Contains(n, "fill") || strings.Contains(n, "stroke"):
		return KindColor
	case strings.Contains(n, "radius") || strings.Contains(n, "rounded"):
		return KindRadius
	case strings.Contains(n, "shadow") || strings.Contains(n, "elevation"):
		return KindShadow
	case strings.Contains(n, "font-family") || strings.Contains(n, "fontfamily") ||
		strings.Contains(n, "typeface"):
		return KindFontFamily
	case strings.Contains(n, "font-weight") || strings.Contains(n, "fontweight") ||
		strings.Contains(n, "weight"):
		return KindFontWeight
	case strings.Contains(n, "line-height") || strings.Contains(n, "lineheight") ||
		strings.Contains(n, "leading"):
		return KindLineHeight
	case strings.Contains(n, "letter-spacing") || strings.Contains(n, "letterspacing") ||
		strings.Contains(n, "tracking"):
		return KindLetterSpacing
	case strings.Contains(n, "duration") || strings.Contains(n, "speed"):
		return KindDuration
	case strings.Contains(n, "ease") || strings.Contains(n, "easing") ||
		strings.Contains(n, "timing"):
		return KindEasing
	case strings.Contains(n, "font-size") || strings.Contains(n, "fontsize") ||
		strings.Contains(n, "text-") && strings.Contains(n, "size"):
		return KindFontSize
	case strings.Contains(n, "breakpoint") || strings.Contains(n, "screen"):
		return KindBreakpoint
	case strings.Contains(n, "space") || strings.Contains(n, "spacing") ||
		strings.Contains(n, "gap") || strings.Contains(n, "padding") ||
		strings.Contains(n, "margin") || strings.Contains(n, "inset"):
		return KindSpacing
	}
	return KindOther
}

// routeToken places a classified leaf value into the matching IR bucket.
// Non-color values that fail classification land nowhere; color-classified
// values that are not reducible to hex are dropped rather than errored.
func routeToken(ds *DesignSystem, kind TokenKind, name, value string) {
	switch kind {
	case KindColor:
		ds.AddPaletteColor(value, roleFromName(name))
	case KindDimension, KindSpacing:
		if _, ok := ParseDimension(value); ok {
			ds.Spacing.Scale = addUnique(ds.Spacing.Scale, value)
		}
	case KindFontSize:
		if _, ok := ParseDimension(value); ok {
			ds.Typography.Scale = addUnique(ds.Typography.Scale, value)
		}
	case KindFontFamily:
		addFontFamily(ds, value, roleFromName(name))
	case KindFontWeight:
		ds.Typography.Weights = addUnique(ds.Typography.Weights, value)
	case KindLineHeight:
		ds.Typography.LineHeights = addUniqueToken(ds.Typography.LineHeights, Token{Value: value, Role: roleFromName(name)})
	case KindLetterSpacing:
		ds.Typography.LetterSpacing = addUniqueToken(ds.Typography.LetterSpacing, Token{Value: value, Role: roleFromName(name)})
	case KindDuration:
		ds.Animations.Durations = addUnique(ds.Animations.Durations, value)
	case KindEasing:
		ds.Animations.Easings = addUnique(ds.Animations.Easings, value)
	case KindShadow:
		for _, layer := range ParseShadowLayers(value) {
			ds.Shadows = addUniqueToken(ds.Shadows, Token{Value: layer, Role: roleFromName(name)})
		}
	case KindRadius:
		ds.BorderRadius = addUniqueToken(ds.BorderRadius, Token{Value: value, Role: roleFromName(name)})
	case KindBreakpoint:
		if n, ok := ParseDimension(value); ok {
			ds.Breakpoints.Detected = append(ds.Breakpoints.Detected, n)
		}
	}
}

// roleFromName derives a semantic role tag from the last path segment of a
// token name, normalized to kebab-case.
func roleFromName(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '/' || r == ':'
	})
	last := parts[len(parts)-1]
	last = strings.TrimPrefix(last, "--")
	return strings.ToLower(strings.ReplaceAll(last, "_", "-"))
}

// addFontFamily records a font stack once, keyed by its first family.
func addFontFamily(ds *DesignSystem, family, role string) {
	family = strings.Trim(strings.TrimSpace(family), `"'`)
	if family == "" {
		return
	}
	for _, f := range ds.Typography.Families {
		if strings.EqualFold(f.Family, family) {
			return
		}
	}
	ds.Typography.Families = append(ds.Typography.Families, FontFamily{Family: family, Role: role})
}

// shadowLayerRe matches one layer of the CSS box-shadow grammar:
// inset? offsetX offsetY blur spread? color. Lengths accept any unit and
// the color accepts hex, rgb()/rgba()/hsl()/hsla(), or a keyword.
var shadowLayerRe = regexp.MustCompile(
	`(?i)^\s*(inset\s+)?(-?[\d.]+\w*)\s+(-?[\d.]+\w*)(?:\s+(-?[\d.]+\w*))?(?:\s+(-?[\d.]+\w*))?\s*((?:#[0-9a-f]{3,8})|(?:rgba?\([^)]*\))|(?:hsla?\([^)]*\))|(?:[a-z]+))?\s*$`)

// ParseShadowLayers splits a CSS box-shadow value into its comma-separated
// layers and normalizes each layer it can parse. A malformed layer degrades
// to its raw string rather than failing the whole parse.
func ParseShadowLayers(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return nil
	}
	var layers []string
	for _, raw := range splitShadowList(value) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		m := shadowLayerRe.FindStringSubmatch(raw)
		if m == nil {
			// Opaque passthrough: lossy but never fatal.
			layers = append(layers, raw)
			continue
		}
		var parts []string
		if m[1] != "" {
			parts = append(parts, "inset")
		}
		parts = append(parts, m[2], m[3])
		if m[4] != "" {
			parts = append(parts, m[4])
		}
		if m[5] != "" {
			parts = append(parts, m[5])
		}
		if m[6] != "" {
			if hex, ok := NormalizeColor(m[6]); ok {
				parts = append(parts, hex)
			} else {
				parts = append(parts, m[6])
			}
		}
		layers = append(layers, strings.Join(parts, " "))
	}
	return layers
}

// splitShadowList splits on commas that are not inside parentheses, so
// rgba(0,0,0,.5) stays intact.
func splitShadowList(s string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
			current.WriteRune(r)
		case ')':
			depth--
			current.WriteRune(r)
		case ',':
			if depth == 0 {
				parts = append(parts, current.String())
				current.Reset()
			} else {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
