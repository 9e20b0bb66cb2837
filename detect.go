package impression

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format identifies one of the supported external token representations.
type Format string

// Supported formats. The zero value is FormatUnknown.
const (
	FormatUnknown         Format = ""
	FormatImpression      Format = "impression"
	FormatW3C             Format = "w3c"
	FormatStyleDictionary Format = "style-dictionary"
	FormatFigma           Format = "figma"
	FormatTailwind        Format = "tailwind"
	FormatCSSVariables    Format = "css"
	FormatShadcn          Format = "shadcn"
)

// Formats lists every supported format in detection order.
func Formats() []Format {
	return []Format{
		FormatImpression,
		FormatW3C,
		FormatStyleDictionary,
		FormatFigma,
		FormatTailwind,
		FormatCSSVariables,
		FormatShadcn,
	}
}

// ParseFormat resolves a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "impression", "canonical":
		return FormatImpression, nil
	case "w3c", "dtcg", "design-tokens":
		return FormatW3C, nil
	case "style-dictionary", "styledictionary", "sd":
		return FormatStyleDictionary, nil
	case "figma", "tokens-studio":
		return FormatFigma, nil
	case "tailwind":
		return FormatTailwind, nil
	case "css", "css-variables", "cssvars":
		return FormatCSSVariables, nil
	case "shadcn", "shadcn-ui":
		return FormatShadcn, nil
	}
	return FormatUnknown, fmt.Errorf("unsupported format %q (supported: impression, w3c, style-dictionary, figma, tailwind, css, shadcn)", name)
}

// DetectFormat inspects a raw blob and infers which supported format it
// represents. Probes run in a fixed order and the first match wins, so
// ambiguous inputs resolve deterministically to the earliest rule; this
// order dependence is deliberate. Returns FormatUnknown when nothing
// matches.
func DetectFormat(blob []byte) Format {
	text := strings.TrimSpace(string(blob))
	if text == "" {
		return FormatUnknown
	}

	var data map[string]any
	if err := json.Unmarshal(blob, &data); err != nil {
		// Not JSON: sniff CSS custom property text.
		if strings.Contains(text, ":root") && strings.Contains(text, "--") {
			if hasShadcnVariables(text) {
				return FormatShadcn
			}
			return FormatCSSVariables
		}
		if strings.Contains(text, "theme:") || strings.Contains(text, "module.exports") {
			return FormatTailwind
		}
		return FormatUnknown
	}

	// 1. Canonical impression serialization.
	if meta, ok := data["meta"].(map[string]any); ok {
		if _, ok := meta["extractedAt"]; ok {
			if colors, ok := data["colors"].(map[string]any); ok {
				if _, ok := colors["palette"]; ok {
					return FormatImpression
				}
			}
		}
	}

	// 2. W3C: any nested object with both $type and $value within 5 levels.
	if hasNestedKeys(data, 5, func(m map[string]any) bool {
		_, hasType := m["$type"]
		_, hasValue := m["$value"]
		return hasType && hasValue
	}) {
		return FormatW3C
	}

	// 3. Style Dictionary: a value key without a sibling $value.
	if hasNestedKeys(data, 5, func(m map[string]any) bool {
		_, hasValue := m["value"]
		_, hasDollar := m["$value"]
		return hasValue && !hasDollar
	}) {
		return FormatStyleDictionary
	}

	// 4. Figma variables export or Tokens Studio global set.
	if _, ok := data["collections"].([]any); ok {
		return FormatFigma
	}
	if global, ok := data["global"].(map[string]any); ok {
		if _, ok := global["$type"]; ok {
			return FormatFigma
		}
		if _, ok := data["$metadata"]; ok {
			return FormatFigma
		}
		if _, ok := data["$themes"]; ok {
			return FormatFigma
		}
	}

	// 5. Tailwind config serialized as JSON.
	if theme, ok := data["theme"].(map[string]any); ok {
		if _, ok := theme["extend"]; ok {
			return FormatTailwind
		}
		if _, ok := theme["colors"]; ok {
			return FormatTailwind
		}
	}
	if _, ok := data["content"]; ok {
		return FormatTailwind
	}

	// 6. shadcn/ui theme JSON: cssVariables with the well-known slots.
	if vars, ok := data["cssVariables"].(map[string]any); ok {
		if _, ok := vars["--background"]; ok {
			return FormatShadcn
		}
		if _, ok := vars["--primary"]; ok {
			return FormatShadcn
		}
	}

	return FormatUnknown
}

// hasNestedKeys walks nested objects up to maxDepth levels looking for a map
// satisfying the probe.
func hasNestedKeys(data map[string]any, maxDepth int, probe func(map[string]any) bool) bool {
	if maxDepth < 0 {
		return false
	}
	if probe(data) {
		return true
	}
	for _, v := range data {
		if child, ok := v.(map[string]any); ok {
			if hasNestedKeys(child, maxDepth-1, probe) {
				return true
			}
		}
	}
	return false
}

// hasShadcnVariables reports whether raw CSS text declares the shadcn slot
// variables.
func hasShadcnVariables(text string) bool {
	return strings.Contains(text, "--background") &&
		(strings.Contains(text, "--foreground") || strings.Contains(text, "--primary"))
}
