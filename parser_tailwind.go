package impression

import (
	"encoding/json"
	"fmt"
	"strings"
)

// tailwindConfig is the JSON-serialized Tailwind config shape. Only the
// theme section carries tokens; content globs and plugins are ignored.
type tailwindConfig struct {
	Theme tailwindTheme `json:"theme"`
}

type tailwindTheme struct {
	Extend                   *tailwindTheme             `json:"extend,omitempty"`
	Colors                   map[string]json.RawMessage `json:"colors,omitempty"`
	FontFamily               map[string][]string        `json:"fontFamily,omitempty"`
	FontSize                 map[string]json.RawMessage `json:"fontSize,omitempty"`
	Spacing                  map[string]string          `json:"spacing,omitempty"`
	BorderRadius             map[string]string          `json:"borderRadius,omitempty"`
	BoxShadow                map[string]string          `json:"boxShadow,omitempty"`
	Screens                  map[string]string          `json:"screens,omitempty"`
	TransitionDuration       map[string]string          `json:"transitionDuration,omitempty"`
	TransitionTimingFunction map[string]string          `json:"transitionTimingFunction,omitempty"`
}

// ParseTailwind maps a Tailwind config (serialized as JSON) into the IR.
// theme.extend is merged over theme; slot names become token roles.
func ParseTailwind(data []byte) (*DesignSystem, error) {
	var cfg tailwindConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid Tailwind config JSON: %w", err)
	}
	ds := NewDesignSystem()

	themes := []*tailwindTheme{&cfg.Theme}
	if cfg.Theme.Extend != nil {
		themes = append(themes, cfg.Theme.Extend)
	}
	for _, theme := range themes {
		parseTailwindTheme(ds, theme)
	}
	finishScales(ds)
	return ds, nil
}

func parseTailwindTheme(ds *DesignSystem, theme *tailwindTheme) {
	for _, name := range sortedKeys(theme.Colors) {
		addTailwindColor(ds, name, theme.Colors[name])
	}
	for _, name := range sortedKeys(theme.FontFamily) {
		if stack := theme.FontFamily[name]; len(stack) > 0 {
			addFontFamily(ds, stack[0], name)
		}
	}
	for _, slot := range sortedKeys(theme.FontSize) {
		raw := theme.FontSize[slot]
		// Entries are either "1rem" or ["1rem", {lineHeight: ...}].
		var size string
		if err := json.Unmarshal(raw, &size); err != nil {
			var tuple []json.RawMessage
			if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) == 0 {
				continue
			}
			if err := json.Unmarshal(tuple[0], &size); err != nil {
				continue
			}
			if len(tuple) > 1 {
				var opts map[string]string
				if err := json.Unmarshal(tuple[1], &opts); err == nil {
					if lh, ok := opts["lineHeight"]; ok {
						ds.Typography.LineHeights = addUniqueToken(ds.Typography.LineHeights, Token{Value: lh})
					}
					if lsp, ok := opts["letterSpacing"]; ok {
						ds.Typography.LetterSpacing = addUniqueToken(ds.Typography.LetterSpacing, Token{Value: lsp})
					}
				}
			}
		}
		ds.Typography.Scale = addUnique(ds.Typography.Scale, size)
	}
	for _, name := range sortedKeys(theme.Spacing) {
		ds.Spacing.Scale = addUnique(ds.Spacing.Scale, theme.Spacing[name])
	}
	for _, name := range sortedKeys(theme.BorderRadius) {
		ds.BorderRadius = addUniqueToken(ds.BorderRadius, Token{Value: theme.BorderRadius[name], Role: tailwindRole(name)})
	}
	for _, name := range sortedKeys(theme.BoxShadow) {
		for _, layer := range ParseShadowLayers(theme.BoxShadow[name]) {
			ds.Shadows = addUniqueToken(ds.Shadows, Token{Value: layer, Role: tailwindRole(name)})
		}
	}
	for _, name := range sortedKeys(theme.Screens) {
		if n, ok := ParseDimension(theme.Screens[name]); ok {
			ds.Breakpoints.Detected = append(ds.Breakpoints.Detected, n)
		}
	}
	for _, name := range sortedKeys(theme.TransitionDuration) {
		ds.Animations.Durations = addUnique(ds.Animations.Durations, theme.TransitionDuration[name])
	}
	for _, name := range sortedKeys(theme.TransitionTimingFunction) {
		ds.Animations.Easings = addUnique(ds.Animations.Easings, theme.TransitionTimingFunction[name])
	}
}

// addTailwindColor handles both flat entries ("primary": "#fff") and nested
// shade maps ("blue": {"500": "#3b82f6"}).
func addTailwindColor(ds *DesignSystem, name string, raw json.RawMessage) {
	var flat string
	if err := json.Unmarshal(raw, &flat); err == nil {
		ds.AddPaletteColor(flat, tailwindRole(name))
		return
	}
	var shades map[string]string
	if err := json.Unmarshal(raw, &shades); err != nil {
		return
	}
	for _, shade := range sortedKeys(shades) {
		role := tailwindRole(name)
		if shade != "DEFAULT" {
			role = role + "-" + strings.ToLower(shade)
		}
		ds.AddPaletteColor(shades[shade], role)
	}
}

// tailwindRole normalizes a Tailwind slot name to an IR role tag.
func tailwindRole(name string) string {
	if name == "DEFAULT" {
		return ""
	}
	return strings.ToLower(name)
}
