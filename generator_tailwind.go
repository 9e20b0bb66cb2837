package impression

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GenerateTailwind renders the IR as a Tailwind config serialized as JSON,
// everything under theme.extend. Slot names follow the ordinal tables so the
// output drops into an existing Tailwind project unchanged.
func GenerateTailwind(ds *DesignSystem) ([]byte, error) {
	extend := map[string]any{}

	if len(ds.Colors.Palette) > 0 {
		colors := map[string]any{}
		for i, tok := range ds.Colors.Palette {
			colors[tokenSlot(tok, i, colorOrdinals)] = tok.Value
		}
		extend["colors"] = colors
	}

	if len(ds.Typography.Families) > 0 {
		families := map[string]any{}
		for i, f := range ds.Typography.Families {
			slot := f.Role
			if slot == "" {
				slot = ordinalAt([]string{"sans", "heading", "mono"}, i)
			}
			families[slot] = strings.Split(fontStack(f.Family), ", ")
		}
		extend["fontFamily"] = families
	}

	if len(ds.Typography.Scale) > 0 {
		sizes := map[string]any{}
		for i, v := range ds.Typography.Scale {
			sizes[ordinalAt(sizeOrdinals, i)] = v
		}
		extend["fontSize"] = sizes
	}

	if len(ds.Spacing.Scale) > 0 {
		spacing := map[string]any{}
		for i, v := range ds.Spacing.Scale {
			spacing[ordinalAt(sizeOrdinals, i)] = v
		}
		extend["spacing"] = spacing
	}

	if len(ds.BorderRadius) > 0 {
		radii := map[string]any{}
		for i, tok := range ds.BorderRadius {
			radii[tokenSlot(tok, i, radiusOrdinals)] = tok.Value
		}
		extend["borderRadius"] = radii
	}

	if len(ds.Shadows) > 0 {
		shadows := map[string]any{}
		for i, tok := range ds.Shadows {
			shadows[tokenSlot(tok, i, sizeOrdinals)] = tok.Value
		}
		extend["boxShadow"] = shadows
	}

	if len(ds.Breakpoints.Detected) > 0 {
		screens := map[string]any{}
		for i, bp := range ds.Breakpoints.Detected {
			screens[ordinalAt(screenOrdinals, i)] = trimFloat(bp) + "px"
		}
		extend["screens"] = screens
	}

	if len(ds.Animations.Durations) > 0 {
		durations := map[string]any{}
		for i, v := range ds.Animations.Durations {
			durations[ordinalAt(durationOrdinals, i)] = v
		}
		extend["transitionDuration"] = durations
	}

	if len(ds.Animations.Easings) > 0 {
		easings := map[string]any{}
		for i, v := range ds.Animations.Easings {
			easings[ordinalAt([]string{"DEFAULT", "in", "out", "in-out"}, i)] = v
		}
		extend["transitionTimingFunction"] = easings
	}

	root := map[string]any{"theme": map[string]any{"extend": extend}}
	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding Tailwind config: %w", err)
	}
	return append(out, '\n'), nil
}

// fontStack appends generic fallbacks to a bare family name.
func fontStack(family string) string {
	lower := strings.ToLower(family)
	switch {
	case strings.Contains(lower, "mono") || strings.Contains(lower, "code"):
		return family + ", monospace"
	case strings.Contains(lower, "serif") && !strings.Contains(lower, "sans"):
		return family + ", serif"
	}
	return family + ", sans-serif"
}
