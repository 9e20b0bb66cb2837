package impression

import (
	"encoding/json"
	"fmt"
)

// GenerateStyleDictionary renders the IR as a Style Dictionary source
// document: nested category groups with {value, type} leaves.
func GenerateStyleDictionary(ds *DesignSystem) ([]byte, error) {
	leaf := func(value, typeTag string) map[string]any {
		return map[string]any{"value": value, "type": typeTag}
	}
	root := map[string]any{}

	if len(ds.Colors.Palette) > 0 {
		group := map[string]any{}
		for i, tok := range ds.Colors.Palette {
			group[tokenSlot(tok, i, colorOrdinals)] = leaf(tok.Value, "color")
		}
		root["color"] = group
	}

	if len(ds.Typography.Families) > 0 || len(ds.Typography.Scale) > 0 {
		font := map[string]any{}
		if len(ds.Typography.Families) > 0 {
			families := map[string]any{}
			for i, f := range ds.Typography.Families {
				slot := f.Role
				if slot == "" {
					slot = ordinalAt([]string{"base", "heading", "mono"}, i)
				}
				families[slot] = leaf(f.Family, "fontFamily")
			}
			font["family"] = families
		}
		if len(ds.Typography.Scale) > 0 {
			sizes := map[string]any{}
			for i, v := range ds.Typography.Scale {
				sizes[ordinalAt(sizeOrdinals, i)] = leaf(v, "dimension")
			}
			font["size"] = sizes
		}
		if len(ds.Typography.Weights) > 0 {
			weights := map[string]any{}
			for i, v := range ds.Typography.Weights {
				weights[ordinalAt([]string{"regular", "medium", "semibold", "bold"}, i)] = leaf(v, "fontWeight")
			}
			font["weight"] = weights
		}
		root["font"] = font
	}

	if len(ds.Spacing.Scale) > 0 {
		group := map[string]any{}
		for i, v := range ds.Spacing.Scale {
			group[ordinalAt(sizeOrdinals, i)] = leaf(v, "spacing")
		}
		root["spacing"] = group
	}

	if len(ds.BorderRadius) > 0 {
		group := map[string]any{}
		for i, tok := range ds.BorderRadius {
			group[tokenSlot(tok, i, radiusOrdinals)] = leaf(tok.Value, "borderRadius")
		}
		root["radius"] = group
	}

	if len(ds.Shadows) > 0 {
		group := map[string]any{}
		for i, tok := range ds.Shadows {
			group[tokenSlot(tok, i, sizeOrdinals)] = leaf(tok.Value, "boxShadow")
		}
		root["shadow"] = group
	}

	if len(ds.Animations.Durations) > 0 {
		group := map[string]any{}
		for i, v := range ds.Animations.Durations {
			group[ordinalAt(durationOrdinals, i)] = leaf(v, "duration")
		}
		root["duration"] = group
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding Style Dictionary tokens: %w", err)
	}
	return append(out, '\n'), nil
}
