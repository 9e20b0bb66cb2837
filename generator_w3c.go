package impression

import (
	"encoding/json"
	"fmt"
)

// GenerateW3C renders the IR as a W3C Design Tokens (DTCG) document. Every
// leaf carries its own $type next to $value so the output satisfies the
// format's own detection probe; typography sizes and radii use the Tokens
// Studio type spellings (fontSize, borderRadius) rather than bare dimension,
// which keeps them out of the spacing bucket on re-parse.
func GenerateW3C(ds *DesignSystem) ([]byte, error) {
	leaf := func(value, typeTag string) map[string]any {
		return map[string]any{"$type": typeTag, "$value": value}
	}
	root := map[string]any{}

	if len(ds.Colors.Palette) > 0 {
		group := map[string]any{}
		for i, tok := range ds.Colors.Palette {
			group[tokenSlot(tok, i, colorOrdinals)] = leaf(tok.Value, "color")
		}
		root["color"] = group
	}

	if len(ds.Typography.Families) > 0 || len(ds.Typography.Scale) > 0 || len(ds.Typography.Weights) > 0 {
		group := map[string]any{}
		if len(ds.Typography.Families) > 0 {
			families := map[string]any{}
			for i, f := range ds.Typography.Families {
				slot := f.Role
				if slot == "" {
					slot = ordinalAt([]string{"base", "heading", "mono"}, i)
				}
				families[slot] = leaf(f.Family, "fontFamily")
			}
			group["family"] = families
		}
		if len(ds.Typography.Scale) > 0 {
			sizes := map[string]any{}
			for i, v := range ds.Typography.Scale {
				sizes[ordinalAt(sizeOrdinals, i)] = leaf(v, "fontSize")
			}
			group["size"] = sizes
		}
		if len(ds.Typography.Weights) > 0 {
			weights := map[string]any{}
			for i, v := range ds.Typography.Weights {
				weights[ordinalAt([]string{"regular", "medium", "semibold", "bold"}, i)] = leaf(v, "fontWeight")
			}
			group["weight"] = weights
		}
		root["typography"] = group
	}

	if len(ds.Spacing.Scale) > 0 {
		group := map[string]any{}
		for i, v := range ds.Spacing.Scale {
			group[ordinalAt(sizeOrdinals, i)] = leaf(v, "dimension")
		}
		root["spacing"] = group
	}

	if len(ds.BorderRadius) > 0 {
		group := map[string]any{}
		for i, tok := range ds.BorderRadius {
			group[tokenSlot(tok, i, radiusOrdinals)] = leaf(tok.Value, "borderRadius")
		}
		root["borderRadius"] = group
	}

	if len(ds.Shadows) > 0 {
		group := map[string]any{}
		for i, tok := range ds.Shadows {
			group[tokenSlot(tok, i, sizeOrdinals)] = leaf(tok.Value, "shadow")
		}
		root["shadow"] = group
	}

	if len(ds.Animations.Durations) > 0 || len(ds.Animations.Easings) > 0 {
		group := map[string]any{}
		if len(ds.Animations.Durations) > 0 {
			durations := map[string]any{}
			for i, v := range ds.Animations.Durations {
				durations[ordinalAt(durationOrdinals, i)] = leaf(v, "duration")
			}
			group["duration"] = durations
		}
		if len(ds.Animations.Easings) > 0 {
			easings := map[string]any{}
			for i, v := range ds.Animations.Easings {
				easings[ordinalAt(sizeOrdinals, i)] = leaf(v, "cubicBezier")
			}
			group["easing"] = easings
		}
		root["motion"] = group
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding W3C tokens: %w", err)
	}
	return append(out, '\n'), nil
}
