package impression

import (
	"encoding/json"
	"fmt"
)

// GenerateFigma renders the IR as a Figma Variables API export: one
// collection per token category, variable names reusing the ordinal slots.
func GenerateFigma(ds *DesignSystem) ([]byte, error) {
	var collections []figmaCollection

	if len(ds.Colors.Palette) > 0 {
		vars := map[string]any{}
		for i, tok := range ds.Colors.Palette {
			vars[tokenSlot(tok, i, colorOrdinals)] = tok.Value
		}
		collections = append(collections, figmaCollection{Name: "Colors", Variables: vars})
	}

	if len(ds.Typography.Families) > 0 || len(ds.Typography.Scale) > 0 {
		vars := map[string]any{}
		for i, f := range ds.Typography.Families {
			slot := f.Role
			if slot == "" {
				slot = ordinalAt([]string{"base", "heading", "mono"}, i)
			}
			vars["family/"+slot] = f.Family
		}
		for i, v := range ds.Typography.Scale {
			vars["size/"+ordinalAt(sizeOrdinals, i)] = v
		}
		for i, v := range ds.Typography.Weights {
			vars["weight/"+ordinalAt([]string{"regular", "medium", "semibold", "bold"}, i)] = v
		}
		collections = append(collections, figmaCollection{Name: "Typography", Variables: vars})
	}

	if len(ds.Spacing.Scale) > 0 {
		vars := map[string]any{}
		for i, v := range ds.Spacing.Scale {
			vars[ordinalAt(sizeOrdinals, i)] = v
		}
		collections = append(collections, figmaCollection{Name: "Spacing", Variables: vars})
	}

	if len(ds.BorderRadius) > 0 {
		vars := map[string]any{}
		for i, tok := range ds.BorderRadius {
			vars[tokenSlot(tok, i, radiusOrdinals)] = tok.Value
		}
		collections = append(collections, figmaCollection{Name: "Radius", Variables: vars})
	}

	if len(ds.Shadows) > 0 {
		vars := map[string]any{}
		for i, tok := range ds.Shadows {
			vars[tokenSlot(tok, i, sizeOrdinals)] = tok.Value
		}
		collections = append(collections, figmaCollection{Name: "Effects", Variables: vars})
	}

	out, err := json.MarshalIndent(figmaExport{Collections: collections}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding Figma variables: %w", err)
	}
	return append(out, '\n'), nil
}
