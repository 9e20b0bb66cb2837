package impression

import (
	"encoding/json"
	"fmt"
)

// figmaExport is the Figma Variables API shape: named collections whose
// variables map names to per-mode or literal values.
type figmaExport struct {
	Collections []figmaCollection `json:"collections"`
}

type figmaCollection struct {
	Name      string         `json:"name"`
	Variables map[string]any `json:"variables"`
	Values    map[string]any `json:"values"`
}

// ParseFigma handles both a Figma Variables API export (collections array)
// and a Tokens Studio set ({global, $themes, $metadata}). Tokens Studio
// leaves look like DTCG leaves with either $type/$value or type/value keys.
func ParseFigma(data []byte) (*DesignSystem, error) {
	var export figmaExport
	if err := json.Unmarshal(data, &export); err == nil && len(export.Collections) > 0 {
		return parseFigmaCollections(export), nil
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid Figma/Tokens Studio JSON: %w", err)
	}
	global, ok := root["global"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("figma parse: neither a collections export nor a Tokens Studio global set")
	}
	ds := NewDesignSystem()
	walkTokensStudio(ds, global, "")
	finishScales(ds)
	return ds, nil
}

func parseFigmaCollections(export figmaExport) *DesignSystem {
	ds := NewDesignSystem()
	for _, col := range export.Collections {
		vars := col.Variables
		if vars == nil {
			vars = col.Values
		}
		for _, name := range sortedKeys(vars) {
			value, ok := figmaValueString(vars[name])
			if !ok {
				continue
			}
			kind := classifyByName(col.Name + "." + name)
			routeToken(ds, kind, name, value)
		}
	}
	finishScales(ds)
	return ds
}

// figmaValueString flattens a variable value: either a literal, or a
// per-mode map from which the first mode is taken, or an {r,g,b} color
// object scaled from [0,1].
func figmaValueString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return trimFloat(v), true
	case map[string]any:
		if r, ok := v["r"].(float64); ok {
			g, _ := v["g"].(float64)
			b, _ := v["b"].(float64)
			return RGB{
				R: int(r*255 + 0.5),
				G: int(g*255 + 0.5),
				B: int(b*255 + 0.5),
			}.Hex(), true
		}
		// Per-mode values: take the lexically first mode so the choice is
		// stable across parses.
		for _, mode := range sortedKeys(v) {
			if s, ok := figmaValueString(v[mode]); ok {
				return s, true
			}
		}
	}
	return "", false
}

// walkTokensStudio walks a Tokens Studio token set, tolerating both the
// $-prefixed and bare key spellings.
func walkTokensStudio(ds *DesignSystem, node map[string]any, path string) {
	rawValue, hasValue := node["$value"]
	if !hasValue {
		rawValue, hasValue = node["value"]
	}
	if hasValue {
		typeTag, _ := node["$type"].(string)
		if typeTag == "" {
			typeTag, _ = node["type"].(string)
		}
		routeW3CValue(ds, typeTag, path, rawValue)
		return
	}
	for _, key := range sortedKeys(node) {
		child, ok := node[key].(map[string]any)
		if !ok {
			continue
		}
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}
		walkTokensStudio(ds, child, childPath)
	}
}
