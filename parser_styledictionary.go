package impression

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseStyleDictionary walks a Style Dictionary source document: nested
// groups whose leaves are {value, type?} objects. When the optional type
// field is absent, classification falls back to name-substring heuristics
// over the token path.
func ParseStyleDictionary(data []byte) (*DesignSystem, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid Style Dictionary JSON: %w", err)
	}
	ds := NewDesignSystem()
	walkStyleDictionary(ds, root, "")
	finishScales(ds)
	return ds, nil
}

func walkStyleDictionary(ds *DesignSystem, node map[string]any, path string) {
	if rawValue, ok := node["value"]; ok {
		kind := KindOther
		if t, ok := node["type"].(string); ok {
			kind = classifyByType(t)
		}
		if kind == KindOther {
			kind = classifyByName(path)
		}
		switch v := rawValue.(type) {
		case string:
			routeToken(ds, kind, path, v)
		case float64:
			routeToken(ds, kind, path, trimFloat(v))
		}
		return
	}

	for _, key := range sortedKeys(node) {
		if strings.HasPrefix(key, "$") {
			continue
		}
		child, ok := node[key].(map[string]any)
		if !ok {
			continue
		}
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}
		walkStyleDictionary(ds, child, childPath)
	}
}
