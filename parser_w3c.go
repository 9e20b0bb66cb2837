package impression

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseW3C walks a W3C Design Tokens (DTCG) document: nested groups whose
// leaves carry $type/$value, with $type inheritable from enclosing groups.
func ParseW3C(data []byte) (*DesignSystem, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid W3C design tokens JSON: %w", err)
	}
	ds := NewDesignSystem()
	walkW3C(ds, root, "", "")
	finishScales(ds)
	return ds, nil
}

// walkW3C performs the depth-first walk. inheritedType is the nearest
// enclosing group's $type.
func walkW3C(ds *DesignSystem, node map[string]any, path, inheritedType string) {
	if rawValue, ok := node["$value"]; ok {
		typeTag := inheritedType
		if t, ok := node["$type"].(string); ok {
			typeTag = t
		}
		routeW3CValue(ds, typeTag, path, rawValue)
		return
	}

	groupType := inheritedType
	if t, ok := node["$type"].(string); ok {
		groupType = t
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
		walkW3C(ds, child, childPath, groupType)
	}
}

// routeW3CValue flattens composite $value shapes (shadow objects, typography
// objects) and routes scalars through the shared classifier.
func routeW3CValue(ds *DesignSystem, typeTag, path string, rawValue any) {
	kind := classifyByType(typeTag)
	if kind == KindOther {
		kind = classifyByName(path)
	}

	switch v := rawValue.(type) {
	case string:
		routeW3CScalar(ds, kind, path, v)
	case float64:
		routeW3CScalar(ds, kind, path, trimFloat(v))
	case []any:
		// Font stacks and multi-layer shadows arrive as arrays.
		for _, item := range v {
			routeW3CValue(ds, typeTag, path, item)
		}
	case map[string]any:
		if kind == KindShadow {
			if layer, ok := shadowObjectToCSS(v); ok {
				ds.Shadows = addUniqueToken(ds.Shadows, Token{Value: layer, Role: roleFromName(path)})
			}
			return
		}
		// Composite typography value: route each sub-property by its key.
		for _, key := range sortedKeys(v) {
			if s, ok := v[key].(string); ok {
				routeToken(ds, classifyByName(key), path+"."+key, s)
			} else if n, ok := v[key].(float64); ok {
				routeToken(ds, classifyByName(key), path+"."+key, trimFloat(n))
			}
		}
	}
}

func routeW3CScalar(ds *DesignSystem, kind TokenKind, path, value string) {
	// Alias references ({color.primary}) cannot be resolved without the
	// full document graph; pass the literal through as an opaque token.
	routeToken(ds, kind, path, value)
}

// shadowObjectToCSS renders a DTCG shadow object as a box-shadow layer.
func shadowObjectToCSS(obj map[string]any) (string, bool) {
	get := func(key string) (string, bool) {
		switch v := obj[key].(type) {
		case string:
			return v, true
		case float64:
			return trimFloat(v), true
		}
		return "", false
	}
	x, okX := get("offsetX")
	y, okY := get("offsetY")
	if !okX || !okY {
		return "", false
	}
	parts := []string{}
	if inset, ok := obj["inset"].(bool); ok && inset {
		parts = append(parts, "inset")
	}
	parts = append(parts, x, y)
	if blur, ok := get("blur"); ok {
		parts = append(parts, blur)
	}
	if spread, ok := get("spread"); ok {
		parts = append(parts, spread)
	}
	if color, ok := get("color"); ok {
		if hex, isColor := NormalizeColor(color); isColor {
			parts = append(parts, hex)
		} else {
			parts = append(parts, color)
		}
	}
	return strings.Join(parts, " "), true
}

// finishScales applies the numeric-sortable invariant to both scale arrays.
func finishScales(ds *DesignSystem) {
	ds.Typography.Scale = NormalizeScale(ds.Typography.Scale)
	ds.Spacing.Scale = NormalizeScale(ds.Spacing.Scale)
}

// trimFloat renders a float without a trailing ".0" for whole numbers.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
