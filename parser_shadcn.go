package impression

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// shadcnTheme is the JSON shape produced by shadcn/ui theme tooling: a flat
// cssVariables map of --slot names to HSL triplets ("222.2 47.4% 11.2%").
type shadcnTheme struct {
	Name         string            `json:"name,omitempty"`
	CSSVariables map[string]string `json:"cssVariables"`
}

// shadcnColorSlots are the well-known semantic slots, in the order shadcn
// templates declare them. Slots map directly to IR roles.
var shadcnColorSlots = []string{
	"background", "foreground",
	"card", "card-foreground",
	"popover", "popover-foreground",
	"primary", "primary-foreground",
	"secondary", "secondary-foreground",
	"muted", "muted-foreground",
	"accent", "accent-foreground",
	"destructive", "destructive-foreground",
	"border", "input", "ring",
}

// ParseShadcn accepts either a shadcn theme JSON ({cssVariables: {...}}) or
// raw CSS text declaring the slot variables, and maps the HSL triplets into
// the palette with their slot names as roles.
func ParseShadcn(data []byte) (*DesignSystem, error) {
	var theme shadcnTheme
	if err := json.Unmarshal(data, &theme); err != nil || len(theme.CSSVariables) == 0 {
		// Fall back to raw CSS text.
		vars := lexCustomProperties(string(data))
		if len(vars) == 0 {
			return nil, fmt.Errorf("shadcn parse: no cssVariables map and no CSS custom properties found")
		}
		theme.CSSVariables = vars
	}

	ds := NewDesignSystem()
	for _, name := range sortedKeys(theme.CSSVariables) {
		value := theme.CSSVariables[name]
		slot := strings.TrimPrefix(name, "--")
		if slot == "radius" {
			ds.BorderRadius = addUniqueToken(ds.BorderRadius, Token{Value: value, Role: "radius"})
			continue
		}
		hex, ok := hslTripletToHex(value)
		if !ok {
			// Not an HSL triplet; try any other color syntax before giving up.
			if h, isColor := NormalizeColor(value); isColor {
				hex, ok = h, true
			}
		}
		if ok {
			ds.Colors.Variables[name] = value
			ds.AddPaletteColor(hex, slot)
		}
	}
	return ds, nil
}

// hslTripletToHex parses the shadcn "H S% L%" value syntax (hsl() with the
// wrapper stripped) into a hex color.
func hslTripletToHex(value string) (string, bool) {
	fields := strings.Fields(strings.TrimSpace(value))
	if len(fields) != 3 {
		return "", false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "deg"), 64)
	if err != nil {
		return "", false
	}
	s, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "%"), 64)
	if err != nil {
		return "", false
	}
	l, err := strconv.ParseFloat(strings.TrimSuffix(fields[2], "%"), 64)
	if err != nil {
		return "", false
	}
	return HSLToRGB(h, s/100, l/100).Hex(), true
}

// hexToHSLTriplet renders a hex color in the shadcn variable syntax.
func hexToHSLTriplet(hex string) (string, bool) {
	c, ok := HexToRGB(hex)
	if !ok {
		return "", false
	}
	h, s, l := RGBToHSL(c)
	return fmt.Sprintf("%.1f %.1f%% %.1f%%", h, s*100, l*100), true
}
