package impression

import (
	"strings"
)

// GenerateShadcn renders the IR as a shadcn/ui globals.css block: the
// well-known slot variables as HSL triplets plus --radius. Slots are filled
// from palette roles first, then positionally; a slot with no candidate
// falls back to a neutral derived from the first background/foreground pair.
func GenerateShadcn(ds *DesignSystem) ([]byte, error) {
	byRole := map[string]string{}
	for _, tok := range ds.Colors.Palette {
		if tok.Role != "" {
			if _, taken := byRole[tok.Role]; !taken {
				byRole[tok.Role] = tok.Value
			}
		}
	}

	// Positional defaults: lightest palette color backs the background slot,
	// darkest the foreground, remaining slots walk the palette in order.
	background, foreground := shadcnPoles(ds)
	next := 0
	nextColor := func() string {
		for next < len(ds.Colors.Palette) {
			v := ds.Colors.Palette[next].Value
			next++
			if v != background && v != foreground {
				return v
			}
		}
		return background
	}

	resolve := func(slot string) string {
		if v, ok := byRole[slot]; ok {
			return v
		}
		switch {
		case slot == "background":
			return background
		case slot == "foreground":
			return foreground
		case slot == "primary-foreground" || slot == "destructive-foreground":
			// Text over a saturated surface reads light.
			return background
		case strings.HasSuffix(slot, "-foreground"):
			return foreground
		case slot == "border" || slot == "input" || slot == "ring":
			if v, ok := byRole["border"]; ok {
				return v
			}
			return background
		}
		return nextColor()
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, slot := range shadcnColorSlots {
		hex := resolve(slot)
		triplet, ok := hexToHSLTriplet(hex)
		if !ok {
			continue
		}
		b.WriteString("  --")
		b.WriteString(slot)
		b.WriteString(": ")
		b.WriteString(triplet)
		b.WriteString(";\n")
	}

	radius := "0.5rem"
	if len(ds.BorderRadius) > 0 {
		radius = ds.BorderRadius[0].Value
		for _, tok := range ds.BorderRadius {
			if tok.Role == "radius" || tok.Role == "md" {
				radius = tok.Value
				break
			}
		}
	}
	b.WriteString("  --radius: ")
	b.WriteString(radius)
	b.WriteString(";\n}\n")

	return []byte(b.String()), nil
}

// shadcnPoles picks the lightest and darkest palette entries as the
// background/foreground pair, defaulting to white on near-black.
func shadcnPoles(ds *DesignSystem) (background, foreground string) {
	background, foreground = "#ffffff", "#0a0a0a"
	bestLight, bestDark := -1.0, 2.0
	for _, tok := range ds.Colors.Palette {
		l := RelativeLuminance(tok.Value)
		if l > bestLight {
			bestLight = l
			background = tok.Value
		}
		if l < bestDark {
			bestDark = l
			foreground = tok.Value
		}
	}
	return background, foreground
}
