package impression

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RGB is an 8-bit-per-channel sRGB color.
type RGB struct {
	R, G, B int
}

// Lab is a CIE L*a*b* triple (D65 white point).
type Lab struct {
	L, A, B float64
}

// namedColors is the small fixed table of CSS keywords the engine resolves.
// Anything else (gradients, "transparent", exotic keywords) is not a color.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"maroon":  "#800000",
	"navy":    "#000080",
	"teal":    "#008080",
	"olive":   "#808000",
	"aqua":    "#00ffff",
	"cyan":    "#00ffff",
	"fuchsia": "#ff00ff",
	"magenta": "#ff00ff",
	"lime":    "#00ff00",
}

var (
	rgbFuncRe = regexp.MustCompile(`rgba?\(\s*(\d+)\s*[, ]\s*(\d+)\s*[, ]\s*(\d+)`)
	hslFuncRe = regexp.MustCompile(`hsla?\(\s*([\d.]+)(?:deg)?\s*[, ]\s*([\d.]+)%\s*[, ]\s*([\d.]+)%`)
)

// HexToRGB parses a 3- or 6-digit hex color. The second return is false for
// anything that is not reducible to a hex color; callers treat "not a color"
// as a first-class outcome, never an error.
func HexToRGB(hex string) (RGB, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(hex, "#"))
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, true
}

// Hex renders the color as a lowercase #rrggbb string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NormalizeColor reduces a CSS color value (hex, rgb()/rgba(), hsl()/hsla(),
// or a known keyword) to a 6-digit lowercase hex string. ok is false for
// values outside that set.
func NormalizeColor(value string) (string, bool) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return "", false
	}
	if named, exists := namedColors[v]; exists {
		return named, true
	}
	if strings.HasPrefix(v, "#") {
		c, ok := HexToRGB(v)
		if !ok {
			return "", false
		}
		return c.Hex(), true
	}
	if m := rgbFuncRe.FindStringSubmatch(v); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return "", false
		}
		return RGB{R: r, G: g, B: b}.Hex(), true
	}
	if m := hslFuncRe.FindStringSubmatch(v); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		s, _ := strconv.ParseFloat(m[2], 64)
		l, _ := strconv.ParseFloat(m[3], 64)
		return HSLToRGB(h, s/100, l/100).Hex(), true
	}
	return "", false
}

// HSLToRGB converts hue [0,360), saturation and lightness [0,1] to sRGB.
func HSLToRGB(h, s, l float64) RGB {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	if s == 0 {
		v := int(math.Round(l * 255))
		return RGB{R: v, G: v, B: v}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hue := func(t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		}
		return p
	}
	return RGB{
		R: int(math.Round(hue(h+1.0/3) * 255)),
		G: int(math.Round(hue(h) * 255)),
		B: int(math.Round(hue(h-1.0/3) * 255)),
	}
}

// RGBToHSL converts sRGB to hue [0,360), saturation and lightness [0,1].
func RGBToHSL(c RGB) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l
}

// RGBToLab converts sRGB to CIE Lab via linear RGB and XYZ, D65 white point,
// using the 0.008856 / 7.787 piecewise cube-root approximation.
func RGBToLab(c RGB) Lab {
	lin := func(v float64) float64 {
		if v > 0.04045 {
			return math.Pow((v+0.055)/1.055, 2.4)
		}
		return v / 12.92
	}
	r := lin(float64(c.R) / 255)
	g := lin(float64(c.G) / 255)
	b := lin(float64(c.B) / 255)

	x := (r*0.4124 + g*0.3576 + b*0.1805) / 0.95047
	y := (r*0.2126 + g*0.7152 + b*0.0722) / 1.00000
	z := (r*0.0193 + g*0.1192 + b*0.9505) / 1.08883

	f := func(t float64) float64 {
		if t > 0.008856 {
			return math.Cbrt(t)
		}
		return 7.787*t + 16.0/116
	}
	fx, fy, fz := f(x), f(y), f(z)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// ColorDistance returns the Euclidean distance between the Lab coordinates of
// two hex colors (the CIE76 formula, not CIEDE2000 — downstream thresholds
// are tuned against this simpler metric). Invalid input yields +Inf.
func ColorDistance(hexA, hexB string) float64 {
	a, okA := HexToRGB(hexA)
	b, okB := HexToRGB(hexB)
	if !okA || !okB {
		return math.Inf(1)
	}
	la, lb := RGBToLab(a), RGBToLab(b)
	return math.Sqrt((la.L-lb.L)*(la.L-lb.L) + (la.A-lb.A)*(la.A-lb.A) + (la.B-lb.B)*(la.B-lb.B))
}

// ChannelDistance returns the Euclidean distance between two hex colors in
// raw RGB channel space. This is a second, deliberately different closeness
// metric from ColorDistance: blend dedupe was tuned against channel distance
// (threshold 15) while comparison uses Lab distance (threshold 5).
func ChannelDistance(hexA, hexB string) float64 {
	a, okA := HexToRGB(hexA)
	b, okB := HexToRGB(hexB)
	if !okA || !okB {
		return math.Inf(1)
	}
	dr := float64(a.R - b.R)
	dg := float64(a.G - b.G)
	db := float64(a.B - b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// RelativeLuminance computes WCAG relative luminance of a hex color.
// Invalid input yields 0.
func RelativeLuminance(hex string) float64 {
	c, ok := HexToRGB(hex)
	if !ok {
		return 0
	}
	lin := func(v float64) float64 {
		if v > 0.03928 {
			return math.Pow((v+0.055)/1.055, 2.4)
		}
		return v / 12.92
	}
	return 0.2126*lin(float64(c.R)/255) + 0.7152*lin(float64(c.G)/255) + 0.0722*lin(float64(c.B)/255)
}

// ContrastRatio returns the WCAG contrast ratio between two hex colors,
// in [1, 21]. Symmetric in its arguments.
func ContrastRatio(hexA, hexB string) float64 {
	l1 := RelativeLuminance(hexA)
	l2 := RelativeLuminance(hexB)
	if l2 > l1 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// ContrastLevel buckets a contrast ratio into WCAG conformance levels.
type ContrastLevel string

const (
	ContrastAAA     ContrastLevel = "AAA"
	ContrastAA      ContrastLevel = "AA"
	ContrastAALarge ContrastLevel = "AA-large"
	ContrastFail    ContrastLevel = "fail"
)

// ClassifyContrast maps a ratio to its WCAG level.
func ClassifyContrast(ratio float64) ContrastLevel {
	switch {
	case ratio >= 7:
		return ContrastAAA
	case ratio >= 4.5:
		return ContrastAA
	case ratio >= 3:
		return ContrastAALarge
	}
	return ContrastFail
}

// FocusIndicatorOK audits a focus indicator against its adjacent surface:
// contrast at least 3:1 and a visual thickness of at least 2px.
func FocusIndicatorOK(indicatorHex, surfaceHex string, thicknessPx float64) bool {
	return ContrastRatio(indicatorHex, surfaceHex) >= 3 && thicknessPx >= 2
}

// BlendColors linearly interpolates two hex colors in raw RGB channel space
// (t=0 yields a, t=1 yields b). This is a standalone primitive for blending
// two single colors; whole-system merge never averages colors.
func BlendColors(hexA, hexB string, t float64) (string, bool) {
	a, okA := HexToRGB(hexA)
	b, okB := HexToRGB(hexB)
	if !okA || !okB {
		return "", false
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y int) int {
		return int(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}.Hex(), true
}
