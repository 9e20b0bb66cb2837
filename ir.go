package impression

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Token is a single design decision: a color, size, duration, shadow layer.
// Value is normalized to hex-or-raw-dimension inside the IR. Role is an
// optional semantic tag used to round-trip names across formats. Count
// records observed frequency from extraction; Source indexes the input
// system a token came from and is set only during blending.
type Token struct {
	Value  string `json:"value"`
	Role   string `json:"role,omitempty"`
	Name   string `json:"name,omitempty"`
	Count  int    `json:"count,omitempty"`
	Source int    `json:"source,omitempty"`
}

// SemanticColors groups palette entries by their UI role.
type SemanticColors struct {
	Backgrounds []Token `json:"backgrounds"`
	Text        []Token `json:"text"`
	Borders     []Token `json:"borders"`
	Accents     []Token `json:"accents"`
}

// Colors holds every color-valued token of a design system.
type Colors struct {
	Variables map[string]string `json:"variables,omitempty"`
	Palette   []Token           `json:"palette"`
	Semantic  SemanticColors    `json:"semantic"`
}

// FontFamily is one observed font stack with its role (heading, body, mono).
type FontFamily struct {
	Family string `json:"family"`
	Role   string `json:"role,omitempty"`
	Weight string `json:"weight,omitempty"`
	Style  string `json:"style,omitempty"`
}

// Typography holds font families and the numeric type scale.
type Typography struct {
	Families      []FontFamily `json:"families"`
	Scale         []string     `json:"scale"`
	Weights       []string     `json:"weights"`
	LineHeights   []Token      `json:"lineHeights"`
	LetterSpacing []Token      `json:"letterSpacing"`
}

// Spacing holds the spacing scale and the inferred base grid unit.
type Spacing struct {
	Scale []string `json:"scale"`
	Grid  float64  `json:"grid,omitempty"`
}

// Animations holds keyframe names, durations, and easing curves.
type Animations struct {
	Keyframes map[string]string `json:"keyframes,omitempty"`
	Durations []string          `json:"durations"`
	Easings   []string          `json:"easings"`
}

// Breakpoints holds detected viewport breakpoints and container widths in px.
type Breakpoints struct {
	Detected        []float64 `json:"detected"`
	ContainerWidths []float64 `json:"containerWidths"`
}

// Meta carries provenance: where the system came from and when.
type Meta struct {
	URL             string   `json:"url,omitempty"`
	Title           string   `json:"title,omitempty"`
	ExtractedAt     string   `json:"extractedAt,omitempty"`
	DesignCharacter string   `json:"designCharacter,omitempty"`
	Sources         []string `json:"sources,omitempty"`
}

// DesignSystem is the canonical, format-neutral token model. Every parser
// produces one and every generator consumes one. Generators and the
// comparison engine are pure readers; only parsers and the blend engine
// construct new instances.
type DesignSystem struct {
	Colors       Colors      `json:"colors"`
	Typography   Typography  `json:"typography"`
	Spacing      Spacing     `json:"spacing"`
	Shadows      []Token     `json:"shadows"`
	BorderRadius []Token     `json:"borderRadius"`
	Animations   Animations  `json:"animations"`
	Breakpoints  Breakpoints `json:"breakpoints"`
	Meta         Meta        `json:"meta"`
}

// NewDesignSystem returns an empty IR with allocated maps.
func NewDesignSystem() *DesignSystem {
	return &DesignSystem{
		Colors:     Colors{Variables: map[string]string{}},
		Animations: Animations{Keyframes: map[string]string{}},
	}
}

var numericPrefixRe = regexp.MustCompile(`^-?\d*\.?\d+`)

// ParseDimension strips a trailing unit and parses the numeric prefix.
// ok is false when the value has no finite numeric prefix.
func ParseDimension(value string) (float64, bool) {
	m := numericPrefixRe.FindString(strings.TrimSpace(value))
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeScale drops entries that do not parse to a finite number after
// unit stripping, dedupes, and sorts the remainder numerically. Scale arrays
// in the IR are numeric-sortable by invariant.
func NormalizeScale(values []string) []string {
	type entry struct {
		raw string
		n   float64
	}
	var entries []entry
	seen := make(map[string]bool)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		n, ok := ParseDimension(v)
		if !ok {
			continue
		}
		seen[v] = true
		entries = append(entries, entry{raw: v, n: n})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].n < entries[j].n })
	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.raw
	}
	return result
}

// AddPaletteColor appends a color to the palette, normalized to hex, unless
// an entry with the same normalized value already exists (exact dedupe;
// perceptual dedupe is the blend engine's job). Non-colors are ignored.
func (ds *DesignSystem) AddPaletteColor(value, role string) {
	hex, ok := NormalizeColor(value)
	if !ok {
		return
	}
	for i := range ds.Colors.Palette {
		if ds.Colors.Palette[i].Value == hex {
			ds.Colors.Palette[i].Count++
			if ds.Colors.Palette[i].Role == "" && role != "" {
				ds.Colors.Palette[i].Role = role
			}
			return
		}
	}
	ds.Colors.Palette = append(ds.Colors.Palette, Token{Value: hex, Role: role, Count: 1})
}

// SortPaletteByCount orders the palette by descending observed frequency,
// preserving insertion order among ties.
func (ds *DesignSystem) SortPaletteByCount() {
	sort.SliceStable(ds.Colors.Palette, func(i, j int) bool {
		return ds.Colors.Palette[i].Count > ds.Colors.Palette[j].Count
	})
}

// PaletteValues returns the palette's hex values in order.
func (ds *DesignSystem) PaletteValues() []string {
	values := make([]string, len(ds.Colors.Palette))
	for i, t := range ds.Colors.Palette {
		values[i] = t.Value
	}
	return values
}

// tokenValues extracts the raw values from a token slice.
func tokenValues(tokens []Token) []string {
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.Value
	}
	return values
}

// addUnique appends value to list if not already present (case-sensitive).
func addUnique(list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return list
	}
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// addUniqueToken appends a token if no existing token has the same value.
func addUniqueToken(list []Token, tok Token) []Token {
	if strings.TrimSpace(tok.Value) == "" {
		return list
	}
	for _, t := range list {
		if t.Value == tok.Value {
			return list
		}
	}
	return append(list, tok)
}
