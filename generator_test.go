package impression

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnknownFormat(t *testing.T) {
	_, err := Generate(FormatUnknown, NewDesignSystem())
	require.Error(t, err)
}

func TestOrdinalAt(t *testing.T) {
	assert.Equal(t, "xs", ordinalAt(sizeOrdinals, 0))
	assert.Equal(t, "sm", ordinalAt(sizeOrdinals, 1))
	assert.Equal(t, "base", ordinalAt(sizeOrdinals, 2))
	assert.Equal(t, "9xl", ordinalAt(sizeOrdinals, 12))
	assert.Equal(t, "9xl-2", ordinalAt(sizeOrdinals, 13), "numbered suffix past the table")
	assert.Equal(t, "9xl-3", ordinalAt(sizeOrdinals, 14))

	assert.Equal(t, "sm", ordinalAt(radiusOrdinals, 0))
	assert.Equal(t, "DEFAULT", ordinalAt(radiusOrdinals, 1))
	assert.Equal(t, "full", ordinalAt(radiusOrdinals, 7))

	assert.Equal(t, "fast", ordinalAt(durationOrdinals, 0))
	assert.Equal(t, "slower-2", ordinalAt(durationOrdinals, 5))

	assert.Equal(t, "primary", ordinalAt(colorOrdinals, 0))
	assert.Equal(t, "error", ordinalAt(colorOrdinals, 8))
}

func TestTokenSlot(t *testing.T) {
	assert.Equal(t, "brand", tokenSlot(Token{Role: "brand"}, 3, colorOrdinals), "role wins over position")
	assert.Equal(t, "neutral", tokenSlot(Token{}, 3, colorOrdinals))
}

func TestGenerateW3CRoundTrip(t *testing.T) {
	ds := NewDesignSystem()
	ds.Colors.Palette = []Token{{Value: "#336699", Role: "primary"}, {Value: "#ffffff"}}
	ds.Typography.Families = []FontFamily{{Family: "Inter", Role: "body"}}
	ds.Typography.Scale = []string{"14px", "16px"}
	ds.Spacing.Scale = []string{"4px", "8px"}
	ds.BorderRadius = []Token{{Value: "6px", Role: "md"}}
	ds.Shadows = []Token{{Value: "0 1px 2px #000000", Role: "sm"}}
	ds.Animations.Durations = []string{"150ms"}

	out, err := Generate(FormatW3C, ds)
	require.NoError(t, err)
	assert.Equal(t, FormatW3C, DetectFormat(out), "output detects as its own format")

	back, err := Parse(FormatW3C, out)
	require.NoError(t, err)

	assert.ElementsMatch(t, ds.PaletteValues(), back.PaletteValues())
	assert.Equal(t, ds.Spacing.Scale, back.Spacing.Scale)
	assert.Equal(t, ds.Typography.Scale, back.Typography.Scale)
	require.Len(t, back.Typography.Families, 1)
	assert.Equal(t, "Inter", back.Typography.Families[0].Family)
	assert.Equal(t, tokenValues(ds.BorderRadius), tokenValues(back.BorderRadius))
	assert.Equal(t, tokenValues(ds.Shadows), tokenValues(back.Shadows))
	assert.Equal(t, ds.Animations.Durations, back.Animations.Durations)
}

func TestGenerateStyleDictionaryShape(t *testing.T) {
	ds := NewDesignSystem()
	ds.Colors.Palette = []Token{{Value: "#336699"}}
	ds.Spacing.Scale = []string{"4px"}

	out, err := Generate(FormatStyleDictionary, ds)
	require.NoError(t, err)
	assert.Equal(t, FormatStyleDictionary, DetectFormat(out))

	var root map[string]any
	require.NoError(t, json.Unmarshal(out, &root))
	color := root["color"].(map[string]any)
	primary := color["primary"].(map[string]any)
	assert.Equal(t, "#336699", primary["value"])
	assert.Equal(t, "color", primary["type"])
}

func TestGenerateTailwindRoundTrip(t *testing.T) {
	ds := NewDesignSystem()
	ds.Colors.Palette = []Token{{Value: "#336699", Role: "brand"}}
	ds.Typography.Families = []FontFamily{{Family: "Inter"}}
	ds.Typography.Scale = []string{"14px"}
	ds.Spacing.Scale = []string{"4px"}
	ds.Breakpoints.Detected = []float64{640, 768}
	ds.Animations.Durations = []string{"150ms"}

	out, err := Generate(FormatTailwind, ds)
	require.NoError(t, err)
	assert.Equal(t, FormatTailwind, DetectFormat(out))

	t.Run("everything under theme.extend", func(t *testing.T) {
		var root map[string]any
		require.NoError(t, json.Unmarshal(out, &root))
		theme := root["theme"].(map[string]any)
		extend := theme["extend"].(map[string]any)
		assert.Contains(t, extend, "colors")
		assert.Contains(t, extend, "screens")
	})

	t.Run("fallback stack appended", func(t *testing.T) {
		assert.Contains(t, string(out), "sans-serif")
	})

	back, err := Parse(FormatTailwind, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"#336699"}, back.PaletteValues())
	assert.Equal(t, []string{"4px"}, back.Spacing.Scale)
	assert.Equal(t, []string{"14px"}, back.Typography.Scale)
	assert.ElementsMatch(t, []float64{640, 768}, back.Breakpoints.Detected)
	require.Len(t, back.Typography.Families, 1)
	assert.Equal(t, "Inter", back.Typography.Families[0].Family)
}

func TestGenerateFigmaRoundTrip(t *testing.T) {
	ds := NewDesignSystem()
	ds.Colors.Palette = []Token{{Value: "#336699", Role: "primary"}}
	ds.Spacing.Scale = []string{"4px"}
	ds.BorderRadius = []Token{{Value: "6px"}}

	out, err := Generate(FormatFigma, ds)
	require.NoError(t, err)
	assert.Equal(t, FormatFigma, DetectFormat(out))

	back, err := Parse(FormatFigma, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"#336699"}, back.PaletteValues())
	assert.Equal(t, []string{"4px"}, back.Spacing.Scale)
	assert.Equal(t, []string{"6px"}, tokenValues(back.BorderRadius))
}

func TestGenerateShadcn(t *testing.T) {
	t.Run("slots from roles", func(t *testing.T) {
		ds := NewDesignSystem()
		ds.Colors.Palette = []Token{
			{Value: "#ffffff", Role: "background"},
			{Value: "#0a0a0a", Role: "foreground"},
			{Value: "#336699", Role: "primary"},
		}
		ds.BorderRadius = []Token{{Value: "0.75rem"}}

		out, err := Generate(FormatShadcn, ds)
		require.NoError(t, err)
		text := string(out)

		assert.Equal(t, FormatShadcn, DetectFormat(out))
		assert.Contains(t, text, "--background: 0.0 0.0% 100.0%;")
		assert.Contains(t, text, "--radius: 0.75rem;")
		for _, slot := range shadcnColorSlots {
			assert.Contains(t, text, "--"+slot+": ", "slot %s always emitted", slot)
		}
	})

	t.Run("poles from luminance", func(t *testing.T) {
		ds := NewDesignSystem()
		ds.Colors.Palette = []Token{
			{Value: "#222222"},
			{Value: "#eeeeee"},
			{Value: "#336699"},
		}
		out, err := Generate(FormatShadcn, ds)
		require.NoError(t, err)
		text := string(out)

		light, _ := hexToHSLTriplet("#eeeeee")
		dark, _ := hexToHSLTriplet("#222222")
		assert.Contains(t, text, "--background: "+light+";")
		assert.Contains(t, text, "--foreground: "+dark+";")
	})

	t.Run("empty palette uses defaults", func(t *testing.T) {
		out, err := Generate(FormatShadcn, NewDesignSystem())
		require.NoError(t, err)
		assert.Contains(t, string(out), "--radius: 0.5rem;")
		assert.Contains(t, string(out), "--background: 0.0 0.0% 100.0%;")
	})
}

func TestFontStack(t *testing.T) {
	assert.Equal(t, "Inter, sans-serif", fontStack("Inter"))
	assert.Equal(t, "JetBrains Mono, monospace", fontStack("JetBrains Mono"))
	assert.Equal(t, "Source Serif Pro, serif", fontStack("Source Serif Pro"))
	assert.Equal(t, "Source Sans Pro, sans-serif", fontStack("Source Sans Pro"))
}

func TestGeneratedOutputsEndWithNewline(t *testing.T) {
	ds := referenceSystem()
	for _, format := range Formats() {
		out, err := Generate(format, ds)
		require.NoError(t, err, "format %s", format)
		assert.True(t, strings.HasSuffix(string(out), "\n"), "format %s", format)
	}
}
