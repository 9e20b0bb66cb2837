package impression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		want   RGB
		wantOK bool
	}{
		{name: "six digit", hex: "#1a2b3c", want: RGB{R: 0x1a, G: 0x2b, B: 0x3c}, wantOK: true},
		{name: "three digit expands", hex: "#abc", want: RGB{R: 0xaa, G: 0xbb, B: 0xcc}, wantOK: true},
		{name: "no hash prefix", hex: "ff0000", want: RGB{R: 255}, wantOK: true},
		{name: "uppercase", hex: "#FFFFFF", want: RGB{R: 255, G: 255, B: 255}, wantOK: true},
		{name: "four digits rejected", hex: "#abcd", wantOK: false},
		{name: "non-hex characters", hex: "#zzzzzz", wantOK: false},
		{name: "empty", hex: "", wantOK: false},
		{name: "gradient is not a color", hex: "linear-gradient(#fff, #000)", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HexToRGB(tt.hex)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   string
		wantOK bool
	}{
		{name: "hex passthrough", value: "#1A2B3C", want: "#1a2b3c", wantOK: true},
		{name: "short hex", value: "#fff", want: "#ffffff", wantOK: true},
		{name: "keyword", value: "white", want: "#ffffff", wantOK: true},
		{name: "keyword case-insensitive", value: "Navy", want: "#000080", wantOK: true},
		{name: "rgb function", value: "rgb(255, 0, 0)", want: "#ff0000", wantOK: true},
		{name: "rgba drops alpha", value: "rgba(0, 128, 0, 0.5)", want: "#008000", wantOK: true},
		{name: "hsl function", value: "hsl(0, 100%, 50%)", want: "#ff0000", wantOK: true},
		{name: "hsl green", value: "hsl(120, 100%, 25%)", want: "#008000", wantOK: true},
		{name: "transparent is not a color", value: "transparent", wantOK: false},
		{name: "currentColor is not a color", value: "currentColor", wantOK: false},
		{name: "rgb channel overflow", value: "rgb(300, 0, 0)", wantOK: false},
		{name: "empty", value: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeColor(tt.value)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for _, hex := range []string{"#ff0000", "#008000", "#336699", "#808080", "#000000", "#ffffff"} {
		c, ok := HexToRGB(hex)
		require.True(t, ok)
		h, s, l := RGBToHSL(c)
		assert.Equal(t, hex, HSLToRGB(h, s, l).Hex(), "round-trip of %s", hex)
	}
}

func TestColorDistance(t *testing.T) {
	t.Run("identity is zero", func(t *testing.T) {
		assert.Zero(t, ColorDistance("#336699", "#336699"))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, ColorDistance("#000000", "#ffffff"), ColorDistance("#ffffff", "#000000"))
	})

	t.Run("near-identical colors are similar", func(t *testing.T) {
		// The canonical near-black case: one channel step away.
		assert.Less(t, ColorDistance("#010101", "#000000"), 5.0)
	})

	t.Run("distinct colors are far apart", func(t *testing.T) {
		assert.Greater(t, ColorDistance("#ff0000", "#0000ff"), 50.0)
	})

	t.Run("invalid input yields +Inf", func(t *testing.T) {
		assert.True(t, math.IsInf(ColorDistance("nope", "#000000"), 1))
		assert.True(t, math.IsInf(ColorDistance("#000000", ""), 1))
	})
}

func TestChannelDistance(t *testing.T) {
	assert.Zero(t, ChannelDistance("#abcdef", "#abcdef"))
	assert.InDelta(t, 255, ChannelDistance("#000000", "#0000ff"), 0.001)
	assert.InDelta(t, math.Sqrt(3), ChannelDistance("#000000", "#010101"), 0.001)
	assert.True(t, math.IsInf(ChannelDistance("bad", "#000000"), 1))
}

// The comparison engine measures closeness in Lab space (threshold 5) while
// merge dedupe measures raw channel distance (threshold 15). The two metrics
// genuinely disagree on dark saturated colors; this pins that behavior.
func TestClosenessMetricsDiffer(t *testing.T) {
	const a, b = "#000000", "#00000e"
	assert.Greater(t, ColorDistance(a, b), 5.0, "Lab distance should exceed the similarity threshold")
	assert.Less(t, ChannelDistance(a, b), 15.0, "channel distance should stay below the dedupe threshold")
}

func TestContrastRatio(t *testing.T) {
	t.Run("black on white is 21", func(t *testing.T) {
		assert.InDelta(t, 21.0, ContrastRatio("#000000", "#ffffff"), 0.001)
	})

	t.Run("identical colors are 1", func(t *testing.T) {
		assert.InDelta(t, 1.0, ContrastRatio("#808080", "#808080"), 0.001)
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, ContrastRatio("#336699", "#ffffff"), ContrastRatio("#ffffff", "#336699"))
	})

	t.Run("bounded", func(t *testing.T) {
		for _, pair := range [][2]string{
			{"#123456", "#fedcba"},
			{"#ff0000", "#00ff00"},
			{"#777777", "#888888"},
		} {
			ratio := ContrastRatio(pair[0], pair[1])
			assert.GreaterOrEqual(t, ratio, 1.0)
			assert.LessOrEqual(t, ratio, 21.0)
		}
	})
}

func TestClassifyContrast(t *testing.T) {
	tests := []struct {
		ratio float64
		want  ContrastLevel
	}{
		{21, ContrastAAA},
		{7, ContrastAAA},
		{6.99, ContrastAA},
		{4.5, ContrastAA},
		{4.49, ContrastAALarge},
		{3, ContrastAALarge},
		{2.99, ContrastFail},
		{1, ContrastFail},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyContrast(tt.ratio), "ratio %v", tt.ratio)
	}
}

func TestFocusIndicatorOK(t *testing.T) {
	assert.True(t, FocusIndicatorOK("#000000", "#ffffff", 2))
	assert.False(t, FocusIndicatorOK("#000000", "#ffffff", 1), "too thin")
	assert.False(t, FocusIndicatorOK("#eeeeee", "#ffffff", 2), "too little contrast")
}

func TestBlendColors(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		t      float64
		want   string
		wantOK bool
	}{
		{name: "t=0 yields a", a: "#000000", b: "#ffffff", t: 0, want: "#000000", wantOK: true},
		{name: "t=1 yields b", a: "#000000", b: "#ffffff", t: 1, want: "#ffffff", wantOK: true},
		{name: "midpoint", a: "#000000", b: "#ffffff", t: 0.5, want: "#808080", wantOK: true},
		{name: "t clamped below", a: "#102030", b: "#ffffff", t: -2, want: "#102030", wantOK: true},
		{name: "t clamped above", a: "#102030", b: "#405060", t: 5, want: "#405060", wantOK: true},
		{name: "invalid input", a: "oops", b: "#ffffff", t: 0.5, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BlendColors(tt.a, tt.b, tt.t)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
