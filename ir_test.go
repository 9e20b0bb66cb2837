package impression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		value  string
		want   float64
		wantOK bool
	}{
		{value: "16px", want: 16, wantOK: true},
		{value: "1.5rem", want: 1.5, wantOK: true},
		{value: "-4px", want: -4, wantOK: true},
		{value: ".5em", want: 0.5, wantOK: true},
		{value: "  8  ", want: 8, wantOK: true},
		{value: "auto", wantOK: false},
		{value: "", wantOK: false},
		{value: "calc(100% - 4px)", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := ParseDimension(tt.value)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}

func TestNormalizeScale(t *testing.T) {
	t.Run("sorts numerically", func(t *testing.T) {
		got := NormalizeScale([]string{"16px", "4px", "8px", "2px"})
		assert.Equal(t, []string{"2px", "4px", "8px", "16px"}, got)
	})

	t.Run("drops unparsable entries", func(t *testing.T) {
		got := NormalizeScale([]string{"4px", "auto", "inherit", "8px"})
		assert.Equal(t, []string{"4px", "8px"}, got)
	})

	t.Run("dedupes", func(t *testing.T) {
		got := NormalizeScale([]string{"4px", "4px", "8px"})
		assert.Equal(t, []string{"4px", "8px"}, got)
	})

	t.Run("mixed units sort by numeric prefix", func(t *testing.T) {
		// Unit-blind by design: 0.5rem sorts before 2px.
		got := NormalizeScale([]string{"2px", "0.5rem"})
		assert.Equal(t, []string{"0.5rem", "2px"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeScale(nil))
	})
}

func TestAddPaletteColor(t *testing.T) {
	t.Run("normalizes and counts", func(t *testing.T) {
		ds := NewDesignSystem()
		ds.AddPaletteColor("#FFF", "")
		ds.AddPaletteColor("white", "")
		ds.AddPaletteColor("rgb(255, 255, 255)", "")

		require.Len(t, ds.Colors.Palette, 1)
		assert.Equal(t, "#ffffff", ds.Colors.Palette[0].Value)
		assert.Equal(t, 3, ds.Colors.Palette[0].Count)
	})

	t.Run("ignores non-colors", func(t *testing.T) {
		ds := NewDesignSystem()
		ds.AddPaletteColor("transparent", "")
		ds.AddPaletteColor("url(#gradient)", "")
		assert.Empty(t, ds.Colors.Palette)
	})

	t.Run("first non-empty role sticks", func(t *testing.T) {
		ds := NewDesignSystem()
		ds.AddPaletteColor("#336699", "")
		ds.AddPaletteColor("#336699", "primary")
		ds.AddPaletteColor("#336699", "accent")
		require.Len(t, ds.Colors.Palette, 1)
		assert.Equal(t, "primary", ds.Colors.Palette[0].Role)
	})

	t.Run("near colors stay distinct", func(t *testing.T) {
		// Exact dedupe only; perceptual dedupe belongs to the blend engine.
		ds := NewDesignSystem()
		ds.AddPaletteColor("#000000", "")
		ds.AddPaletteColor("#010101", "")
		assert.Len(t, ds.Colors.Palette, 2)
	})
}

func TestSortPaletteByCount(t *testing.T) {
	ds := NewDesignSystem()
	ds.Colors.Palette = []Token{
		{Value: "#111111", Count: 2},
		{Value: "#222222", Count: 9},
		{Value: "#333333", Count: 2},
	}
	ds.SortPaletteByCount()
	assert.Equal(t, []string{"#222222", "#111111", "#333333"}, ds.PaletteValues(),
		"descending by count, stable among ties")
}
