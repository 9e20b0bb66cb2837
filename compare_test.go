package impression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceSystem() *DesignSystem {
	ds := NewDesignSystem()
	ds.Colors.Palette = []Token{
		{Value: "#000000", Count: 10},
		{Value: "#ffffff", Count: 8},
	}
	ds.Typography.Families = []FontFamily{
		{Family: "Inter", Role: "body"},
		{Family: "JetBrains Mono", Role: "mono"},
	}
	ds.Spacing.Scale = []string{"4px", "8px", "16px"}
	ds.BorderRadius = []Token{{Value: "4px"}, {Value: "8px"}}
	return ds
}

func TestCompareColors(t *testing.T) {
	t.Run("near-black counts as similar", func(t *testing.T) {
		result := Compare(ProjectTokens{Colors: []string{"#010101"}}, referenceSystem())

		require.Len(t, result.Colors.Similar, 1)
		assert.Equal(t, "#010101", result.Colors.Similar[0].Project)
		assert.Equal(t, "#000000", result.Colors.Similar[0].Reference)
		assert.Equal(t, []string{"#ffffff"}, result.Colors.Missing)
		assert.Empty(t, result.Colors.Extra)
		// round((0 + 0.8*1) / 2 * 100) = 40
		assert.Equal(t, 40, result.Colors.Score)
	})

	t.Run("exact match is case-insensitive", func(t *testing.T) {
		result := Compare(ProjectTokens{Colors: []string{"#FFFFFF"}}, referenceSystem())
		require.Len(t, result.Colors.Exact, 1)
		assert.Equal(t, "#ffffff", result.Colors.Exact[0].Reference)
	})

	t.Run("each reference claimed at most once", func(t *testing.T) {
		result := Compare(ProjectTokens{Colors: []string{"#000000", "#010101"}}, referenceSystem())
		// #000000 claims the exact slot; #010101 cannot reclaim it and
		// #ffffff is too far away, so it lands in extra.
		require.Len(t, result.Colors.Exact, 1)
		assert.Empty(t, result.Colors.Similar)
		assert.Equal(t, []string{"#010101"}, result.Colors.Extra)
	})

	t.Run("unmatched project values are extra", func(t *testing.T) {
		result := Compare(ProjectTokens{Colors: []string{"#ff0000"}}, referenceSystem())
		assert.Equal(t, []string{"#ff0000"}, result.Colors.Extra)
		assert.Len(t, result.Colors.Missing, 2)
		assert.Zero(t, result.Colors.Score)
	})
}

func TestCompareSpacing(t *testing.T) {
	result := Compare(ProjectTokens{Spacing: []string{"4px", "9px", "40px"}}, referenceSystem())

	require.Len(t, result.Spacing.Exact, 1)
	require.Len(t, result.Spacing.Similar, 1, "9px is within 2 of 8px")
	assert.Equal(t, "8px", result.Spacing.Similar[0].Reference)
	assert.Equal(t, []string{"40px"}, result.Spacing.Extra)
	assert.Equal(t, []string{"16px"}, result.Spacing.Missing)
	// round((1 + 0.7*1) / 3 * 100) = 57
	assert.Equal(t, 57, result.Spacing.Score)
}

func TestCompareTypography(t *testing.T) {
	t.Run("exact and fuzzy matches", func(t *testing.T) {
		result := Compare(ProjectTokens{Fonts: []string{"Inter", "JetBrains Mono, monospace"}}, referenceSystem())
		assert.Len(t, result.Typography.Exact, 1)
		assert.Len(t, result.Typography.Similar, 1)
		// Typography counts every match fully: 2/2.
		assert.Equal(t, 100, result.Typography.Score)
	})

	t.Run("first token match", func(t *testing.T) {
		ref := NewDesignSystem()
		ref.Typography.Families = []FontFamily{{Family: "Roboto Condensed"}}
		result := Compare(ProjectTokens{Fonts: []string{"Roboto Slab"}}, ref)
		assert.Len(t, result.Typography.Similar, 1)
	})

	t.Run("no match", func(t *testing.T) {
		result := Compare(ProjectTokens{Fonts: []string{"Comic Sans MS"}}, referenceSystem())
		assert.Equal(t, []string{"Comic Sans MS"}, result.Typography.Extra)
		assert.Zero(t, result.Typography.Score)
	})
}

func TestCompareEmptyReferenceCategory(t *testing.T) {
	ref := NewDesignSystem()
	result := Compare(ProjectTokens{Colors: []string{"#123456"}}, ref)
	assert.Zero(t, result.Colors.Score, "empty reference reads 0%, not NaN")
	assert.Equal(t, []string{"#123456"}, result.Colors.Extra)
}

func TestCompareOverallIsMeanOfCategories(t *testing.T) {
	result := Compare(ProjectTokens{
		Colors:       []string{"#000000", "#ffffff"},
		Fonts:        []string{"Inter", "JetBrains Mono"},
		Spacing:      []string{"4px", "8px", "16px"},
		BorderRadius: []string{"4px", "8px"},
	}, referenceSystem())

	assert.Equal(t, 100, result.Colors.Score)
	assert.Equal(t, 100, result.Typography.Score)
	assert.Equal(t, 100, result.Spacing.Score)
	assert.Equal(t, 100, result.BorderRadius.Score)
	assert.Equal(t, 100, result.Overall)
}

func TestCompareSystemsSelfIdentity(t *testing.T) {
	ref := referenceSystem()
	result := CompareSystems(ref, ref)
	assert.Equal(t, 100, result.Overall, "a populated system compared with itself scores 100")
}

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name       string
		exact, sim int
		weight     float64
		refLen     int
		want       int
	}{
		{name: "all exact", exact: 2, sim: 0, weight: 0.8, refLen: 2, want: 100},
		{name: "one similar color", exact: 0, sim: 1, weight: 0.8, refLen: 2, want: 40},
		{name: "dimension weight", exact: 1, sim: 1, weight: 0.7, refLen: 3, want: 57},
		{name: "empty reference", exact: 0, sim: 0, weight: 0.8, refLen: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, weightedScore(tt.exact, tt.sim, tt.weight, tt.refLen))
		})
	}
}
