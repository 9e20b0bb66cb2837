package impression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpressionRoundTrip(t *testing.T) {
	ds := referenceSystem()
	ds.Meta.Title = "Acme Design System"
	ds.Meta.ExtractedAt = "2024-06-01T00:00:00Z"
	ds.Colors.Variables["--color-primary"] = "#000000"
	ds.Shadows = []Token{{Value: "0 1px 2px #000000", Role: "sm"}}
	ds.Animations.Durations = []string{"150ms", "300ms"}
	ds.Breakpoints.Detected = []float64{640, 768, 1024}

	out, err := GenerateImpression(ds)
	require.NoError(t, err)

	back, err := ParseImpression(out)
	require.NoError(t, err)
	assert.Equal(t, ds, back, "impression is the lossless format")

	// Generating again yields byte-identical output.
	out2, err := GenerateImpression(back)
	require.NoError(t, err)
	assert.Equal(t, out, out2)
}

func TestParseImpressionInvalid(t *testing.T) {
	_, err := ParseImpression([]byte("not json"))
	require.Error(t, err)
}

func TestParseImpressionAllocatesMaps(t *testing.T) {
	ds, err := ParseImpression([]byte(`{"colors":{"palette":[]}}`))
	require.NoError(t, err)
	assert.NotNil(t, ds.Colors.Variables)
	assert.NotNil(t, ds.Animations.Keyframes)
}
