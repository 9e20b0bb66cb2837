package impression

import (
	"encoding/json"
	"fmt"
)

// ParseImpression decodes the canonical serialization directly into the IR.
// This is the only lossless format: GenerateImpression(ParseImpression(x))
// round-trips any internally produced IR.
func ParseImpression(data []byte) (*DesignSystem, error) {
	ds := NewDesignSystem()
	if err := json.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("invalid impression JSON: %w", err)
	}
	if ds.Colors.Variables == nil {
		ds.Colors.Variables = map[string]string{}
	}
	if ds.Animations.Keyframes == nil {
		ds.Animations.Keyframes = map[string]string{}
	}
	return ds, nil
}

// GenerateImpression serializes the IR as canonical impression JSON.
func GenerateImpression(ds *DesignSystem) ([]byte, error) {
	out, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding impression JSON: %w", err)
	}
	return append(out, '\n'), nil
}
