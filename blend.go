package impression

import (
	"fmt"
	"math"
)

// BlendStrategy selects how N design systems are combined.
type BlendStrategy string

const (
	// StrategyMerge unions every category across all inputs, deduplicating
	// colors whose raw RGB channel distance falls below the threshold.
	StrategyMerge BlendStrategy = "merge"
	// StrategyPrefer takes the first input wholesale and fills only
	// categories that are entirely empty from subsequent inputs, in order.
	// There is no partial merging within a populated category.
	StrategyPrefer BlendStrategy = "prefer"
)

// DefaultDedupeThreshold is the raw RGB channel distance below which two
// palette colors are considered duplicates during merge. Note this is a
// different metric from the Lab distance the comparison engine uses.
const DefaultDedupeThreshold = 15.0

// BlendOptions configures a blend.
type BlendOptions struct {
	// Weights are relative per-input weights; they are normalized to sum to
	// 1 before use and scale token counts for ranking. They never
	// interpolate colors. Missing entries default to equal weight.
	Weights  []float64
	Strategy BlendStrategy
	// DedupeThreshold overrides DefaultDedupeThreshold when > 0.
	DedupeThreshold float64
}

// Blend merges N design systems into one hybrid IR. The inputs are not
// mutated. Token Source fields on the output palette index the originating
// input.
func Blend(systems []*DesignSystem, opts BlendOptions) (*DesignSystem, error) {
	if len(systems) == 0 {
		return nil, fmt.Errorf("blend requires at least one input system")
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyMerge
	}
	weights, err := normalizeWeights(opts.Weights, len(systems))
	if err != nil {
		return nil, err
	}

	switch strategy {
	case StrategyMerge:
		threshold := opts.DedupeThreshold
		if threshold <= 0 {
			threshold = DefaultDedupeThreshold
		}
		return blendMerge(systems, weights, threshold), nil
	case StrategyPrefer:
		return blendPrefer(systems), nil
	}
	return nil, fmt.Errorf("unknown blend strategy %q (supported: merge, prefer)", strategy)
}

// normalizeWeights pads or validates the weight vector and scales it to sum
// to 1.
func normalizeWeights(weights []float64, n int) ([]float64, error) {
	if len(weights) == 0 {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != n {
		return nil, fmt.Errorf("blend: %d weights for %d inputs", len(weights), n)
	}
	var sum float64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("blend: negative weight %v", w)
		}
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("blend: weights sum to zero")
	}
	normalized := make([]float64, n)
	for i, w := range weights {
		normalized[i] = w / sum
	}
	return normalized, nil
}

// blendMerge unions every category, deduplicating colors perceptually and
// everything else exactly.
func blendMerge(systems []*DesignSystem, weights []float64, threshold float64) *DesignSystem {
	out := NewDesignSystem()
	out.Meta.DesignCharacter = "hybrid"

	for idx, ds := range systems {
		weight := weights[idx]
		out.Meta.Sources = append(out.Meta.Sources, sourceLabel(ds, idx))

		for _, tok := range ds.Colors.Palette {
			count := int(math.Round(float64(max(tok.Count, 1)) * weight * float64(len(systems))))
			if count < 1 {
				count = 1
			}
			mergePaletteColor(out, Token{Value: tok.Value, Role: tok.Role, Count: count, Source: idx}, threshold)
		}
		for name, v := range ds.Colors.Variables {
			if _, exists := out.Colors.Variables[name]; !exists {
				out.Colors.Variables[name] = v
			}
		}
		for _, f := range ds.Typography.Families {
			addFontFamily(out, f.Family, f.Role)
		}
		for _, v := range ds.Typography.Scale {
			out.Typography.Scale = addUnique(out.Typography.Scale, v)
		}
		for _, v := range ds.Typography.Weights {
			out.Typography.Weights = addUnique(out.Typography.Weights, v)
		}
		for _, t := range ds.Typography.LineHeights {
			out.Typography.LineHeights = addUniqueToken(out.Typography.LineHeights, t)
		}
		for _, t := range ds.Typography.LetterSpacing {
			out.Typography.LetterSpacing = addUniqueToken(out.Typography.LetterSpacing, t)
		}
		for _, v := range ds.Spacing.Scale {
			out.Spacing.Scale = addUnique(out.Spacing.Scale, v)
		}
		for _, t := range ds.Shadows {
			out.Shadows = addUniqueToken(out.Shadows, t)
		}
		for _, t := range ds.BorderRadius {
			out.BorderRadius = addUniqueToken(out.BorderRadius, t)
		}
		for name, v := range ds.Animations.Keyframes {
			if _, exists := out.Animations.Keyframes[name]; !exists {
				out.Animations.Keyframes[name] = v
			}
		}
		for _, v := range ds.Animations.Durations {
			out.Animations.Durations = addUnique(out.Animations.Durations, v)
		}
		for _, v := range ds.Animations.Easings {
			out.Animations.Easings = addUnique(out.Animations.Easings, v)
		}
		out.Breakpoints.Detected = mergeNumbers(out.Breakpoints.Detected, ds.Breakpoints.Detected)
		out.Breakpoints.ContainerWidths = mergeNumbers(out.Breakpoints.ContainerWidths, ds.Breakpoints.ContainerWidths)
	}

	out.Typography.Scale = NormalizeScale(out.Typography.Scale)
	out.Spacing.Scale = NormalizeScale(out.Spacing.Scale)
	out.SortPaletteByCount()
	return out
}

// mergePaletteColor adds a color unless an existing palette entry is within
// the channel-distance threshold; near-duplicates accumulate the incoming
// count onto the survivor (colors are deduplicated, never averaged).
func mergePaletteColor(out *DesignSystem, tok Token, threshold float64) {
	for i := range out.Colors.Palette {
		if ChannelDistance(out.Colors.Palette[i].Value, tok.Value) < threshold {
			out.Colors.Palette[i].Count += tok.Count
			if out.Colors.Palette[i].Role == "" && tok.Role != "" {
				out.Colors.Palette[i].Role = tok.Role
			}
			return
		}
	}
	out.Colors.Palette = append(out.Colors.Palette, tok)
}

// blendPrefer copies the first system and fills empty categories from later
// inputs in order.
func blendPrefer(systems []*DesignSystem) *DesignSystem {
	out := cloneSystem(systems[0])
	out.Meta.DesignCharacter = "hybrid"
	out.Meta.Sources = nil
	for idx, ds := range systems {
		out.Meta.Sources = append(out.Meta.Sources, sourceLabel(ds, idx))
	}

	for _, ds := range systems[1:] {
		if len(out.Colors.Palette) == 0 {
			out.Colors.Palette = append([]Token(nil), ds.Colors.Palette...)
		}
		if len(out.Typography.Families) == 0 {
			out.Typography.Families = append([]FontFamily(nil), ds.Typography.Families...)
		}
		if len(out.Typography.Scale) == 0 {
			out.Typography.Scale = append([]string(nil), ds.Typography.Scale...)
		}
		if len(out.Spacing.Scale) == 0 {
			out.Spacing.Scale = append([]string(nil), ds.Spacing.Scale...)
		}
		if len(out.Shadows) == 0 {
			out.Shadows = append([]Token(nil), ds.Shadows...)
		}
		if len(out.BorderRadius) == 0 {
			out.BorderRadius = append([]Token(nil), ds.BorderRadius...)
		}
		if len(out.Animations.Durations) == 0 {
			out.Animations.Durations = append([]string(nil), ds.Animations.Durations...)
		}
		if len(out.Animations.Easings) == 0 {
			out.Animations.Easings = append([]string(nil), ds.Animations.Easings...)
		}
		if len(out.Breakpoints.Detected) == 0 {
			out.Breakpoints.Detected = append([]float64(nil), ds.Breakpoints.Detected...)
		}
	}
	return out
}

// cloneSystem deep-copies an IR so blend outputs never alias their inputs.
func cloneSystem(ds *DesignSystem) *DesignSystem {
	out := *ds
	out.Colors.Palette = append([]Token(nil), ds.Colors.Palette...)
	out.Colors.Variables = make(map[string]string, len(ds.Colors.Variables))
	for k, v := range ds.Colors.Variables {
		out.Colors.Variables[k] = v
	}
	out.Colors.Semantic.Backgrounds = append([]Token(nil), ds.Colors.Semantic.Backgrounds...)
	out.Colors.Semantic.Text = append([]Token(nil), ds.Colors.Semantic.Text...)
	out.Colors.Semantic.Borders = append([]Token(nil), ds.Colors.Semantic.Borders...)
	out.Colors.Semantic.Accents = append([]Token(nil), ds.Colors.Semantic.Accents...)
	out.Typography.Families = append([]FontFamily(nil), ds.Typography.Families...)
	out.Typography.Scale = append([]string(nil), ds.Typography.Scale...)
	out.Typography.Weights = append([]string(nil), ds.Typography.Weights...)
	out.Typography.LineHeights = append([]Token(nil), ds.Typography.LineHeights...)
	out.Typography.LetterSpacing = append([]Token(nil), ds.Typography.LetterSpacing...)
	out.Spacing.Scale = append([]string(nil), ds.Spacing.Scale...)
	out.Shadows = append([]Token(nil), ds.Shadows...)
	out.BorderRadius = append([]Token(nil), ds.BorderRadius...)
	out.Animations.Keyframes = make(map[string]string, len(ds.Animations.Keyframes))
	for k, v := range ds.Animations.Keyframes {
		out.Animations.Keyframes[k] = v
	}
	out.Animations.Durations = append([]string(nil), ds.Animations.Durations...)
	out.Animations.Easings = append([]string(nil), ds.Animations.Easings...)
	out.Breakpoints.Detected = append([]float64(nil), ds.Breakpoints.Detected...)
	out.Breakpoints.ContainerWidths = append([]float64(nil), ds.Breakpoints.ContainerWidths...)
	out.Meta.Sources = append([]string(nil), ds.Meta.Sources...)
	return &out
}

func sourceLabel(ds *DesignSystem, idx int) string {
	switch {
	case ds.Meta.Title != "":
		return ds.Meta.Title
	case ds.Meta.URL != "":
		return ds.Meta.URL
	}
	return fmt.Sprintf("source-%d", idx+1)
}

func mergeNumbers(dst, src []float64) []float64 {
	for _, n := range src {
		found := false
		for _, existing := range dst {
			if existing == n {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, n)
		}
	}
	return dst
}
