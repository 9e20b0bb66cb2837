package impression

import (
	"math"
	"strings"
)

// Match pairs a project value with the reference value it claimed.
type Match struct {
	Project   string  `json:"project"`
	Reference string  `json:"reference"`
	Distance  float64 `json:"distance,omitempty"`
}

// CategoryResult is the outcome of matching one token category.
type CategoryResult struct {
	Exact   []Match  `json:"exact"`
	Similar []Match  `json:"similar"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra"`
	Score   int      `json:"score"`
}

// ComparisonResult is the full outcome of comparing project tokens against a
// reference design system.
type ComparisonResult struct {
	Colors       CategoryResult `json:"colors"`
	Typography   CategoryResult `json:"typography"`
	Spacing      CategoryResult `json:"spacing"`
	BorderRadius CategoryResult `json:"borderRadius"`
	Overall      int            `json:"overall"`
}

// ProjectTokens are the raw token values extracted from a project, before
// matching. Values are normalized (colors to hex) by the scanner.
type ProjectTokens struct {
	Colors       []string `json:"colors"`
	Fonts        []string `json:"fonts"`
	Spacing      []string `json:"spacing"`
	BorderRadius []string `json:"borderRadius"`
}

// Matching thresholds: Lab distance for similar colors, numeric difference
// for close dimensions. These are tuned pairs; see ChannelDistance for the
// blend engine's separate notion of closeness.
const (
	similarColorDistance = 5.0
	closeDimensionDiff   = 2.0
)

// Compare matches a project's extracted tokens against a reference IR.
// Matching is greedy, order-dependent, and claims each reference token at
// most once: exact (case-insensitive) matches are taken in reference order
// first, then similar matches against unclaimed references. Unmatched
// project values are extra; unclaimed reference values are missing.
func Compare(project ProjectTokens, reference *DesignSystem) ComparisonResult {
	result := ComparisonResult{
		Colors: matchCategory(project.Colors, reference.PaletteValues(), 0.8, func(a, b string) (float64, bool) {
			d := ColorDistance(a, b)
			return d, d < similarColorDistance
		}),
		Typography: matchTypography(project.Fonts, reference.Typography.Families),
		Spacing: matchCategory(project.Spacing, reference.Spacing.Scale, 0.7, func(a, b string) (float64, bool) {
			return dimensionDiff(a, b)
		}),
		BorderRadius: matchCategory(project.BorderRadius, tokenValues(reference.BorderRadius), 0.7, func(a, b string) (float64, bool) {
			return dimensionDiff(a, b)
		}),
	}
	total := result.Colors.Score + result.Typography.Score + result.Spacing.Score + result.BorderRadius.Score
	result.Overall = int(math.Round(float64(total) / 4))
	return result
}

// dimensionDiff reports the absolute numeric difference after unit
// stripping, and whether it is within the "close" threshold.
func dimensionDiff(a, b string) (float64, bool) {
	na, okA := ParseDimension(a)
	nb, okB := ParseDimension(b)
	if !okA || !okB {
		return math.Inf(1), false
	}
	d := math.Abs(na - nb)
	return d, d <= closeDimensionDiff
}

// matchCategory runs the greedy claim-once algorithm for one category.
// similarWeight is the score contribution of a similar match relative to an
// exact one.
func matchCategory(project, reference []string, similarWeight float64, similar func(a, b string) (float64, bool)) CategoryResult {
	result := CategoryResult{
		Exact:   []Match{},
		Similar: []Match{},
		Missing: []string{},
		Extra:   []string{},
	}
	claimed := make([]bool, len(reference))

	for _, p := range project {
		matched := false
		// Pass 1: first exact match in reference order wins.
		for i, r := range reference {
			if claimed[i] {
				continue
			}
			if strings.EqualFold(p, r) {
				claimed[i] = true
				result.Exact = append(result.Exact, Match{Project: p, Reference: r})
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		// Pass 2: first unclaimed reference within the similarity threshold.
		for i, r := range reference {
			if claimed[i] {
				continue
			}
			if d, ok := similar(p, r); ok {
				claimed[i] = true
				result.Similar = append(result.Similar, Match{Project: p, Reference: r, Distance: d})
				matched = true
				break
			}
		}
		if !matched {
			result.Extra = append(result.Extra, p)
		}
	}

	for i, r := range reference {
		if !claimed[i] {
			result.Missing = append(result.Missing, r)
		}
	}

	result.Score = weightedScore(len(result.Exact), len(result.Similar), similarWeight, len(reference))
	return result
}

// weightedScore computes round(((exact + w*similar) / |reference|) * 100),
// substituting a denominator of 1 for an empty reference set so the
// degenerate case reads 0% instead of NaN.
func weightedScore(exact, similar int, similarWeight float64, referenceLen int) int {
	denom := float64(referenceLen)
	if denom == 0 {
		denom = 1
	}
	return int(math.Round((float64(exact) + similarWeight*float64(similar)) / denom * 100))
}

// matchTypography matches font families fuzzily: two families match when
// either string contains the other (case-insensitive) or their first
// space-delimited tokens are equal.
func matchTypography(project []string, reference []FontFamily) CategoryResult {
	result := CategoryResult{
		Exact:   []Match{},
		Similar: []Match{},
		Missing: []string{},
		Extra:   []string{},
	}
	claimed := make([]bool, len(reference))

	for _, p := range project {
		matched := false
		for i, r := range reference {
			if claimed[i] {
				continue
			}
			if fontsMatch(p, r.Family) {
				claimed[i] = true
				if strings.EqualFold(strings.TrimSpace(p), strings.TrimSpace(r.Family)) {
					result.Exact = append(result.Exact, Match{Project: p, Reference: r.Family})
				} else {
					result.Similar = append(result.Similar, Match{Project: p, Reference: r.Family})
				}
				matched = true
				break
			}
		}
		if !matched {
			result.Extra = append(result.Extra, p)
		}
	}

	for i, r := range reference {
		if !claimed[i] {
			result.Missing = append(result.Missing, r.Family)
		}
	}

	// Typography score counts every match fully: |matched| / |referenceFonts|.
	denom := float64(len(reference))
	if denom == 0 {
		denom = 1
	}
	matched := len(result.Exact) + len(result.Similar)
	result.Score = int(math.Round(float64(matched) / denom * 100))
	return result
}

// fontsMatch implements the fuzzy family comparison.
func fontsMatch(a, b string) bool {
	la := strings.ToLower(strings.Trim(strings.TrimSpace(a), `"'`))
	lb := strings.ToLower(strings.Trim(strings.TrimSpace(b), `"'`))
	if la == "" || lb == "" {
		return false
	}
	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		return true
	}
	fa := strings.Fields(la)
	fb := strings.Fields(lb)
	return len(fa) > 0 && len(fb) > 0 && fa[0] == fb[0]
}

// CompareSystems compares a reference against another full IR by projecting
// the candidate's tokens. Comparing a system against itself scores 100 in
// every category.
func CompareSystems(candidate, reference *DesignSystem) ComparisonResult {
	fonts := make([]string, len(candidate.Typography.Families))
	for i, f := range candidate.Typography.Families {
		fonts[i] = f.Family
	}
	return Compare(ProjectTokens{
		Colors:       candidate.PaletteValues(),
		Fonts:        fonts,
		Spacing:      candidate.Spacing.Scale,
		BorderRadius: tokenValues(candidate.BorderRadius),
	}, reference)
}
