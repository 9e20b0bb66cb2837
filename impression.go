// Package impression extracts, represents, compares, and converts design
// tokens (colors, typography, spacing, shadows, radii, motion) across the
// interchange formats used by front-end tooling.
//
// Every supported format parses into one canonical model, DesignSystem, and
// every output format is generated from it:
//
//	data, _ := os.ReadFile("tokens.json")
//	format := impression.DetectFormat(data)
//	ds, err := impression.Parse(format, data)
//	out, err := impression.Generate(impression.FormatTailwind, ds)
//
// # Comparison
//
// Compare a project's extracted tokens against a reference system:
//
//	result, scan, err := impression.CompareProject("web/src", "brand.json")
//
// # Blending
//
// Merge several systems into one hybrid, with relative weights:
//
//	hybrid, err := impression.Blend(systems, impression.BlendOptions{
//		Weights:  []float64{2, 1},
//		Strategy: impression.StrategyMerge,
//	})
//
// # Versioning
//
// Snapshot stores are append-only logs of content-addressed IR copies with
// a single mutable current pointer; see Store.
//
// # CLI Tool
//
// impression also provides a CLI tool. Install with:
//
//	go install github.com/impresslabs/impression/cmd/impression@latest
package impression
