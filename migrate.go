package impression

import (
	"fmt"
	"os"
)

// MigrateConfig describes one format conversion.
type MigrateConfig struct {
	InputPath  string
	OutputPath string // empty means the caller writes the returned bytes
	From       Format // FormatUnknown enables detection
	To         Format
}

// MigrateResult reports what a migration did.
type MigrateResult struct {
	From   Format
	To     Format
	Output []byte
	// Warnings lists lossy degradations (unparsable shadows, dropped
	// non-numeric scale entries). The conversion still succeeds.
	Warnings []string
}

// Migrate reads a token file, parses it into the IR, and generates the
// target format. When From is unset the input format is detected; an
// undetectable input is an error, not a guess.
func Migrate(config MigrateConfig) (*MigrateResult, error) {
	data, err := os.ReadFile(config.InputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", config.InputPath, err)
	}

	from := config.From
	if from == FormatUnknown {
		from = DetectFormat(data)
		if from == FormatUnknown {
			return nil, fmt.Errorf("could not detect the token format of %s; pass --from explicitly", config.InputPath)
		}
	}
	if config.To == FormatUnknown {
		return nil, fmt.Errorf("no target format given")
	}

	ds, err := Parse(from, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", config.InputPath, from, err)
	}

	out, err := Generate(config.To, ds)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", config.To, err)
	}

	result := &MigrateResult{
		From:     from,
		To:       config.To,
		Output:   out,
		Warnings: conversionWarnings(ds, config.To),
	}
	if config.OutputPath != "" {
		if err := os.WriteFile(config.OutputPath, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", config.OutputPath, err)
		}
	}
	return result, nil
}

// conversionWarnings lists the IR categories the target format has no
// representation for. The conversion still succeeds; those values are
// simply absent from the output.
func conversionWarnings(ds *DesignSystem, to Format) []string {
	drop := func(n int, what string) string {
		return fmt.Sprintf("%s has no representation for %s; %d values dropped", to, what, n)
	}
	var warnings []string
	switch to {
	case FormatShadcn:
		if n := len(ds.Typography.Families) + len(ds.Typography.Scale) + len(ds.Typography.Weights); n > 0 {
			warnings = append(warnings, drop(n, "typography"))
		}
		if n := len(ds.Spacing.Scale); n > 0 {
			warnings = append(warnings, drop(n, "spacing"))
		}
		if n := len(ds.Shadows); n > 0 {
			warnings = append(warnings, drop(n, "shadows"))
		}
		if n := len(ds.Animations.Durations) + len(ds.Animations.Easings); n > 0 {
			warnings = append(warnings, drop(n, "animation"))
		}
	case FormatFigma:
		if n := len(ds.Animations.Durations) + len(ds.Animations.Easings); n > 0 {
			warnings = append(warnings, drop(n, "animation"))
		}
	case FormatStyleDictionary:
		if n := len(ds.Animations.Easings); n > 0 {
			warnings = append(warnings, drop(n, "easing curves"))
		}
	case FormatCSSVariables:
		if n := len(ds.Typography.Weights); n > 0 {
			warnings = append(warnings, drop(n, "font weights"))
		}
	}
	if to != FormatImpression && to != FormatTailwind {
		if n := len(ds.Breakpoints.Detected); n > 0 {
			warnings = append(warnings, drop(n, "breakpoints"))
		}
	}
	return warnings
}

// LoadReference reads and parses a reference token file in any supported
// format.
func LoadReference(path string) (*DesignSystem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference %s: %w", path, err)
	}
	format := DetectFormat(data)
	if format == FormatUnknown {
		return nil, fmt.Errorf("could not detect the token format of reference %s", path)
	}
	ds, err := Parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("parsing reference %s: %w", path, err)
	}
	return ds, nil
}

// CompareProject scans a project directory and compares its extracted
// tokens against a reference token file.
func CompareProject(projectDir, referencePath string) (*ComparisonResult, *ScanResult, error) {
	reference, err := LoadReference(referencePath)
	if err != nil {
		return nil, nil, err
	}
	scan, err := ScanProject(projectDir, nil)
	if err != nil {
		return nil, nil, err
	}
	result := Compare(scan.Tokens, reference)
	return &result, scan, nil
}
