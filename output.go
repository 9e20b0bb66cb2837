package impression

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// OutputFormat selects how ci-compare results are rendered.
type OutputFormat string

const (
	// OutputText is the human-readable default.
	OutputText OutputFormat = "text"
	// OutputJSON exports structured data for tooling integration.
	OutputJSON OutputFormat = "json"
	// OutputGitHub emits workflow commands (::error/::warning annotations).
	OutputGitHub OutputFormat = "github"
	// OutputGitLab emits a Code Quality report array.
	OutputGitLab OutputFormat = "gitlab"
	// OutputMarkdown generates a shareable report (PR comments, issues).
	OutputMarkdown OutputFormat = "markdown"
)

// FailOn selects the strictness of the CI gate. Criticals always fail;
// majors fail from "major" up; warnings only affect the outcome at
// "warning", where they downgrade a pass to a warn.
type FailOn string

const (
	FailOnCritical FailOn = "critical"
	FailOnMajor    FailOn = "major"
	FailOnWarning  FailOn = "warning"
)

// GateStatus is the pass/warn/fail outcome of a CI comparison.
type GateStatus int

const (
	GatePass GateStatus = 0
	GateFail GateStatus = 1
	GateWarn GateStatus = 2
)

// GateConfig configures the CI comparison gate.
type GateConfig struct {
	// Threshold is the minimum overall score (percent) to pass.
	Threshold int
	FailOn    FailOn
}

// DefaultThreshold is the gate's minimum passing score.
const DefaultThreshold = 80

// GateReport is a ComparisonResult classified against a gate config.
type GateReport struct {
	Result    ComparisonResult `json:"result"`
	Threshold int              `json:"threshold"`
	Status    GateStatus       `json:"status"`
	Criticals []string         `json:"criticals"`
	Majors    []string         `json:"majors"`
	Warnings  []string         `json:"warnings"`
	Timestamp string           `json:"timestamp"`
}

// EvaluateGate classifies a comparison against the gate config. Missing
// reference colors and typography are critical findings; missing spacing or
// radius values are major; off-palette project colors are warnings.
// Criticals and a below-threshold score always fail, majors fail when FailOn
// is major or stricter, warnings turn a pass into a warn at FailOn warning.
// Exit status mapping: 0 pass, 1 fail, 2 warn.
func EvaluateGate(result ComparisonResult, config GateConfig) GateReport {
	if config.Threshold == 0 {
		config.Threshold = DefaultThreshold
	}
	if config.FailOn == "" {
		config.FailOn = FailOnCritical
	}

	report := GateReport{
		Result:    result,
		Threshold: config.Threshold,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	for _, missing := range result.Colors.Missing {
		report.Criticals = append(report.Criticals, fmt.Sprintf("missing reference color %s", missing))
	}
	for _, missing := range result.Typography.Missing {
		report.Criticals = append(report.Criticals, fmt.Sprintf("missing reference font %q", missing))
	}
	for _, missing := range result.Spacing.Missing {
		report.Majors = append(report.Majors, fmt.Sprintf("missing reference spacing %s", missing))
	}
	for _, missing := range result.BorderRadius.Missing {
		report.Majors = append(report.Majors, fmt.Sprintf("missing reference radius %s", missing))
	}
	for _, extra := range result.Colors.Extra {
		report.Warnings = append(report.Warnings, fmt.Sprintf("off-palette color %s in project", extra))
	}

	failOnMajors := config.FailOn == FailOnMajor || config.FailOn == FailOnWarning
	switch {
	case result.Overall < config.Threshold:
		report.Status = GateFail
	case len(report.Criticals) > 0:
		report.Status = GateFail
	case len(report.Majors) > 0 && failOnMajors:
		report.Status = GateFail
	case len(report.Warnings) > 0 && config.FailOn == FailOnWarning:
		report.Status = GateWarn
	default:
		report.Status = GatePass
	}
	return report
}

// ParseOutputFormat resolves a --format value.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	case "github":
		return OutputGitHub, nil
	case "gitlab":
		return OutputGitLab, nil
	case "markdown", "md":
		return OutputMarkdown, nil
	}
	return OutputText, fmt.Errorf("unknown output format %q (supported: text, json, github, gitlab, markdown)", name)
}

// WriteGateReport renders a gate report in the requested format.
func WriteGateReport(w io.Writer, report GateReport, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case OutputGitHub:
		return writeGitHub(w, report)
	case OutputGitLab:
		return writeGitLab(w, report)
	case OutputMarkdown:
		return writeGateMarkdown(w, report)
	}
	return writeGateText(w, report)
}

func writeGateText(w io.Writer, report GateReport) error {
	r := report.Result
	fmt.Fprintf(w, "Design token comparison\n")
	fmt.Fprintf(w, "  colors:        %3d%%\n", r.Colors.Score)
	fmt.Fprintf(w, "  typography:    %3d%%\n", r.Typography.Score)
	fmt.Fprintf(w, "  spacing:       %3d%%\n", r.Spacing.Score)
	fmt.Fprintf(w, "  border-radius: %3d%%\n", r.BorderRadius.Score)
	fmt.Fprintf(w, "  overall:       %3d%% (threshold %d%%)\n", r.Overall, report.Threshold)
	for _, c := range report.Criticals {
		fmt.Fprintf(w, "critical: %s\n", c)
	}
	for _, m := range report.Majors {
		fmt.Fprintf(w, "major: %s\n", m)
	}
	for _, warn := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	switch report.Status {
	case GatePass:
		fmt.Fprintln(w, "PASS")
	case GateWarn:
		fmt.Fprintln(w, "WARN")
	default:
		fmt.Fprintln(w, "FAIL")
	}
	return nil
}

func writeGitHub(w io.Writer, report GateReport) error {
	for _, c := range report.Criticals {
		fmt.Fprintf(w, "::error title=Design tokens::%s\n", c)
	}
	for _, m := range report.Majors {
		fmt.Fprintf(w, "::warning title=Design tokens::%s\n", m)
	}
	for _, warn := range report.Warnings {
		fmt.Fprintf(w, "::warning title=Design tokens::%s\n", warn)
	}
	fmt.Fprintf(w, "::notice title=Design tokens::overall score %d%% (threshold %d%%)\n",
		report.Result.Overall, report.Threshold)
	return nil
}

// gitlabIssue is one entry of a GitLab Code Quality report.
type gitlabIssue struct {
	Description string `json:"description"`
	CheckName   string `json:"check_name"`
	Fingerprint string `json:"fingerprint"`
	Severity    string `json:"severity"`
	Location    struct {
		Path  string `json:"path"`
		Lines struct {
			Begin int `json:"begin"`
		} `json:"lines"`
	} `json:"location"`
}

func writeGitLab(w io.Writer, report GateReport) error {
	issues := make([]gitlabIssue, 0, len(report.Criticals)+len(report.Majors)+len(report.Warnings))
	add := func(text, severity string) {
		issue := gitlabIssue{
			Description: text,
			CheckName:   "design-tokens",
			Fingerprint: fmt.Sprintf("%x", fingerprint(text)),
			Severity:    severity,
		}
		issue.Location.Path = "design-tokens"
		issue.Location.Lines.Begin = 1
		issues = append(issues, issue)
	}
	for _, c := range report.Criticals {
		add(c, "critical")
	}
	for _, m := range report.Majors {
		add(m, "major")
	}
	for _, warn := range report.Warnings {
		add(warn, "minor")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(issues)
}

// fingerprint is a stable FNV-1a hash for code-quality deduplication.
func fingerprint(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func writeGateMarkdown(w io.Writer, report GateReport) error {
	r := report.Result
	status := map[GateStatus]string{GatePass: "✅ Pass", GateWarn: "⚠️ Warn", GateFail: "❌ Fail"}[report.Status]
	fmt.Fprintf(w, "## Design Token Comparison — %s\n\n", status)
	fmt.Fprintf(w, "| Category | Score |\n|---|---|\n")
	fmt.Fprintf(w, "| Colors | %d%% |\n", r.Colors.Score)
	fmt.Fprintf(w, "| Typography | %d%% |\n", r.Typography.Score)
	fmt.Fprintf(w, "| Spacing | %d%% |\n", r.Spacing.Score)
	fmt.Fprintf(w, "| Border radius | %d%% |\n", r.BorderRadius.Score)
	fmt.Fprintf(w, "| **Overall** | **%d%%** (threshold %d%%) |\n", r.Overall, report.Threshold)

	if len(report.Criticals) > 0 {
		fmt.Fprintf(w, "\n### Critical\n\n")
		for _, c := range report.Criticals {
			fmt.Fprintf(w, "- %s\n", c)
		}
	}
	if len(report.Majors) > 0 {
		fmt.Fprintf(w, "\n### Major\n\n")
		for _, m := range report.Majors {
			fmt.Fprintf(w, "- %s\n", m)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "\n### Warnings\n\n")
		sorted := append([]string(nil), report.Warnings...)
		sort.Strings(sorted)
		for _, warn := range sorted {
			fmt.Fprintf(w, "- %s\n", warn)
		}
	}
	return nil
}
