package impression

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ScanStats tracks stylesheet discovery statistics.
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually lexed (after filtering)
	FilesSkipped    int // Files skipped as generated or gitignored
}

// ScanResult carries the tokens extracted from a project plus provenance.
type ScanResult struct {
	Tokens ProjectTokens
	Stats  ScanStats
	// Warnings lists files that could not be read; extraction continues
	// past them.
	Warnings []string
}

var (
	// defaultScanPatterns are the stylesheet globs scanned under a project
	// directory.
	defaultScanPatterns = []string{"**/*.css", "**/*.scss"}

	// gitignore caching, keyed by project directory: scanning project B
	// after project A must not apply A's ignore rules.
	gitIgnoreMu    sync.Mutex
	gitIgnoreCache = make(map[string]*ignore.GitIgnore)
)

// isGeneratedSheet filters build artifacts that would skew token counts.
func isGeneratedSheet(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".min.css") ||
		strings.Contains(path, "node_modules"+string(filepath.Separator)) ||
		strings.Contains(path, string(filepath.Separator)+"dist"+string(filepath.Separator))
}

// loadGitIgnore compiles a project's .gitignore once per directory
// (thread-safe), degrading gracefully when it does not exist. A missing
// file caches nil so each directory is only stat'd once.
func loadGitIgnore(projectDir string) *ignore.GitIgnore {
	gitIgnoreMu.Lock()
	defer gitIgnoreMu.Unlock()
	if gi, ok := gitIgnoreCache[projectDir]; ok {
		return gi
	}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(projectDir, ".gitignore"))
	if err != nil {
		gi = nil
	}
	gitIgnoreCache[projectDir] = gi
	return gi
}

// shouldSkipSheet applies the two-layer filter: generated-file pattern check
// first, then the project gitignore.
func shouldSkipSheet(projectDir, path string) bool {
	if isGeneratedSheet(path) {
		return true
	}
	if gi := loadGitIgnore(projectDir); gi != nil {
		if rel, err := filepath.Rel(projectDir, path); err == nil && gi.MatchesPath(rel) {
			return true
		}
	}
	return false
}

// ScanProject discovers stylesheets under projectDir and extracts their
// design tokens. Patterns default to **/*.css and **/*.scss when nil.
func ScanProject(projectDir string, patterns []string) (*ScanResult, error) {
	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("project directory %s not found", projectDir)
	}
	if len(patterns) == 0 {
		patterns = defaultScanPatterns
	}

	result := &ScanResult{}
	seen := make(map[string]bool)
	extractor := newTokenExtractor()

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(projectDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			result.Stats.FilesDiscovered++
			if shouldSkipSheet(projectDir, match) {
				result.Stats.FilesSkipped++
				continue
			}
			content, err := os.ReadFile(match)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read %s: %v", match, err))
				continue
			}
			extractor.scanSheet(string(content))
			result.Stats.FilesScanned++
		}
	}

	result.Tokens = extractor.tokens()
	return result, nil
}

// tokenExtractor accumulates token occurrences across stylesheets.
type tokenExtractor struct {
	colors  map[string]int
	fonts   map[string]int
	spacing map[string]int
	radii   map[string]int
}

func newTokenExtractor() *tokenExtractor {
	return &tokenExtractor{
		colors:  make(map[string]int),
		fonts:   make(map[string]int),
		spacing: make(map[string]int),
		radii:   make(map[string]int),
	}
}

// scanSheet lexes one stylesheet and routes declaration values by property
// name. Values the color subsystem cannot reduce to hex are ignored rather
// than errored.
func (e *tokenExtractor) scanSheet(content string) {
	lexer := css.NewLexer(parse.NewInputString(content))

	var currentProp string
	var currentVal []string
	inValue := false

	flush := func() {
		if currentProp != "" && len(currentVal) > 0 {
			e.routeDeclaration(currentProp, strings.TrimSpace(strings.Join(currentVal, "")))
		}
		currentProp = ""
		currentVal = nil
		inValue = false
	}

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			flush()
			break
		}
		s := string(text)
		switch {
		case tt == css.IdentToken && !inValue:
			currentProp = s
		case strings.HasPrefix(s, "--") && !inValue:
			currentProp = s
		case tt == css.ColonToken && currentProp != "":
			inValue = true
		case tt == css.SemicolonToken || tt == css.RightBraceToken || tt == css.LeftBraceToken:
			if tt == css.LeftBraceToken {
				// Selector text was misread as a declaration; discard.
				currentProp = ""
				currentVal = nil
				inValue = false
			} else {
				flush()
			}
		case inValue:
			currentVal = append(currentVal, s)
		}
	}
}

func (e *tokenExtractor) routeDeclaration(prop, value string) {
	name := strings.ToLower(strings.TrimPrefix(prop, "--"))
	switch classifyByName(name) {
	case KindColor:
		if hex, ok := NormalizeColor(value); ok {
			e.colors[hex]++
		}
	case KindFontFamily:
		first := strings.TrimSpace(strings.SplitN(value, ",", 2)[0])
		first = strings.Trim(first, `"'`)
		if first != "" {
			e.fonts[first]++
		}
	case KindRadius:
		if _, ok := ParseDimension(value); ok {
			e.radii[value]++
		}
	case KindSpacing:
		if _, ok := ParseDimension(value); ok {
			e.spacing[value]++
		}
	default:
		// Colors also appear in plain color/background declarations whose
		// property names the classifier already catches; any literal hex in
		// other values is picked up here.
		if hex, ok := NormalizeColor(value); ok {
			e.colors[hex]++
		}
	}
}

func (e *tokenExtractor) tokens() ProjectTokens {
	return ProjectTokens{
		Colors:       sortedByCount(e.colors),
		Fonts:        sortedByCount(e.fonts),
		Spacing:      sortedByCount(e.spacing),
		BorderRadius: sortedByCount(e.radii),
	}
}

// sortedByCount orders values by descending occurrence, ties broken
// lexically for determinism.
func sortedByCount(counts map[string]int) []string {
	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] > counts[values[j]]
		}
		return values[i] < values[j]
	})
	return values
}
