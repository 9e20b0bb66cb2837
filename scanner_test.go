package impression

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGeneratedSheet(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "styles/app.css", want: false},
		{path: "styles/app.min.css", want: true},
		{path: filepath.Join("node_modules", "pkg", "styles.css"), want: true},
		{path: filepath.Join("web", "dist", "bundle.css"), want: true},
		{path: "distributed.css", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isGeneratedSheet(tt.path))
		})
	}
}

func TestScanSheet(t *testing.T) {
	e := newTokenExtractor()
	e.scanSheet(`
.button {
  background-color: #336699;
  color: rgb(255, 255, 255);
  padding: 8px;
  border-radius: 4px;
  font-family: "Inter", sans-serif;
}

.button:hover {
  background-color: #336699;
}

:root {
  --color-accent: #ff6600;
}
`)

	tokens := e.tokens()

	t.Run("colors normalized and counted", func(t *testing.T) {
		require.NotEmpty(t, tokens.Colors)
		assert.Equal(t, "#336699", tokens.Colors[0], "most frequent first")
		assert.Contains(t, tokens.Colors, "#ffffff")
		assert.Contains(t, tokens.Colors, "#ff6600")
	})

	t.Run("first font of the stack, unquoted", func(t *testing.T) {
		assert.Equal(t, []string{"Inter"}, tokens.Fonts)
	})

	t.Run("dimensions routed by property", func(t *testing.T) {
		assert.Equal(t, []string{"8px"}, tokens.Spacing)
		assert.Equal(t, []string{"4px"}, tokens.BorderRadius)
	})
}

func TestScanSheetIgnoresNonTokens(t *testing.T) {
	e := newTokenExtractor()
	e.scanSheet(`
.a { padding: auto; border-radius: inherit; color: var(--x); }
.b { margin: calc(100% - 4px); }
`)
	tokens := e.tokens()
	assert.Empty(t, tokens.Colors)
	assert.Empty(t, tokens.Spacing)
	assert.Empty(t, tokens.BorderRadius)
}

func TestScanProject(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("styles/app.css", ".a { color: #336699; padding: 8px; }")
	write("styles/theme.scss", ".b { color: #336699; }")
	write("styles/vendor.min.css", ".c { color: #ff0000; }")
	write(filepath.Join("node_modules", "pkg", "x.css"), ".d { color: #00ff00; }")

	result, err := ScanProject(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesScanned)
	assert.Equal(t, 2, result.Stats.FilesSkipped, "minified and node_modules sheets skipped")
	assert.Equal(t, 4, result.Stats.FilesDiscovered)

	assert.Equal(t, []string{"#336699"}, result.Tokens.Colors)
	assert.Equal(t, []string{"8px"}, result.Tokens.Spacing)
	assert.Empty(t, result.Warnings)
}

func TestScanProjectGitIgnorePerProject(t *testing.T) {
	makeProject := func(gitignore string) string {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.css"), []byte(".a { color: #111111; }"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor.css"), []byte(".b { color: #222222; }"), 0o644))
		if gitignore != "" {
			require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644))
		}
		return dir
	}

	dirA := makeProject("vendor.css\n")
	dirB := makeProject("theme.css\n")
	dirC := makeProject("")

	resultA, err := ScanProject(dirA, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resultA.Stats.FilesSkipped)
	assert.Equal(t, []string{"#111111"}, resultA.Tokens.Colors)

	// Each project applies its own ignore rules, not the first caller's.
	resultB, err := ScanProject(dirB, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resultB.Stats.FilesSkipped)
	assert.Equal(t, []string{"#222222"}, resultB.Tokens.Colors)

	resultC, err := ScanProject(dirC, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, resultC.Stats.FilesSkipped)
	assert.Equal(t, []string{"#111111", "#222222"}, resultC.Tokens.Colors)
}

func TestScanProjectMissingDir(t *testing.T) {
	_, err := ScanProject(filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
}

func TestSortedByCount(t *testing.T) {
	got := sortedByCount(map[string]int{"b": 2, "a": 2, "c": 9})
	assert.Equal(t, []string{"c", "a", "b"}, got, "count descending, lexical ties")
}
