package impression

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReferenceFile(t *testing.T) string {
	t.Helper()
	data, err := GenerateImpression(referenceSystem())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestMigrate(t *testing.T) {
	input := writeReferenceFile(t)

	t.Run("detects the input format", func(t *testing.T) {
		result, err := Migrate(MigrateConfig{InputPath: input, To: FormatW3C})
		require.NoError(t, err)
		assert.Equal(t, FormatImpression, result.From)
		assert.Equal(t, FormatW3C, result.To)
		assert.Equal(t, FormatW3C, DetectFormat(result.Output))
	})

	t.Run("explicit from skips detection", func(t *testing.T) {
		result, err := Migrate(MigrateConfig{
			InputPath: input,
			From:      FormatImpression,
			To:        FormatCSSVariables,
		})
		require.NoError(t, err)
		assert.Contains(t, string(result.Output), ":root {")
	})

	t.Run("lossy targets carry warnings", func(t *testing.T) {
		result, err := Migrate(MigrateConfig{InputPath: input, To: FormatShadcn})
		require.NoError(t, err)

		joined := strings.Join(result.Warnings, "\n")
		assert.Contains(t, joined, "typography")
		assert.Contains(t, joined, "spacing")
	})

	t.Run("lossless targets carry none", func(t *testing.T) {
		result, err := Migrate(MigrateConfig{InputPath: input, To: FormatImpression})
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)
	})

	t.Run("writes the output path when given", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "theme.css")
		result, err := Migrate(MigrateConfig{InputPath: input, To: FormatCSSVariables, OutputPath: out})
		require.NoError(t, err)

		written, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, result.Output, written)
	})
}

func TestMigrateErrors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		_, err := Migrate(MigrateConfig{InputPath: filepath.Join(t.TempDir(), "nope.json"), To: FormatW3C})
		require.Error(t, err)
	})

	t.Run("undetectable input", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("not a token file"), 0o644))
		_, err := Migrate(MigrateConfig{InputPath: path, To: FormatW3C})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--from")
	})

	t.Run("no target format", func(t *testing.T) {
		_, err := Migrate(MigrateConfig{InputPath: writeReferenceFile(t)})
		require.Error(t, err)
	})
}

func TestLoadReference(t *testing.T) {
	ds, err := LoadReference(writeReferenceFile(t))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"#000000", "#ffffff"}, ds.PaletteValues())

	t.Run("undetectable reference", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ref.txt")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
		_, err := LoadReference(path)
		require.Error(t, err)
	})
}

func TestCompareProject(t *testing.T) {
	dir := t.TempDir()
	css := `
.page { color: #000000; background: #ffffff; font-family: Inter, sans-serif; }
.code { font-family: "JetBrains Mono", monospace; padding: 4px; margin: 8px; }
.card { padding: 16px; border-radius: 4px; }
.pill { border-radius: 8px; }
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte(css), 0o644))

	result, scan, err := CompareProject(dir, writeReferenceFile(t))
	require.NoError(t, err)

	assert.Equal(t, 1, scan.Stats.FilesScanned)
	assert.Equal(t, 100, result.Colors.Score, "both reference colors found verbatim")
	assert.Equal(t, 100, result.Typography.Score)
	assert.Equal(t, 100, result.Overall)

	t.Run("missing reference file", func(t *testing.T) {
		_, _, err := CompareProject(dir, filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}
