package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, info, err := LoadConfigWithInfo("")
	require.NoError(t, err)
	assert.Empty(t, info.Path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[workbook]
path = "budget.tsv"
separator = "\t"
defined_names = false

[server]
port = 8081

[detection]
synthetic_prefix = "Block"
`), 0o644))

	cfg, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, "budget.tsv", cfg.Workbook.Path)
	assert.Equal(t, 8081, cfg.Server.Port)
	// Unset keys keep their defaults.
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 1, cfg.Detection.MinNonemptyCells)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, '\t', opts.Separator)
	assert.False(t, opts.ShouldIncludeDefinedNames())
	assert.Equal(t, "Block", opts.Detection.SyntheticPrefix)
	assert.True(t, opts.Detection.DetectTitleRows)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[server\nport = "), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TABLECALC_WORKBOOK", "/data/book.xlsx")
	t.Setenv("TABLECALC_SHEET", "Summary")
	t.Setenv("TABLECALC_PORT", "7000")
	t.Setenv("TABLECALC_LOG_LEVEL", "debug")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/data/book.xlsx", cfg.Workbook.Path)
	assert.Equal(t, "Summary", cfg.Workbook.Sheet)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)

	t.Setenv("TABLECALC_PORT", "seventy")
	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestSeparatorRune(t *testing.T) {
	tests := map[string]rune{
		"":          0,
		"auto":      0,
		"tab":       '\t',
		`\t`:        '\t',
		"Comma":     ',',
		"semicolon": ';',
		"pipe":      '|',
		"#":         '#',
	}
	for in, want := range tests {
		got, err := WorkbookConfig{Separator: in}.SeparatorRune()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := WorkbookConfig{Separator: "::"}.SeparatorRune()
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	b, err := Marshal(DefaultConfig())
	require.NoError(t, err)

	var cfg AppConfig
	require.NoError(t, toml.Unmarshal(b, &cfg))
	assert.Equal(t, *DefaultConfig(), cfg)
}
