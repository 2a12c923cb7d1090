package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ConfigFileName, `
[thresholds]
wmc = 30
cbo = 8

[output]
format = "json"
`)

	loader := NewTomlConfigLoader()
	cfg, err := loader.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Thresholds.WMC)
	assert.Equal(t, 8, cfg.Thresholds.CBO)
	assert.Equal(t, "json", cfg.Output.Format)

	// unset values keep their defaults
	assert.Equal(t, DefaultConfig().Thresholds.DIT, cfg.Thresholds.DIT)
	assert.Equal(t, "name", cfg.Output.SortBy)
}

func TestLoadFileMissing(t *testing.T) {
	loader := NewTomlConfigLoader()
	_, err := loader.LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadConfigPrefersDedicatedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `
[thresholds]
wmc = 11
`)
	writeFile(t, dir, "pyproject.toml", `
[tool.ckscan.thresholds]
wmc = 99
`)

	cfg, err := NewTomlConfigLoader().LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Thresholds.WMC)
}

func TestLoadConfigFromPyproject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", `
[project]
name = "sample"

[tool.ckscan.thresholds]
rfc = 40

[tool.ckscan.output]
sort_by = "risk"
`)

	cfg, err := NewTomlConfigLoader().LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Thresholds.RFC)
	assert.Equal(t, "risk", cfg.Output.SortBy)
	assert.Equal(t, DefaultConfig().Thresholds.WMC, cfg.Thresholds.WMC)
}

func TestLoadConfigPyprojectWithoutSection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", `
[project]
name = "sample"
`)

	cfg, err := NewTomlConfigLoader().LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ConfigFileName, `
[thresholds]
noc = 3
`)

	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := NewTomlConfigLoader().LoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Thresholds.NOC)
}

func TestLoadConfigDefaultsWhenNothingFound(t *testing.T) {
	cfg, err := NewTomlConfigLoader().LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
