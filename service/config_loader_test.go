package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/ckscan/domain"
)

// chdir moves the test into dir so the default-config discovery walks a
// directory tree the test controls
func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(original); err != nil {
			t.Errorf("failed to restore working directory: %v", err)
		}
	})
}

func TestLoadDefaultConfig(t *testing.T) {
	chdir(t, t.TempDir())

	loader := NewCKConfigurationLoader()
	req := loader.LoadDefaultConfig()

	require.NotNil(t, req)
	assert.Equal(t, domain.OutputFormatText, req.OutputFormat)
	assert.Equal(t, domain.SortByName, req.SortBy)
	assert.Equal(t, domain.DefaultThresholds(), req.Thresholds)
	assert.False(t, domain.BoolValue(req.CountInheritanceCoupling, true))
	assert.True(t, domain.BoolValue(req.Recursive, false))
}

func TestLoadDefaultConfigDiscoversFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ckscan.toml"), []byte(`
[thresholds]
wmc = 1

[output]
sort_by = "risk"
`), 0644))

	nested := filepath.Join(dir, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdir(t, nested)

	req := NewCKConfigurationLoader().LoadDefaultConfig()

	assert.Equal(t, 1, req.Thresholds[domain.MetricWMC])
	assert.Equal(t, domain.SortByRisk, req.SortBy)
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[thresholds]
wmc = 25

[analysis]
count_inheritance_coupling = true

[output]
format = "json"
sort_by = "risk"
`), 0644))

	loader := NewCKConfigurationLoader()
	req, err := loader.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 25, req.Thresholds[domain.MetricWMC])
	assert.True(t, domain.BoolValue(req.CountInheritanceCoupling, false))
	assert.Equal(t, domain.OutputFormatJSON, req.OutputFormat)
	assert.Equal(t, domain.SortByRisk, req.SortBy)
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
thresholds:
  cbo: 9
output:
  sort_by: findings
`), 0644))

	loader := NewCKConfigurationLoader()
	req, err := loader.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9, req.Thresholds[domain.MetricCBO])
	assert.Equal(t, domain.SortByFindings, req.SortBy)
	// unset values keep defaults
	assert.Equal(t, domain.DefaultWMCThreshold, req.Thresholds[domain.MetricWMC])
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[output]
format = "pdf"
`), 0644))

	loader := NewCKConfigurationLoader()
	_, err := loader.LoadConfig(path)
	assert.Error(t, err)
}

func TestMergeConfig(t *testing.T) {
	chdir(t, t.TempDir())
	loader := NewCKConfigurationLoader()

	base := loader.LoadDefaultConfig()
	override := &domain.CKRequest{
		Paths:        []string{"src/"},
		OutputFormat: domain.OutputFormatCSV,
		Thresholds:   map[domain.MetricKind]int{domain.MetricRFC: 99},
		Recursive:    domain.BoolPtr(false),
	}

	merged := loader.MergeConfig(base, override)

	// override wins where set
	assert.Equal(t, []string{"src/"}, merged.Paths)
	assert.Equal(t, domain.OutputFormatCSV, merged.OutputFormat)
	assert.Equal(t, 99, merged.Thresholds[domain.MetricRFC])
	assert.False(t, domain.BoolValue(merged.Recursive, true))

	// base survives where the override is silent
	assert.Equal(t, domain.SortByName, merged.SortBy)
	assert.Equal(t, domain.DefaultWMCThreshold, merged.Thresholds[domain.MetricWMC])

	// the base request is not mutated by threshold merging
	assert.Equal(t, domain.DefaultRFCThreshold, base.Thresholds[domain.MetricRFC])
}

func TestMergeConfigNil(t *testing.T) {
	chdir(t, t.TempDir())
	loader := NewCKConfigurationLoader()
	base := loader.LoadDefaultConfig()

	assert.Equal(t, base, loader.MergeConfig(base, nil))

	override := &domain.CKRequest{OutputFormat: domain.OutputFormatJSON}
	assert.Equal(t, override, loader.MergeConfig(nil, override))
}
