package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/ckscan/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, domain.DefaultWMCThreshold, cfg.Thresholds.WMC)
	assert.Equal(t, domain.DefaultLCOMThreshold, cfg.Thresholds.LCOM)
	assert.False(t, cfg.Analysis.CountInheritanceCoupling)
	assert.True(t, cfg.Analysis.Recursive)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "name", cfg.Output.SortBy)

	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "zero thresholds are valid",
			mutate:  func(c *Config) { c.Thresholds = ThresholdConfig{} },
			wantErr: false,
		},
		{
			name:    "negative threshold",
			mutate:  func(c *Config) { c.Thresholds.CBO = -1 },
			wantErr: true,
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "unknown sort criteria",
			mutate:  func(c *Config) { c.Output.SortBy = "size" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestThresholdMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thresholds.WMC = 33

	m := cfg.ThresholdMap()
	assert.Equal(t, 33, m[domain.MetricWMC])
	assert.Equal(t, domain.DefaultDITThreshold, m[domain.MetricDIT])
	assert.Len(t, m, 6)
}

func TestGenerateDefaultConfigTOML(t *testing.T) {
	rendered, err := GenerateDefaultConfigTOML()
	require.NoError(t, err)

	assert.Contains(t, rendered, "[thresholds]")
	assert.Contains(t, rendered, "[analysis]")
	assert.Contains(t, rendered, "[output]")
	assert.Contains(t, rendered, "# wmc = 20")
	assert.Contains(t, rendered, "# lcom = 1")
}
