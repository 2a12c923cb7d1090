package config

import (
	"fmt"

	"github.com/ludo-technologies/ckscan/domain"
)

// Config represents the main configuration structure
type Config struct {
	// Thresholds holds the per-metric upper bounds
	Thresholds ThresholdConfig `mapstructure:"thresholds" yaml:"thresholds" toml:"thresholds"`

	// Analysis holds general analysis configuration
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis" toml:"analysis"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`
}

// ThresholdConfig holds the CK metric upper bounds. A metric exceeds its
// bound only when strictly greater.
type ThresholdConfig struct {
	WMC  int `mapstructure:"wmc" yaml:"wmc" toml:"wmc"`
	DIT  int `mapstructure:"dit" yaml:"dit" toml:"dit"`
	NOC  int `mapstructure:"noc" yaml:"noc" toml:"noc"`
	CBO  int `mapstructure:"cbo" yaml:"cbo" toml:"cbo"`
	RFC  int `mapstructure:"rfc" yaml:"rfc" toml:"rfc"`
	LCOM int `mapstructure:"lcom" yaml:"lcom" toml:"lcom"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// CountInheritanceCoupling includes parent/child edges in CBO
	CountInheritanceCoupling bool `mapstructure:"count_inheritance_coupling" yaml:"count_inheritance_coupling" toml:"count_inheritance_coupling"`

	// Recursive controls directory traversal
	Recursive bool `mapstructure:"recursive" yaml:"recursive" toml:"recursive"`

	// IncludePatterns are glob patterns for files to analyze
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`

	// ExcludePatterns are glob patterns for files to skip
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// ShowDetails controls whether to show per-class breakdowns
	ShowDetails bool `mapstructure:"show_details" yaml:"show_details" toml:"show_details"`

	// SortBy specifies how to sort results: name, risk, findings
	SortBy string `mapstructure:"sort_by" yaml:"sort_by" toml:"sort_by"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			WMC:  domain.DefaultWMCThreshold,
			DIT:  domain.DefaultDITThreshold,
			NOC:  domain.DefaultNOCThreshold,
			CBO:  domain.DefaultCBOThreshold,
			RFC:  domain.DefaultRFCThreshold,
			LCOM: domain.DefaultLCOMThreshold,
		},
		Analysis: AnalysisConfig{
			CountInheritanceCoupling: false,
			Recursive:                true,
			IncludePatterns:          []string{"**/*.py"},
			ExcludePatterns:          []string{},
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
			SortBy:      "name",
		},
	}
}

// Validate checks the configuration for consistency. A bad threshold set
// makes every Finding meaningless, so validation failures abort the run
// before any analysis starts.
func (c *Config) Validate() error {
	for name, value := range c.Thresholds.toMap() {
		if value < 0 {
			return fmt.Errorf("thresholds.%s must be >= 0, got %d", name, value)
		}
	}

	switch c.Output.Format {
	case "text", "json", "yaml", "csv":
	default:
		return fmt.Errorf("output.format must be one of text|json|yaml|csv, got %q", c.Output.Format)
	}

	switch c.Output.SortBy {
	case "name", "risk", "findings":
	default:
		return fmt.Errorf("output.sort_by must be one of name|risk|findings, got %q", c.Output.SortBy)
	}

	return nil
}

func (t *ThresholdConfig) toMap() map[domain.MetricKind]int {
	return map[domain.MetricKind]int{
		domain.MetricWMC:  t.WMC,
		domain.MetricDIT:  t.DIT,
		domain.MetricNOC:  t.NOC,
		domain.MetricCBO:  t.CBO,
		domain.MetricRFC:  t.RFC,
		domain.MetricLCOM: t.LCOM,
	}
}

// ThresholdMap returns the configured bounds keyed by metric
func (c *Config) ThresholdMap() map[domain.MetricKind]int {
	return c.Thresholds.toMap()
}
