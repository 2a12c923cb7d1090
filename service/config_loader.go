package service

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/ckscan/domain"
	"github.com/ludo-technologies/ckscan/internal/config"
)

// CKConfigurationLoaderImpl implements the CKConfigurationLoader interface.
// TOML files (.ckscan.toml, pyproject.toml) go through the dedicated TOML
// loader; YAML configs are decoded with viper.
type CKConfigurationLoaderImpl struct {
	tomlLoader *config.TomlConfigLoader
}

// NewCKConfigurationLoader creates a new configuration loader
func NewCKConfigurationLoader() *CKConfigurationLoaderImpl {
	return &CKConfigurationLoaderImpl{
		tomlLoader: config.NewTomlConfigLoader(),
	}
}

// LoadConfig loads configuration from the specified path. An empty path
// triggers the upward search for .ckscan.toml / pyproject.toml from the
// working directory.
func (l *CKConfigurationLoaderImpl) LoadConfig(path string) (*domain.CKRequest, error) {
	var cfg *config.Config
	var err error

	switch {
	case path == "":
		cfg, err = l.tomlLoader.LoadConfig(".")
	case isYAMLPath(path):
		cfg, err = l.loadYAML(path)
	default:
		cfg, err = l.tomlLoader.LoadFile(path)
	}
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	return requestFromConfig(cfg), nil
}

// LoadDefaultConfig discovers .ckscan.toml / pyproject.toml upward from the
// working directory and falls back to built-in defaults when nothing is found
// or the discovered file is unusable
func (l *CKConfigurationLoaderImpl) LoadDefaultConfig() *domain.CKRequest {
	cfg, err := l.tomlLoader.LoadConfig(".")
	if err != nil || cfg.Validate() != nil {
		return requestFromConfig(config.DefaultConfig())
	}
	return requestFromConfig(cfg)
}

// MergeConfig merges CLI flags with configuration file. Fields set on the
// override win; unset fields keep the base value.
func (l *CKConfigurationLoaderImpl) MergeConfig(base *domain.CKRequest, override *domain.CKRequest) *domain.CKRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.ShowDetails {
		merged.ShowDetails = true
	}
	if override.SortBy != "" {
		merged.SortBy = override.SortBy
	}
	if len(override.Thresholds) > 0 {
		if merged.Thresholds == nil {
			merged.Thresholds = make(map[domain.MetricKind]int)
		} else {
			copied := make(map[domain.MetricKind]int, len(merged.Thresholds))
			for kind, bound := range merged.Thresholds {
				copied[kind] = bound
			}
			merged.Thresholds = copied
		}
		for kind, bound := range override.Thresholds {
			merged.Thresholds[kind] = bound
		}
	}
	if override.CountInheritanceCoupling != nil {
		merged.CountInheritanceCoupling = override.CountInheritanceCoupling
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	if override.Recursive != nil {
		merged.Recursive = override.Recursive
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	return &merged
}

// loadYAML decodes a YAML config file over the defaults
func (l *CKConfigurationLoaderImpl) loadYAML(path string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// requestFromConfig converts the file configuration into a request
func requestFromConfig(cfg *config.Config) *domain.CKRequest {
	req := domain.DefaultCKRequest()

	req.Thresholds = cfg.ThresholdMap()
	req.CountInheritanceCoupling = domain.BoolPtr(cfg.Analysis.CountInheritanceCoupling)
	req.Recursive = domain.BoolPtr(cfg.Analysis.Recursive)
	if len(cfg.Analysis.IncludePatterns) > 0 {
		req.IncludePatterns = cfg.Analysis.IncludePatterns
	}
	req.ExcludePatterns = cfg.Analysis.ExcludePatterns
	req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	req.ShowDetails = cfg.Output.ShowDetails
	req.SortBy = domain.SortCriteria(cfg.Output.SortBy)

	return req
}
