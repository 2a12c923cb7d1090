package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the dedicated TOML configuration file
const ConfigFileName = ".ckscan.toml"

// pyprojectSection mirrors the [tool.ckscan] table of a pyproject.toml
type pyprojectFile struct {
	Tool struct {
		Ckscan *Config `toml:"ckscan"`
	} `toml:"tool"`
}

// TomlConfigLoader handles TOML configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration with ruff-like priority:
// 1. .ckscan.toml (dedicated config file)
// 2. pyproject.toml (with [tool.ckscan] section)
// 3. defaults
//
// The search walks upward from startDir so running inside a subdirectory of
// a configured project picks up the project config.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	if path, err := findUpward(startDir, ConfigFileName); err == nil {
		return l.LoadFile(path)
	}

	if path, err := findUpward(startDir, "pyproject.toml"); err == nil {
		if cfg, err := l.loadPyproject(path); err == nil {
			return cfg, nil
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads a dedicated TOML config file, merged over the defaults
func (l *TomlConfigLoader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *TomlConfigLoader) loadPyproject(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Probe for the [tool.ckscan] table before decoding, so a pyproject.toml
	// without one falls through to the defaults instead of masking them.
	var probe map[string]interface{}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	tool, ok := probe["tool"].(map[string]interface{})
	if !ok {
		return nil, os.ErrNotExist
	}
	if _, ok := tool["ckscan"]; !ok {
		return nil, os.ErrNotExist
	}

	cfg := DefaultConfig()
	var file pyprojectFile
	file.Tool.Ckscan = cfg
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findUpward searches for a file from dir to the filesystem root
func findUpward(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
