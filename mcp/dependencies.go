package mcp

import (
	"github.com/ludo-technologies/ckscan/app"
	"github.com/ludo-technologies/ckscan/domain"
	"github.com/ludo-technologies/ckscan/internal/config"
	"github.com/ludo-technologies/ckscan/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildCKUseCase assembles a fresh CKUseCase with injected dependencies.
func (d *Dependencies) BuildCKUseCase() (*app.CKUseCase, error) {
	return app.NewCKUseCaseBuilder().
		WithService(service.NewCKService()).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewCKFormatter()).
		WithConfigLoader(service.NewCKConfigurationLoader()).
		Build()
}
