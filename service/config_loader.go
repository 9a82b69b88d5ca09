package service

import (
	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/config"
)

// ConfigurationLoaderImpl resolves the effective configuration for a run
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads configuration discovered relative to the target,
// falling back to hardcoded defaults when discovery or parsing fails.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig(targetPath string) *config.Config {
	cfg, err := config.LoadConfigWithTarget("", targetPath)
	if err == nil {
		return cfg
	}
	return config.DefaultConfig()
}
