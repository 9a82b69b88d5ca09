package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/codelens-ai/pydebug/internal/constants"
)

// Default LLM request settings
const (
	// DefaultLLMTimeout bounds a single explanation request
	DefaultLLMTimeout = 60 * time.Second

	// DefaultLLMRetries is the number of extra attempts for transient failures
	DefaultLLMRetries = 1
)

// Config represents the main configuration structure
type Config struct {
	// LLM holds the explanation backend configuration
	LLM LLMConfig `json:"llm" mapstructure:"llm" yaml:"llm"`

	// Server holds the web UI / API server configuration
	Server ServerConfig `json:"server" mapstructure:"server" yaml:"server"`

	// Analysis holds general analysis configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// LLMConfig holds configuration for the explanation backend
type LLMConfig struct {
	// APIKey authenticates against the chat-completions endpoint.
	// Prefer setting it through the PYDEBUG_API_KEY environment variable
	// instead of the config file.
	APIKey string `json:"-" mapstructure:"api_key" yaml:"api_key,omitempty"`

	// BaseURL is the API base URL of an OpenAI-compatible endpoint
	BaseURL string `json:"base_url" mapstructure:"base_url" yaml:"base_url"`

	// Model is the model identifier sent with each request
	Model string `json:"model" mapstructure:"model" yaml:"model"`

	// Timeout bounds a single explanation request
	Timeout time.Duration `json:"timeout" mapstructure:"timeout" yaml:"timeout"`

	// MaxTokens caps the completion length
	MaxTokens int `json:"max_tokens" mapstructure:"max_tokens" yaml:"max_tokens"`

	// Temperature controls response variability
	Temperature float64 `json:"temperature" mapstructure:"temperature" yaml:"temperature"`

	// Retries is the number of extra attempts for transient failures (0 or 1)
	Retries int `json:"retries" mapstructure:"retries" yaml:"retries"`
}

// ServerConfig holds configuration for the web server
type ServerConfig struct {
	// Addr is the listen address, host:port
	Addr string `json:"addr" mapstructure:"addr" yaml:"addr"`

	// Password, when non-empty, gates the API behind a shared secret.
	// This is a coarse access gate, not a substitute for real auth.
	Password string `json:"-" mapstructure:"password" yaml:"password,omitempty"`

	// HistoryLimit caps the number of reports kept in memory
	HistoryLimit int `json:"history_limit" mapstructure:"history_limit" yaml:"history_limit"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// EnabledRules restricts the scanner to the listed rule IDs.
	// Empty means all rules run.
	EnabledRules []string `json:"enabled_rules" mapstructure:"enabled_rules" yaml:"enabled_rules"`

	// DisabledRules removes rule IDs from whatever set is enabled
	DisabledRules []string `json:"disabled_rules" mapstructure:"disabled_rules" yaml:"disabled_rules"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// MaxFileSize caps analyzed file size in bytes; 0 disables the cap
	MaxFileSize int64 `json:"max_file_size" mapstructure:"max_file_size" yaml:"max_file_size"`

	// SkipExplanation disables the LLM call and produces findings-only reports
	SkipExplanation bool `json:"skip_explanation" mapstructure:"skip_explanation" yaml:"skip_explanation"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, markdown
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowSource controls whether reports include the analyzed source text
	ShowSource bool `json:"show_source" mapstructure:"show_source" yaml:"show_source"`

	// Directory specifies the output directory for saved reports (empty = stdout only)
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:     constants.DefaultBaseURL,
			Model:       constants.DefaultModel,
			Timeout:     DefaultLLMTimeout,
			MaxTokens:   constants.DefaultMaxTokens,
			Temperature: constants.DefaultTemperature,
			Retries:     DefaultLLMRetries,
		},
		Server: ServerConfig{
			Addr:         constants.DefaultServerAddr,
			HistoryLimit: constants.DefaultHistoryLimit,
		},
		Analysis: AnalysisConfig{
			EnabledRules: []string{},
			ExcludePatterns: []string{
				".git",
				".venv",
				"venv",
				"__pycache__",
				"node_modules",
				"build",
				"dist",
				".tox",
				".mypy_cache",
			},
			Recursive:   true,
			MaxFileSize: constants.DefaultMaxFileSize,
		},
		Output: OutputConfig{
			Format:     constants.OutputFormatText,
			ShowSource: false,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// If no config path is specified, one is discovered relative to the
// analyzed target. Environment variables override file values.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	config := DefaultConfig()

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := v.Unmarshal(config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides reads the secrets that should never live in a
// config file checked into version control.
func applyEnvOverrides(config *Config) {
	if key := os.Getenv(constants.EnvVarPrefix + "_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}
	if password := os.Getenv(constants.EnvVarPrefix + "_PASSWORD"); password != "" {
		config.Server.Password = password
	}
	if model := os.Getenv(constants.EnvVarPrefix + "_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if baseURL := os.Getenv(constants.EnvVarPrefix + "_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		constants.OutputFormatText:     true,
		constants.OutputFormatJSON:     true,
		constants.OutputFormatYAML:     true,
		constants.OutputFormatMarkdown: true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, markdown", c.Output.Format)
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", c.LLM.Timeout)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %g", c.LLM.Temperature)
	}
	if c.LLM.Retries < 0 || c.LLM.Retries > 1 {
		return fmt.Errorf("llm.retries must be 0 or 1, got %d", c.LLM.Retries)
	}

	if c.Analysis.MaxFileSize < 0 {
		return fmt.Errorf("analysis.max_file_size must not be negative, got %d", c.Analysis.MaxFileSize)
	}

	if c.Server.HistoryLimit < 0 {
		return fmt.Errorf("server.history_limit must not be negative, got %d", c.Server.HistoryLimit)
	}

	return nil
}

// SaveConfig writes the configuration to a file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)

	v.Set("llm", config.LLM)
	v.Set("server", config.Server)
	v.Set("analysis", config.Analysis)
	v.Set("output", config.Output)

	return v.WriteConfig()
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being analyzed (e.g., the Python file or directory).
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		constants.ConfigFileName,
		"pydebug.yaml",
		"pydebug.yml",
		".pydebug.yaml",
		".pydebug.yml",
	}

	// If targetPath is provided, search from there upward
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}
				parent := filepath.Dir(dir)
				if parent == dir {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory (Linux/Mac standard)
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	// Check ~/.config/pydebug/ (XDG default)
	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		// Check home directory (backward compatibility)
		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	return ""
}
