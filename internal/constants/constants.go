package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "pydebug"

	// ConfigFileName is the default config file name
	ConfigFileName = "pydebug.config.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "PYDEBUG"
)

// Output format constants
const (
	OutputFormatText     = "text"
	OutputFormatJSON     = "json"
	OutputFormatYAML     = "yaml"
	OutputFormatMarkdown = "markdown"
)

// LLM defaults
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.2
)

// Analysis defaults
const (
	// DefaultMaxFileSize caps analyzed file size at 1 MiB
	DefaultMaxFileSize = 1 << 20
)

// Server defaults
const (
	DefaultServerAddr = "127.0.0.1:8080"

	// DefaultHistoryLimit caps the in-memory report history kept by the server
	DefaultHistoryLimit = 50
)
