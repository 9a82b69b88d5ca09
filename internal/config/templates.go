package config

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// StrictnessPreset holds rule selections for different strictness levels
type StrictnessPreset struct {
	EnabledRules []string
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			EnabledRules: []string{"BARE_EXCEPT", "MUTABLE_DEFAULT"},
		},
		StrictnessStandard: {
			// Empty means all rules run
			EnabledRules: []string{},
		},
		StrictnessStrict: {
			EnabledRules: []string{},
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(strictness Strictness) string {
	preset := GetStrictnessPresets()[strictness]

	return `# pydebug configuration
# Documentation: https://github.com/codelens-ai/pydebug

# ==============================================================================
# EXPLANATION BACKEND
# ==============================================================================
# Settings for the AI explanation request. The API key is deliberately
# omitted here; set it through the PYDEBUG_API_KEY environment variable.
llm:
  # Base URL of an OpenAI-compatible chat-completions endpoint
  base_url: "https://api.openai.com/v1"

  # Model identifier sent with each request
  model: "gpt-4o-mini"

  # Upper bound for a single explanation request
  timeout: 60s

  # Completion length cap
  max_tokens: 1000

  # Response variability (0 = deterministic)
  temperature: 0.2

  # Extra attempts for transient failures (0 or 1)
  retries: 1

# ==============================================================================
# WEB SERVER
# ==============================================================================
# Used by 'pydebug serve'. The password, when set, gates the API behind
# a shared secret; prefer the PYDEBUG_PASSWORD environment variable.
server:
  addr: "127.0.0.1:8080"

  # Number of reports kept in memory for the history view
  history_limit: 50

# ==============================================================================
# ANALYSIS SCOPE
# ==============================================================================
analysis:
  # Rule IDs to run; empty means all rules
  # Available: UNUSED_VARIABLE, BARE_EXCEPT, EMPTY_FUNCTION,
  #            DEBUG_PRINT, LOOP_TARGET, MUTABLE_DEFAULT
  enabled_rules: ` + formatYAMLArray(preset.EnabledRules) + `

  # Rule IDs removed from whatever set is enabled
  disabled_rules: []

  # Directory names and glob patterns skipped during directory walks
  exclude_patterns:
    - ".git"
    - ".venv"
    - "__pycache__"
    - "build"
    - "dist"

  # Analyze directories recursively
  recursive: true

  # Skip files larger than this many bytes (0 = no cap)
  max_file_size: 1048576

  # Skip the explanation request and produce findings-only reports
  skip_explanation: false

# ==============================================================================
# OUTPUT SETTINGS
# ==============================================================================
output:
  # Output format: "text", "json", "yaml", "markdown"
  format: "text"

  # Include the analyzed source text in reports
  show_source: false

  # Write each report to a file in this directory instead of stdout
  # directory: "reports"
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# pydebug configuration (minimal)
# See full options: https://github.com/codelens-ai/pydebug

llm:
  model: "gpt-4o-mini"
  timeout: 60s

output:
  format: "text"
`
}

// formatYAMLArray formats a string slice as a YAML flow sequence
func formatYAMLArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	result := "["
	for i, item := range items {
		if i > 0 {
			result += ", "
		}
		result += `"` + item + `"`
	}
	return result + "]"
}
