package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/config"
	"github.com/codelens-ai/pydebug/internal/constants"
	"github.com/codelens-ai/pydebug/internal/llm"
	"github.com/codelens-ai/pydebug/service"
)

// newLogger builds the root logger. Level comes from PYDEBUG_LOG_LEVEL;
// default is warn so normal CLI output stays clean.
func newLogger() hclog.Logger {
	level := os.Getenv(constants.EnvVarPrefix + "_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   constants.ToolName,
		Level:  hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}

// buildDebugService wires the explanation client into the pipeline service
func buildDebugService(cfg *config.Config, logger hclog.Logger) domain.DebugService {
	explainer := llm.NewClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Timeout:     cfg.LLM.Timeout,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Retries:     cfg.LLM.Retries,
	}, logger.Named("llm"))

	return service.NewDebugService(explainer, logger.Named("analyzer"))
}

// parseRuleIDs validates rule names from the command line
func parseRuleIDs(names []string) ([]domain.RuleID, error) {
	if len(names) == 0 {
		return nil, nil
	}

	known := make(map[domain.RuleID]bool, len(domain.AllRules))
	for _, id := range domain.AllRules {
		known[id] = true
	}

	ids := make([]domain.RuleID, 0, len(names))
	for _, name := range names {
		id := domain.RuleID(name)
		if !known[id] {
			return nil, fmt.Errorf("unknown rule: %s", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveRules combines the enabled selection with configured disabled
// rules. An empty enabled list means all rules before subtraction.
func resolveRules(enabledNames, disabledNames []string) ([]domain.RuleID, error) {
	enabled, err := parseRuleIDs(enabledNames)
	if err != nil {
		return nil, err
	}
	disabled, err := parseRuleIDs(disabledNames)
	if err != nil {
		return nil, err
	}
	if len(disabled) == 0 {
		return enabled, nil
	}

	if len(enabled) == 0 {
		enabled = domain.AllRules
	}
	skip := make(map[domain.RuleID]bool, len(disabled))
	for _, id := range disabled {
		skip[id] = true
	}

	rules := make([]domain.RuleID, 0, len(enabled))
	for _, id := range enabled {
		if !skip[id] {
			rules = append(rules, id)
		}
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("every rule is disabled; nothing to scan")
	}
	return rules, nil
}

// parseOutputFormat validates the --format flag
func parseOutputFormat(format string) (domain.OutputFormat, error) {
	switch format {
	case constants.OutputFormatText:
		return domain.OutputFormatText, nil
	case constants.OutputFormatJSON:
		return domain.OutputFormatJSON, nil
	case constants.OutputFormatYAML:
		return domain.OutputFormatYAML, nil
	case constants.OutputFormatMarkdown:
		return domain.OutputFormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (expected text, json, yaml, or markdown)", format)
	}
}
