package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codelens-ai/pydebug/app"
	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/config"
	"github.com/codelens-ai/pydebug/internal/version"
	"github.com/codelens-ai/pydebug/service"
)

// CheckExitError is a custom error type for command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMaxFindings int
	checkRules       []string
	checkJSON        bool
	checkVerbose     bool
	checkConfigPath  string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fast findings check for CI/CD pipelines",
		Long: `Run the static scan only (no AI request) and fail when findings exceed
the allowed maximum.

Exit codes:
  0 - Findings within the allowed maximum
  1 - Too many findings
  2 - Analysis error (file not found, config error, etc.)

Examples:
  # Fail on any finding
  pydebug check src/

  # Allow up to five findings
  pydebug check --max-findings 5 src/

  # JSON output for machine parsing
  pydebug check --json src/`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVar(&checkMaxFindings, "max-findings", 0,
		"Maximum allowed findings before failing")
	cmd.Flags().StringSliceVar(&checkRules, "rules", nil,
		"Rules to run (comma-separated); default: all")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show every finding")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

// checkResultJSON is the machine-readable check output
type checkResultJSON struct {
	Version     string                 `json:"version"`
	GeneratedAt string                 `json:"generated_at"`
	Passed      bool                   `json:"passed"`
	MaxFindings int                    `json:"max_findings"`
	Summary     *domain.AnalyzeSummary `json:"summary"`
	Findings    []domain.Finding       `json:"findings"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: 2, Message: "no paths specified"}
	}

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	enabledNames := checkRules
	if len(enabledNames) == 0 {
		enabledNames = cfg.Analysis.EnabledRules
	}
	rules, err := resolveRules(enabledNames, cfg.Analysis.DisabledRules)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	logger := newLogger()
	svc := buildDebugService(cfg, logger)
	useCase := app.NewDebugUseCase(svc, service.NewParallelExecutor())

	reports, summary, err := useCase.ExecuteFiles(cmd.Context(), app.AnalyzeOptions{
		Paths:           args,
		Recursive:       cfg.Analysis.Recursive,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
		Explain:         false,
		EnabledRules:    rules,
		MaxFileSize:     cfg.Analysis.MaxFileSize,
	})
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	if summary.ParseFailures > 0 {
		for _, report := range reports {
			if report.ParseFailure != "" {
				fmt.Fprintf(os.Stderr, "%s\n", report.ParseFailure)
			}
		}
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("%d file(s) failed to parse", summary.ParseFailures)}
	}

	passed := summary.TotalFindings <= checkMaxFindings

	if checkJSON {
		var findings []domain.Finding
		for _, report := range reports {
			findings = append(findings, report.Findings...)
		}
		if findings == nil {
			findings = []domain.Finding{}
		}
		result := checkResultJSON{
			Version:     version.GetVersion(),
			GeneratedAt: time.Now().Format(time.RFC3339),
			Passed:      passed,
			MaxFindings: checkMaxFindings,
			Summary:     summary,
			Findings:    findings,
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return &CheckExitError{Code: 2, Message: err.Error()}
		}
	} else {
		fmt.Printf("Checked %d files: %d findings (max allowed: %d)\n",
			summary.FilesAnalyzed, summary.TotalFindings, checkMaxFindings)
		if checkVerbose || !passed {
			for _, report := range reports {
				for _, f := range report.Findings {
					fmt.Printf("  %s:%d [%s] %s\n", report.FileName, f.Location.Line, f.RuleID, f.Message)
				}
			}
		}
	}

	if !passed {
		return &CheckExitError{Code: 1}
	}
	return nil
}
