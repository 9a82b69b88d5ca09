package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codelens-ai/pydebug/app"
	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/config"
	"github.com/codelens-ai/pydebug/service"
)

var (
	analyzeFormat     string
	analyzeJSON       bool
	analyzeOutput     string
	analyzeConfigPath string
	analyzeNoExplain  bool
	analyzeErrorMsg   string
	analyzeRules      []string
	analyzeQuiet      bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Analyze Python files for bugs",
		Long: `Analyze Python files for shallow bug patterns and ask the configured
model to explain probable bugs and suggest fixes.

Pass '-' to read source from stdin.

Examples:
  pydebug analyze script.py
  pydebug analyze src/
  pydebug analyze --no-explain --format json src/
  cat broken.py | pydebug analyze -
  pydebug analyze -e "TypeError: unsupported operand" script.py`,
		RunE:         runAnalyze,
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&analyzeFormat, "format", "f", "",
		"Output format: text, json, yaml, markdown")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&analyzeOutput, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&analyzeNoExplain, "no-explain", false,
		"Skip the AI explanation request")
	cmd.Flags().StringVarP(&analyzeErrorMsg, "error-message", "e", "",
		"Runtime error message to pass along as context")
	cmd.Flags().StringSliceVar(&analyzeRules, "rules", nil,
		"Rules to run (comma-separated); default: all")
	cmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false,
		"Suppress the progress bar")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	target := ""
	if args[0] != "-" {
		target = args[0]
	}

	cfg, err := config.LoadConfigWithTarget(analyzeConfigPath, target)
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	formatName := analyzeFormat
	if analyzeJSON {
		formatName = "json"
	}
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := parseOutputFormat(formatName)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	enabledNames := analyzeRules
	if len(enabledNames) == 0 {
		enabledNames = cfg.Analysis.EnabledRules
	}
	rules, err := resolveRules(enabledNames, cfg.Analysis.DisabledRules)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	explain := !analyzeNoExplain && !cfg.Analysis.SkipExplanation

	logger := newLogger()
	svc := buildDebugService(cfg, logger)
	formatter := service.NewReportFormatter()

	saveDir := ""
	if analyzeOutput == "" && cfg.Output.Directory != "" {
		saveDir = cfg.Output.Directory
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to create output directory: %v", err)}
		}
	}

	writer, closeWriter, err := openOutput(analyzeOutput)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}
	defer closeWriter()

	// Stdin mode: a single source, no file collection
	if len(args) == 1 && args[0] == "-" {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to read stdin: %v", err)}
		}

		report, err := svc.Analyze(cmd.Context(), domain.DebugRequest{
			Source:       string(source),
			FileName:     "<stdin>",
			ErrorMessage: analyzeErrorMsg,
			Explain:      explain,
			EnabledRules: rules,
		})
		if err != nil {
			return err
		}
		if saveDir != "" {
			path, err := saveReport(formatter, report, format, saveDir)
			if err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", path)
			return nil
		}
		return formatter.Write(report, format, writer)
	}

	pm := service.NewProgressManager(format == domain.OutputFormatText && !analyzeQuiet)
	defer pm.Close()

	executor := service.NewParallelExecutorWithProgress(pm)
	useCase := app.NewDebugUseCase(svc, executor)

	reports, summary, err := useCase.ExecuteFiles(cmd.Context(), app.AnalyzeOptions{
		Paths:           args,
		Recursive:       cfg.Analysis.Recursive,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
		Explain:         explain,
		EnabledRules:    rules,
		ErrorMessage:    analyzeErrorMsg,
		MaxFileSize:     cfg.Analysis.MaxFileSize,
	})
	if err != nil {
		return err
	}
	pm.Close()

	for i, report := range reports {
		if saveDir != "" {
			path, err := saveReport(formatter, report, format, saveDir)
			if err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", path)
			continue
		}
		if i > 0 && format == domain.OutputFormatText {
			fmt.Fprintln(writer)
		}
		if err := formatter.Write(report, format, writer); err != nil {
			return err
		}
	}

	if format == domain.OutputFormatText && len(reports) > 1 {
		fmt.Fprintln(writer)
		if err := formatter.WriteSummary(summary, writer); err != nil {
			return err
		}
	}

	return nil
}

// formatExtension maps an output format to a report file extension
func formatExtension(format domain.OutputFormat) string {
	switch format {
	case domain.OutputFormatJSON:
		return ".json"
	case domain.OutputFormatYAML:
		return ".yaml"
	case domain.OutputFormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// saveReport writes one report into dir, named after the analyzed file
func saveReport(formatter *service.ReportFormatterImpl, report *domain.Report, format domain.OutputFormat, dir string) (string, error) {
	base := "report"
	if report.FileName != "" && report.FileName != "<stdin>" {
		base = strings.TrimSuffix(filepath.Base(report.FileName), filepath.Ext(report.FileName))
	}
	path := filepath.Join(dir, base+formatExtension(format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := formatter.Write(report, format, f); err != nil {
		return "", err
	}
	return path, nil
}

// openOutput returns the report writer and a cleanup func
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
