package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/version"
)

// ReportFormatterImpl implements the domain.ReportFormatter interface
type ReportFormatterImpl struct{}

// NewReportFormatter creates a new report formatter
func NewReportFormatter() *ReportFormatterImpl {
	return &ReportFormatterImpl{}
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ReportJSON wraps a report with tool metadata for machine-readable output
type ReportJSON struct {
	Version string         `json:"version"`
	Report  *domain.Report `json:"report"`
}

// Format renders the report in the specified format
func (f *ReportFormatterImpl) Format(report *domain.Report, format domain.OutputFormat) (string, error) {
	var sb strings.Builder
	if err := f.Write(report, format, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the report in the specified format
func (f *ReportFormatterImpl) Write(report *domain.Report, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, &ReportJSON{Version: version.GetVersion(), Report: report})
	case domain.OutputFormatYAML:
		return f.writeYAML(report, writer)
	case domain.OutputFormatMarkdown:
		return f.writeMarkdown(report, writer)
	case domain.OutputFormatText:
		return f.writeText(report, writer)
	default:
		return domain.NewOutputError(fmt.Sprintf("unsupported output format: %s", format), nil)
	}
}

func (f *ReportFormatterImpl) writeYAML(report *domain.Report, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(report)
}

func (f *ReportFormatterImpl) writeText(report *domain.Report, writer io.Writer) error {
	var sb strings.Builder

	if report.FileName != "" {
		sb.WriteString(fmt.Sprintf("File: %s\n", report.FileName))
	}
	sb.WriteString(fmt.Sprintf("Report: %s\n", report.ID))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))

	sb.WriteString("Static Analysis\n")
	sb.WriteString("---------------\n")
	if report.ParseFailure != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", report.ParseFailure))
	}
	if len(report.Findings) == 0 {
		if report.ParseFailure == "" {
			sb.WriteString("No obvious issues found via static analysis\n")
		}
	} else {
		for _, finding := range report.Findings {
			sb.WriteString(fmt.Sprintf("  line %d [%s] %s (%s)\n",
				finding.Location.Line, finding.Severity, finding.Message, finding.RuleID))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("AI Explanation\n")
	sb.WriteString("--------------\n")
	switch {
	case report.Explanation.Success:
		sb.WriteString(strings.TrimSpace(report.Explanation.Text))
		sb.WriteString("\n")
		if report.Explanation.SuggestedFix != "" {
			sb.WriteString("\nSuggested Fix\n")
			sb.WriteString("-------------\n")
			sb.WriteString(strings.TrimSpace(report.Explanation.SuggestedFix))
			sb.WriteString("\n")
		}
		if report.Explanation.Tips != "" {
			sb.WriteString("\nTips\n")
			sb.WriteString("----\n")
			sb.WriteString(strings.TrimSpace(report.Explanation.Tips))
			sb.WriteString("\n")
		}
	case report.Explanation.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("unavailable: %s\n", report.Explanation.ErrorMessage))
	default:
		sb.WriteString("skipped\n")
	}

	_, err := io.WriteString(writer, sb.String())
	return err
}

// writeMarkdown renders the downloadable report layout
func (f *ReportFormatterImpl) writeMarkdown(report *domain.Report, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("# AI Code Debugging Report\n\n")
	sb.WriteString(fmt.Sprintf("**Date:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("---\n\n")

	sb.WriteString("## Submitted Code\n")
	sb.WriteString("```python\n")
	sb.WriteString(report.SourceText)
	if !strings.HasSuffix(report.SourceText, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("```\n\n")

	sb.WriteString("## Error Message\n")
	if report.ErrorMessage != "" {
		sb.WriteString(report.ErrorMessage)
	} else {
		sb.WriteString("N/A")
	}
	sb.WriteString("\n\n---\n\n")

	sb.WriteString("## Static Analysis\n")
	if report.ParseFailure != "" {
		sb.WriteString(fmt.Sprintf("- %s\n", report.ParseFailure))
	}
	if len(report.Findings) == 0 {
		if report.ParseFailure == "" {
			sb.WriteString("- No obvious issues found via static analysis\n")
		}
	} else {
		for _, finding := range report.Findings {
			sb.WriteString(fmt.Sprintf("- line %d [%s] %s\n",
				finding.Location.Line, finding.Severity, finding.Message))
		}
	}
	sb.WriteString("\n---\n\n")

	sb.WriteString("## AI Explanation\n")
	if report.Explanation.Success && report.Explanation.Text != "" {
		sb.WriteString(strings.TrimSpace(report.Explanation.Text))
	} else if report.Explanation.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("N/A (%s)", report.Explanation.ErrorMessage))
	} else {
		sb.WriteString("N/A")
	}
	sb.WriteString("\n\n")

	sb.WriteString("## Suggested Fix\n")
	if report.Explanation.SuggestedFix != "" {
		sb.WriteString("```python\n")
		sb.WriteString(strings.TrimSpace(report.Explanation.SuggestedFix))
		sb.WriteString("\n```\n")
	} else {
		sb.WriteString("N/A\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Additional Tips\n")
	if report.Explanation.Tips != "" {
		sb.WriteString(strings.TrimSpace(report.Explanation.Tips))
	} else {
		sb.WriteString("N/A")
	}
	sb.WriteString("\n")

	_, err := io.WriteString(writer, sb.String())
	return err
}

// WriteSummary writes the aggregate of a multi-file run as text
func (f *ReportFormatterImpl) WriteSummary(summary *domain.AnalyzeSummary, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Summary\n")
	sb.WriteString("-------\n")
	sb.WriteString(fmt.Sprintf("Files analyzed: %d\n", summary.FilesAnalyzed))
	sb.WriteString(fmt.Sprintf("Parse failures: %d\n", summary.ParseFailures))
	sb.WriteString(fmt.Sprintf("Total findings: %d\n", summary.TotalFindings))
	if summary.Explained > 0 {
		sb.WriteString(fmt.Sprintf("Explained:      %d\n", summary.Explained))
	}
	if len(summary.FindingsByRule) > 0 {
		sb.WriteString("\nFindings by rule:\n")
		for _, id := range domain.AllRules {
			if count := summary.FindingsByRule[id]; count > 0 {
				sb.WriteString(fmt.Sprintf("  %-16s %d\n", id, count))
			}
		}
	}

	_, err := io.WriteString(writer, sb.String())
	return err
}
