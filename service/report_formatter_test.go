package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/codelens-ai/pydebug/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		ID:           "r-123",
		FileName:     "buggy.py",
		SourceText:   "def f():\n  x = 1\n",
		ErrorMessage: "NameError: name 'x' is not defined",
		Findings: []domain.Finding{
			{
				RuleID:   domain.RuleUnusedVariable,
				Severity: domain.SeverityWarning,
				Location: domain.SourceLocation{Line: 2, Column: 3},
				Message:  "local variable 'x' is assigned but never used",
			},
		},
		Explanation: domain.ExplanationResult{
			Success:      true,
			Text:         "The variable x is assigned but never read.",
			SuggestedFix: "def f():\n    return 1",
			Tips:         "Remove variables you do not use.",
			ModelUsed:    "gpt-4o-mini",
		},
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestFormatText(t *testing.T) {
	formatter := NewReportFormatter()

	out, err := formatter.Format(sampleReport(), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "File: buggy.py")
	assert.Contains(t, out, "Report: r-123")
	assert.Contains(t, out, "Static Analysis")
	assert.Contains(t, out, "line 2 [warning] local variable 'x' is assigned but never used (UNUSED_VARIABLE)")
	assert.Contains(t, out, "AI Explanation")
	assert.Contains(t, out, "The variable x is assigned but never read.")
	assert.Contains(t, out, "Suggested Fix")
	assert.Contains(t, out, "Tips")
}

func TestFormatTextNoFindings(t *testing.T) {
	formatter := NewReportFormatter()
	report := sampleReport()
	report.Findings = nil
	report.Explanation = domain.ExplanationResult{}

	out, err := formatter.Format(report, domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "No obvious issues found via static analysis")
	assert.Contains(t, out, "skipped")
}

func TestFormatTextParseFailure(t *testing.T) {
	formatter := NewReportFormatter()
	report := sampleReport()
	report.Findings = nil
	report.ParseFailure = "line 1, column 9: syntax error"
	report.Explanation = domain.ExplanationResult{ErrorMessage: "no API key configured"}

	out, err := formatter.Format(report, domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "line 1, column 9: syntax error")
	assert.NotContains(t, out, "No obvious issues found")
	assert.Contains(t, out, "unavailable: no API key configured")
}

func TestFormatMarkdown(t *testing.T) {
	formatter := NewReportFormatter()

	out, err := formatter.Format(sampleReport(), domain.OutputFormatMarkdown)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# AI Code Debugging Report\n"))
	assert.Contains(t, out, "**Date:** 2026-03-14 09:30:00")
	assert.Contains(t, out, "## Submitted Code\n```python\ndef f():\n  x = 1\n```\n")
	assert.Contains(t, out, "## Error Message\nNameError: name 'x' is not defined")
	assert.Contains(t, out, "## Static Analysis\n- line 2 [warning] local variable 'x' is assigned but never used")
	assert.Contains(t, out, "## AI Explanation\nThe variable x is assigned but never read.")
	assert.Contains(t, out, "## Suggested Fix\n```python\ndef f():\n    return 1\n```")
	assert.Contains(t, out, "## Additional Tips\nRemove variables you do not use.")
}

func TestFormatMarkdownEmptySections(t *testing.T) {
	formatter := NewReportFormatter()
	report := sampleReport()
	report.ErrorMessage = ""
	report.Findings = nil
	report.Explanation = domain.ExplanationResult{}

	out, err := formatter.Format(report, domain.OutputFormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "## Error Message\nN/A")
	assert.Contains(t, out, "- No obvious issues found via static analysis")
	assert.Contains(t, out, "## AI Explanation\nN/A")
	assert.Contains(t, out, "## Suggested Fix\nN/A")
	assert.Contains(t, out, "## Additional Tips\nN/A")
}

func TestFormatJSON(t *testing.T) {
	formatter := NewReportFormatter()

	out, err := formatter.Format(sampleReport(), domain.OutputFormatJSON)
	require.NoError(t, err)

	var decoded ReportJSON
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.NotEmpty(t, decoded.Version)
	require.NotNil(t, decoded.Report)
	assert.Equal(t, "r-123", decoded.Report.ID)
	require.Len(t, decoded.Report.Findings, 1)
	assert.Equal(t, domain.RuleUnusedVariable, decoded.Report.Findings[0].RuleID)
	assert.True(t, decoded.Report.Explanation.Success)
}

func TestFormatYAML(t *testing.T) {
	formatter := NewReportFormatter()

	out, err := formatter.Format(sampleReport(), domain.OutputFormatYAML)
	require.NoError(t, err)

	var decoded domain.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "r-123", decoded.ID)
	assert.Equal(t, "buggy.py", decoded.FileName)
	require.Len(t, decoded.Findings, 1)
	assert.Equal(t, 2, decoded.Findings[0].Location.Line)
}

func TestFormatUnsupported(t *testing.T) {
	formatter := NewReportFormatter()

	_, err := formatter.Format(sampleReport(), domain.OutputFormat("xml"))
	require.Error(t, err)

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeOutputError, domainErr.Code)
}

func TestWriteSummary(t *testing.T) {
	formatter := NewReportFormatter()
	summary := &domain.AnalyzeSummary{}
	summary.Add(sampleReport())
	summary.Add(&domain.Report{ParseFailure: "line 1, column 9: syntax error"})
	summary.ParseFailures = 1

	var sb strings.Builder
	require.NoError(t, formatter.WriteSummary(summary, &sb))
	out := sb.String()

	assert.Contains(t, out, "Files analyzed: 2")
	assert.Contains(t, out, "Parse failures: 1")
	assert.Contains(t, out, "Total findings: 1")
	assert.Contains(t, out, "UNUSED_VARIABLE")
}
