package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatMarkdown OutputFormat = "markdown"
)

// RuleID identifies a single static-analysis rule
type RuleID string

const (
	RuleUnusedVariable RuleID = "UNUSED_VARIABLE"
	RuleBareExcept     RuleID = "BARE_EXCEPT"
	RuleEmptyFunction  RuleID = "EMPTY_FUNCTION"
	RuleDebugPrint     RuleID = "DEBUG_PRINT"
	RuleLoopTarget     RuleID = "LOOP_TARGET"
	RuleMutableDefault RuleID = "MUTABLE_DEFAULT"
)

// AllRules lists every built-in rule in registration order
var AllRules = []RuleID{
	RuleUnusedVariable,
	RuleBareExcept,
	RuleEmptyFunction,
	RuleDebugPrint,
	RuleLoopTarget,
	RuleMutableDefault,
}

// Severity represents the importance of a finding
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// SourceLocation is a position in the analyzed source
type SourceLocation struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// Finding is one static-analysis observation about the source code.
// Immutable once created; its line always falls within [1, lineCount].
type Finding struct {
	RuleID   RuleID         `json:"rule_id" yaml:"rule_id"`
	Severity Severity       `json:"severity" yaml:"severity"`
	Location SourceLocation `json:"location" yaml:"location"`
	Message  string         `json:"message" yaml:"message"`
}

// ExplanationResult is the outcome of delegating bug explanation to the
// external model. A failed request still yields a result; callers must
// check Success instead of an error.
type ExplanationResult struct {
	Success      bool   `json:"success" yaml:"success"`
	Text         string `json:"text,omitempty" yaml:"text,omitempty"`
	SuggestedFix string `json:"suggested_fix,omitempty" yaml:"suggested_fix,omitempty"`
	Tips         string `json:"tips,omitempty" yaml:"tips,omitempty"`
	ModelUsed    string `json:"model_used,omitempty" yaml:"model_used,omitempty"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// Report is the combined output of one analysis request. Assembled once,
// never mutated afterwards.
type Report struct {
	ID           string            `json:"id" yaml:"id"`
	FileName     string            `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	SourceText   string            `json:"source_text" yaml:"source_text"`
	ErrorMessage string            `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	ParseFailure string            `json:"parse_failure,omitempty" yaml:"parse_failure,omitempty"`
	Findings     []Finding         `json:"findings" yaml:"findings"`
	Explanation  ExplanationResult `json:"explanation" yaml:"explanation"`
	GeneratedAt  time.Time         `json:"generated_at" yaml:"generated_at"`
}

// Summary returns a one-line description used by the session history
func (r *Report) Summary() string {
	if r.Explanation.Success && r.Explanation.Text != "" {
		return truncate(oneLine(r.Explanation.Text), 60)
	}
	if len(r.Findings) > 0 {
		return truncate(oneLine(r.Findings[0].Message), 60)
	}
	if r.ParseFailure != "" {
		return truncate(oneLine(r.ParseFailure), 60)
	}
	return "no issues found"
}

func oneLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

// DebugRequest represents one analysis request flowing through the pipeline
type DebugRequest struct {
	// Raw source and optional context supplied by the user
	Source       string
	FileName     string
	ErrorMessage string

	// Explain controls whether the external model is consulted
	Explain bool

	// EnabledRules filters the rule set; empty means all rules
	EnabledRules []RuleID

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// AnalyzeSummary aggregates results across a multi-file run
type AnalyzeSummary struct {
	FilesAnalyzed  int            `json:"files_analyzed" yaml:"files_analyzed"`
	TotalFindings  int            `json:"total_findings" yaml:"total_findings"`
	ParseFailures  int            `json:"parse_failures" yaml:"parse_failures"`
	Explained      int            `json:"explained" yaml:"explained"`
	FindingsByRule map[RuleID]int `json:"findings_by_rule,omitempty" yaml:"findings_by_rule,omitempty"`
}

// Add folds one report into the summary
func (s *AnalyzeSummary) Add(r *Report) {
	s.FilesAnalyzed++
	s.TotalFindings += len(r.Findings)
	if r.Explanation.Success {
		s.Explained++
	}
	if s.FindingsByRule == nil {
		s.FindingsByRule = make(map[RuleID]int)
	}
	for _, f := range r.Findings {
		s.FindingsByRule[f.RuleID]++
	}
}

// DebugService runs the full single-source analysis pipeline
type DebugService interface {
	Analyze(ctx context.Context, req DebugRequest) (*Report, error)
}

// Explainer requests a natural-language explanation from the external
// text-generation service. Implementations must contain all transport
// failures inside the returned result.
type Explainer interface {
	Explain(ctx context.Context, source string, findings []Finding, errorMessage string) *ExplanationResult
}

// ReportFormatter renders an assembled report for display or export
type ReportFormatter interface {
	Format(report *Report, format OutputFormat) (string, error)
	Write(report *Report, format OutputFormat, writer io.Writer) error
}
