package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelens-ai/pydebug/domain"
)

// stubExplainer returns a canned result and records its inputs
type stubExplainer struct {
	result      *domain.ExplanationResult
	gotSource   string
	gotFindings []domain.Finding
	gotErrorCtx string
	calls       int
}

func (s *stubExplainer) Explain(ctx context.Context, source string, findings []domain.Finding, errorMessage string) *domain.ExplanationResult {
	s.calls++
	s.gotSource = source
	s.gotFindings = findings
	s.gotErrorCtx = errorMessage
	return s.result
}

func TestAnalyzeProducesFindingsAndExplanation(t *testing.T) {
	explainer := &stubExplainer{result: &domain.ExplanationResult{
		Success: true,
		Text:    "x is never used",
	}}
	svc := NewDebugService(explainer, nil)

	report, err := svc.Analyze(context.Background(), domain.DebugRequest{
		Source:  "def f():\n  x = 1\n",
		Explain: true,
	})

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.ID)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, domain.RuleUnusedVariable, report.Findings[0].RuleID)
	assert.Equal(t, 2, report.Findings[0].Location.Line)
	assert.True(t, report.Explanation.Success)
	assert.Equal(t, 1, explainer.calls)
	assert.Len(t, explainer.gotFindings, 1)
}

func TestAnalyzeFailedExplanationKeepsFindings(t *testing.T) {
	explainer := &stubExplainer{result: &domain.ExplanationResult{
		Success:      false,
		ErrorMessage: "request failed: context deadline exceeded",
	}}
	svc := NewDebugService(explainer, nil)

	report, err := svc.Analyze(context.Background(), domain.DebugRequest{
		Source:  "def f():\n  x = 1\n",
		Explain: true,
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.False(t, report.Explanation.Success)
	assert.NotEmpty(t, report.Explanation.ErrorMessage)
}

func TestAnalyzeSkipsExplanation(t *testing.T) {
	explainer := &stubExplainer{result: &domain.ExplanationResult{Success: true}}
	svc := NewDebugService(explainer, nil)

	report, err := svc.Analyze(context.Background(), domain.DebugRequest{
		Source:  "x = 1\n",
		Explain: false,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, explainer.calls)
	assert.False(t, report.Explanation.Success)
}

func TestAnalyzeInvalidSyntax(t *testing.T) {
	explainer := &stubExplainer{result: &domain.ExplanationResult{Success: true, Text: "missing colon"}}
	svc := NewDebugService(explainer, nil)

	report, err := svc.Analyze(context.Background(), domain.DebugRequest{
		Source:       "def foo()\n    print('Hello')",
		ErrorMessage: "SyntaxError: invalid syntax",
		Explain:      true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, report.ParseFailure)
	assert.Empty(t, report.Findings)

	// The model sees both the user error and the parse failure
	assert.Contains(t, explainer.gotErrorCtx, "SyntaxError: invalid syntax")
	assert.Contains(t, explainer.gotErrorCtx, report.ParseFailure)
}

func TestAnalyzeEmptySource(t *testing.T) {
	svc := NewDebugService(&stubExplainer{result: &domain.ExplanationResult{}}, nil)

	_, err := svc.Analyze(context.Background(), domain.DebugRequest{Source: "   \n"})

	require.Error(t, err)
	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeInvalidInput, domainErr.Code)
}

func TestAnalyzeEnabledRulesFilter(t *testing.T) {
	explainer := &stubExplainer{result: &domain.ExplanationResult{}}
	svc := NewDebugService(explainer, nil)

	report, err := svc.Analyze(context.Background(), domain.DebugRequest{
		Source:       "def f():\n  x = 1\n  print('debug')\n",
		EnabledRules: []domain.RuleID{domain.RuleDebugPrint},
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, domain.RuleDebugPrint, report.Findings[0].RuleID)
}
