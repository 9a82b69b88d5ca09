package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/codelens-ai/pydebug/domain"
)

// AssembleReport combines the analysis pieces into an immutable report.
// The explanation may be nil when the request skipped it; parseFailure
// is non-empty when the source did not parse.
func AssembleReport(fileName, source, errorMessage, parseFailure string, findings []domain.Finding, explanation *domain.ExplanationResult) *domain.Report {
	if findings == nil {
		findings = []domain.Finding{}
	}

	report := &domain.Report{
		ID:           uuid.NewString(),
		FileName:     fileName,
		SourceText:   source,
		ErrorMessage: errorMessage,
		ParseFailure: parseFailure,
		Findings:     findings,
		GeneratedAt:  time.Now(),
	}
	if explanation != nil {
		report.Explanation = *explanation
	}
	return report
}
