package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/analyzer"
	"github.com/codelens-ai/pydebug/internal/parser"
)

// DebugServiceImpl implements domain.DebugService: parse, scan,
// optionally explain, assemble.
type DebugServiceImpl struct {
	explainer domain.Explainer
	logger    hclog.Logger
}

// NewDebugService creates a new debug service
func NewDebugService(explainer domain.Explainer, logger hclog.Logger) *DebugServiceImpl {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &DebugServiceImpl{
		explainer: explainer,
		logger:    logger,
	}
}

// Analyze runs the pipeline for one source. A syntactically invalid
// source still yields a report; the parse failure is recorded and passed
// to the explanation request as additional context.
func (s *DebugServiceImpl) Analyze(ctx context.Context, req domain.DebugRequest) (*domain.Report, error) {
	if strings.TrimSpace(req.Source) == "" {
		return nil, domain.NewInvalidInputError("no source code to analyze", nil)
	}

	p := parser.NewParser()
	defer p.Close()

	var findings []domain.Finding
	var parseFailure string

	tree, err := p.ParseFile(req.FileName, []byte(req.Source))
	if err != nil {
		var parseErr *parser.ParseError
		if !errors.As(err, &parseErr) {
			return nil, domain.NewDomainError(domain.ErrCodeParseError, "failed to parse source", err)
		}
		parseFailure = parseErr.Error()
		s.logger.Debug("source did not parse", "file", req.FileName, "line", parseErr.Line)
	} else {
		scanner := analyzer.NewScanner(analyzer.SelectRules(req.EnabledRules), s.logger)
		findings = scanner.Scan(tree, req.Source)
	}

	var explanation *domain.ExplanationResult
	if req.Explain {
		explanation = s.explainer.Explain(ctx, req.Source, findings, explainContext(req.ErrorMessage, parseFailure))
	}

	return AssembleReport(req.FileName, req.Source, req.ErrorMessage, parseFailure, findings, explanation), nil
}

// explainContext merges the user-supplied error message with the parse
// failure so the model sees both.
func explainContext(errorMessage, parseFailure string) string {
	switch {
	case errorMessage != "" && parseFailure != "":
		return errorMessage + "\n" + parseFailure
	case parseFailure != "":
		return parseFailure
	default:
		return errorMessage
	}
}
