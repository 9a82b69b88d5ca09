package analyzer

import (
	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/parser"
)

// DebugPrintRule flags print calls inside function bodies, the usual
// leftover from manual debugging. Module-level prints are allowed since
// scripts legitimately print output.
type DebugPrintRule struct{}

// ID returns the rule identifier
func (r *DebugPrintRule) ID() domain.RuleID {
	return domain.RuleDebugPrint
}

// Check fires on call expressions
func (r *DebugPrintRule) Check(node *parser.Node) []domain.Finding {
	if node.Type != parser.NodeCall {
		return nil
	}
	if node.Callee == nil || node.Callee.Type != parser.NodeIdentifier || node.Callee.Name != "print" {
		return nil
	}
	if node.EnclosingFunction() == nil {
		return nil
	}

	return []domain.Finding{finding(r.ID(), domain.SeverityInfo, node,
		"possible leftover debug print statement")}
}
