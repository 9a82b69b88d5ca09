package analyzer

import (
	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/parser"
)

// LoopTargetRule flags for-loops whose target is not a plain name or a
// tuple of names, e.g. `for x[0] in items:` or `for obj.attr in items:`.
type LoopTargetRule struct{}

// ID returns the rule identifier
func (r *LoopTargetRule) ID() domain.RuleID {
	return domain.RuleLoopTarget
}

// Check fires on for statements
func (r *LoopTargetRule) Check(node *parser.Node) []domain.Finding {
	if node.Type != parser.NodeFor {
		return nil
	}
	if node.Left == nil || plainTarget(node.Left) {
		return nil
	}

	return []domain.Finding{finding(r.ID(), domain.SeverityWarning, node,
		"unusual for-loop target; expected a name or tuple of names")}
}

func plainTarget(target *parser.Node) bool {
	switch target.Type {
	case parser.NodeIdentifier:
		return true
	case parser.NodeTuple, parser.NodeList:
		for _, elem := range target.Children {
			if !plainTarget(elem) {
				return false
			}
		}
		return len(target.Children) > 0
	}
	return false
}
