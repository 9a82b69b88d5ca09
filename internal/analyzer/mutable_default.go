package analyzer

import (
	"fmt"

	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/parser"
)

// MutableDefaultRule flags list/dict/set literals used as parameter
// defaults. The default is evaluated once at definition time and shared
// between calls.
type MutableDefaultRule struct{}

// ID returns the rule identifier
func (r *MutableDefaultRule) ID() domain.RuleID {
	return domain.RuleMutableDefault
}

// Check fires on default parameters
func (r *MutableDefaultRule) Check(node *parser.Node) []domain.Finding {
	if node.Type != parser.NodeDefaultParameter || node.Right == nil {
		return nil
	}

	switch node.Right.Type {
	case parser.NodeList, parser.NodeDictionary, parser.NodeSet:
		return []domain.Finding{finding(r.ID(), domain.SeverityWarning, node,
			fmt.Sprintf("parameter '%s' has a mutable default; use None and assign inside the function", node.Name))}
	}
	return nil
}
