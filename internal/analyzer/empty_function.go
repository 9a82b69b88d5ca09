package analyzer

import (
	"fmt"

	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/parser"
)

// EmptyFunctionRule flags functions whose body does nothing: only pass,
// an ellipsis, or a bare docstring.
type EmptyFunctionRule struct{}

// ID returns the rule identifier
func (r *EmptyFunctionRule) ID() domain.RuleID {
	return domain.RuleEmptyFunction
}

// Check fires on function definitions
func (r *EmptyFunctionRule) Check(node *parser.Node) []domain.Finding {
	if node.Type != parser.NodeFunctionDef {
		return nil
	}

	for _, stmt := range node.Body {
		switch stmt.Type {
		case parser.NodePass, parser.NodeEllipsis, parser.NodeStringLiteral:
			continue
		default:
			return nil
		}
	}

	name := node.Name
	if name == "" {
		name = "<anonymous>"
	}
	return []domain.Finding{finding(r.ID(), domain.SeverityInfo, node,
		fmt.Sprintf("function '%s' has an empty body", name))}
}
