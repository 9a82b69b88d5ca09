package analyzer

import (
	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/parser"
)

// Rule is a single shallow heuristic. Check is a pure predicate over one
// tree node: it may inspect the node and its subtree but must not depend
// on other rules having run, and must not keep state between calls.
type Rule interface {
	ID() domain.RuleID

	// Check returns findings triggered by this node, or nil
	Check(node *parser.Node) []domain.Finding
}

// DefaultRules returns every built-in rule in registration order
func DefaultRules() []Rule {
	return []Rule{
		&UnusedVariableRule{},
		&BareExceptRule{},
		&EmptyFunctionRule{},
		&DebugPrintRule{},
		&LoopTargetRule{},
		&MutableDefaultRule{},
	}
}

// SelectRules filters the built-in rules down to the enabled set.
// An empty set enables everything.
func SelectRules(enabled []domain.RuleID) []Rule {
	all := DefaultRules()
	if len(enabled) == 0 {
		return all
	}

	want := make(map[domain.RuleID]bool, len(enabled))
	for _, id := range enabled {
		want[id] = true
	}

	var rules []Rule
	for _, r := range all {
		if want[r.ID()] {
			rules = append(rules, r)
		}
	}
	return rules
}

// finding builds a Finding anchored at a node's start line
func finding(id domain.RuleID, severity domain.Severity, node *parser.Node, message string) domain.Finding {
	return domain.Finding{
		RuleID:   id,
		Severity: severity,
		Location: domain.SourceLocation{
			Line:   node.Location.StartLine,
			Column: node.Location.StartCol + 1,
		},
		Message: message,
	}
}
