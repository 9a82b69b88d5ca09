package analyzer

import (
	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/parser"
)

// BareExceptRule flags exception handlers that catch everything: a bare
// `except:` or `except BaseException:`/`except Exception:`. Handlers
// whose body only passes are reported at error severity because they
// swallow failures silently.
type BareExceptRule struct{}

// ID returns the rule identifier
func (r *BareExceptRule) ID() domain.RuleID {
	return domain.RuleBareExcept
}

// Check fires on except clauses
func (r *BareExceptRule) Check(node *parser.Node) []domain.Finding {
	if node.Type != parser.NodeExceptClause {
		return nil
	}
	if !catchesEverything(node) {
		return nil
	}

	if bodyOnlyPasses(node.Body) {
		return []domain.Finding{finding(r.ID(), domain.SeverityError, node,
			"except clause catches everything and silently ignores it")}
	}
	return []domain.Finding{finding(r.ID(), domain.SeverityWarning, node,
		"except clause catches everything; catch a specific exception instead")}
}

func catchesEverything(clause *parser.Node) bool {
	if clause.Test == nil {
		return true
	}
	if clause.Test.Type == parser.NodeIdentifier {
		return clause.Test.Name == "Exception" || clause.Test.Name == "BaseException"
	}
	return false
}

// bodyOnlyPasses reports whether a clause body does nothing observable
func bodyOnlyPasses(body []*parser.Node) bool {
	if len(body) == 0 {
		return true
	}
	for _, stmt := range body {
		if stmt.Type != parser.NodePass && stmt.Type != parser.NodeEllipsis {
			return false
		}
	}
	return true
}
