package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/parser"
)

// UnusedVariableRule flags local variables that are assigned but never
// read anywhere in their enclosing function. Underscore-prefixed names
// are conventionally intentional and skipped, as are names declared
// global or nonlocal.
type UnusedVariableRule struct{}

// ID returns the rule identifier
func (r *UnusedVariableRule) ID() domain.RuleID {
	return domain.RuleUnusedVariable
}

// Check fires on function definitions and inspects their body
func (r *UnusedVariableRule) Check(node *parser.Node) []domain.Finding {
	if node.Type != parser.NodeFunctionDef {
		return nil
	}

	assigned := map[string]int{}       // name -> first assignment line
	targets := map[*parser.Node]bool{} // identifier nodes in target position
	escaped := map[string]bool{}       // global/nonlocal declarations

	for _, stmt := range node.Body {
		collectAssignments(stmt, assigned, targets, escaped)
	}
	if len(assigned) == 0 {
		return nil
	}

	// Reads include nested functions: a closure capturing the name is a use
	read := map[string]bool{}
	for _, stmt := range node.Body {
		stmt.Walk(func(n *parser.Node) bool {
			if n.Type == parser.NodeIdentifier && n.Name != "" && !targets[n] && !isAttributeName(n) {
				read[n.Name] = true
			}
			return true
		})
	}

	var names []string
	for name := range assigned {
		if read[name] || escaped[name] || strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return assigned[names[i]] < assigned[names[j]] })

	var findings []domain.Finding
	for _, name := range names {
		at := &parser.Node{Location: parser.Location{StartLine: assigned[name]}}
		findings = append(findings, finding(r.ID(), domain.SeverityWarning, at,
			fmt.Sprintf("variable '%s' is assigned but never used", name)))
	}
	return findings
}

// collectAssignments gathers assignment targets within one function,
// without descending into nested function or class scopes
func collectAssignments(node *parser.Node, assigned map[string]int, targets map[*parser.Node]bool, escaped map[string]bool) {
	if node == nil {
		return
	}

	node.Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeFunctionDef, parser.NodeLambda, parser.NodeClassDef:
			// Different scope
			return false
		case parser.NodeGlobal, parser.NodeNonlocal:
			for _, id := range n.Children {
				if id.Type == parser.NodeIdentifier {
					escaped[id.Name] = true
				}
			}
		case parser.NodeAssignment, parser.NodeNamedExpression:
			recordTargets(n.Left, assigned, targets)
		case parser.NodeFor:
			recordTargets(n.Left, assigned, targets)
		}
		return true
	})
}

// recordTargets records plain identifier targets, including tuple unpacking
func recordTargets(target *parser.Node, assigned map[string]int, targets map[*parser.Node]bool) {
	if target == nil {
		return
	}
	switch target.Type {
	case parser.NodeIdentifier:
		if target.Name != "" {
			if _, seen := assigned[target.Name]; !seen {
				assigned[target.Name] = target.Location.StartLine
			}
			targets[target] = true
		}
	case parser.NodeTuple, parser.NodeList:
		for _, elem := range target.Children {
			recordTargets(elem, assigned, targets)
		}
	}
	// Attribute and subscript targets mutate existing objects, not locals
}

// isAttributeName reports whether an identifier is the attribute name in
// an obj.attr access (not a variable reference)
func isAttributeName(n *parser.Node) bool {
	return n.Parent != nil && n.Parent.Type == parser.NodeAttribute && n.Parent.Property == n
}
