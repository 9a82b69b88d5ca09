package analyzer

import (
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/internal/parser"
)

// Scanner applies a fixed set of independent rules in a single tree walk.
// The scan is best-effort: a panicking rule is dropped for the rest of the
// walk and contributes no findings, while the remaining rules continue.
type Scanner struct {
	rules  []Rule
	logger hclog.Logger
}

// NewScanner creates a scanner over the given rules
func NewScanner(rules []Rule, logger hclog.Logger) *Scanner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Scanner{rules: rules, logger: logger}
}

// taggedFinding remembers which rule produced a finding so that a rule
// failing mid-walk can be erased without disturbing discovery order
type taggedFinding struct {
	ruleID  domain.RuleID
	finding domain.Finding
}

// Scan walks the tree once and collects findings in discovery order.
// Running it twice on the same tree yields the identical sequence.
func (s *Scanner) Scan(tree *parser.Node, source string) []domain.Finding {
	if tree == nil {
		return nil
	}

	lineCount := strings.Count(source, "\n") + 1

	var collected []taggedFinding
	failed := make(map[domain.RuleID]bool)

	tree.Walk(func(node *parser.Node) bool {
		for _, rule := range s.rules {
			if failed[rule.ID()] {
				continue
			}
			results, ok := s.applyRule(rule, node)
			if !ok {
				failed[rule.ID()] = true
				continue
			}
			for _, f := range results {
				f.Location.Line = clampLine(f.Location.Line, lineCount)
				collected = append(collected, taggedFinding{ruleID: rule.ID(), finding: f})
			}
		}
		return true
	})

	findings := make([]domain.Finding, 0, len(collected))
	for _, tf := range collected {
		if failed[tf.ruleID] {
			continue
		}
		findings = append(findings, tf.finding)
	}
	return findings
}

// applyRule runs one rule on one node, containing panics
func (s *Scanner) applyRule(rule Rule, node *parser.Node) (results []domain.Finding, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("rule failed, skipping for this scan",
				"rule", rule.ID(), "node", node.Type, "panic", r)
			results = nil
			ok = false
		}
	}()
	return rule.Check(node), true
}

// clampLine keeps a finding's line inside [1, lineCount]
func clampLine(line, lineCount int) int {
	if line < 1 {
		return 1
	}
	if line > lineCount {
		return lineCount
	}
	return line
}
