package analyzer

import (
	"strings"
	"testing"

	"github.com/codelens-ai/pydebug/domain"
)

// findingsFor runs the full default scan and filters to one rule
func findingsFor(t *testing.T, source string, id domain.RuleID) []domain.Finding {
	t.Helper()
	var out []domain.Finding
	for _, f := range scan(t, source, DefaultRules()) {
		if f.RuleID == id {
			out = append(out, f)
		}
	}
	return out
}

func TestUnusedVariableRule(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantNames []string
	}{
		{
			"simple unused",
			"def f():\n  x = 1\n",
			[]string{"x"},
		},
		{
			"used variable",
			"def f():\n  x = 1\n  return x\n",
			nil,
		},
		{
			"underscore skipped",
			"def f():\n  _ignored = compute()\n",
			nil,
		},
		{
			"global skipped",
			"def f():\n  global counter\n  counter = 1\n",
			nil,
		},
		{
			"closure read counts as use",
			"def f():\n  x = 1\n  def g():\n    return x\n  return g\n",
			nil,
		},
		{
			"nested scope assignment not ours",
			"def f():\n  def g():\n    y = 1\n    return y\n  return g\n",
			nil,
		},
		{
			"tuple unpacking partially unused",
			"def f(pair):\n  a, b = pair\n  return a\n",
			[]string{"b"},
		},
		{
			"loop variable unused",
			"def f(items):\n  total = 0\n  for item in items:\n    total += 1\n  return total\n",
			[]string{"item"},
		},
		{
			"attribute write not a local",
			"def f(obj):\n  obj.x = 1\n",
			nil,
		},
		{
			"top level assignment ignored",
			"x = 1\n",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := findingsFor(t, tt.source, domain.RuleUnusedVariable)
			if len(findings) != len(tt.wantNames) {
				t.Fatalf("expected %d findings, got %d: %v", len(tt.wantNames), len(findings), findings)
			}
			for i, name := range tt.wantNames {
				if !strings.Contains(findings[i].Message, "'"+name+"'") {
					t.Errorf("expected finding %d to name %q, got %q", i, name, findings[i].Message)
				}
			}
		})
	}
}

func TestBareExceptRule(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		wantCount    int
		wantSeverity domain.Severity
	}{
		{
			"bare except with pass",
			"try:\n  work()\nexcept:\n  pass\n",
			1, domain.SeverityError,
		},
		{
			"bare except with handling",
			"try:\n  work()\nexcept:\n  log()\n",
			1, domain.SeverityWarning,
		},
		{
			"except Exception",
			"try:\n  work()\nexcept Exception:\n  log()\n",
			1, domain.SeverityWarning,
		},
		{
			"except BaseException with pass",
			"try:\n  work()\nexcept BaseException:\n  ...\n",
			1, domain.SeverityError,
		},
		{
			"specific exception ok",
			"try:\n  work()\nexcept ValueError:\n  pass\n",
			0, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := findingsFor(t, tt.source, domain.RuleBareExcept)
			if len(findings) != tt.wantCount {
				t.Fatalf("expected %d findings, got %d: %v", tt.wantCount, len(findings), findings)
			}
			if tt.wantCount > 0 && findings[0].Severity != tt.wantSeverity {
				t.Errorf("expected severity %s, got %s", tt.wantSeverity, findings[0].Severity)
			}
		})
	}
}

func TestEmptyFunctionRule(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantCount int
	}{
		{"pass only", "def f():\n  pass\n", 1},
		{"ellipsis only", "def f():\n  ...\n", 1},
		{"docstring only", "def f():\n  \"\"\"todo\"\"\"\n", 1},
		{"docstring then pass", "def f():\n  \"\"\"todo\"\"\"\n  pass\n", 1},
		{"real body", "def f():\n  return 1\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := findingsFor(t, tt.source, domain.RuleEmptyFunction)
			if len(findings) != tt.wantCount {
				t.Fatalf("expected %d findings, got %d: %v", tt.wantCount, len(findings), findings)
			}
		})
	}
}

func TestDebugPrintRule(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantCount int
		wantLine  int
	}{
		{"print inside function", "def test():\n  print('debug')\n  return 42\n", 1, 2},
		{"top level print ok", "print('hello')\n", 0, 0},
		{"no print", "def f():\n  return 1\n", 0, 0},
		{"print in method", "class A:\n  def m(self):\n    print(self)\n", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := findingsFor(t, tt.source, domain.RuleDebugPrint)
			if len(findings) != tt.wantCount {
				t.Fatalf("expected %d findings, got %d: %v", tt.wantCount, len(findings), findings)
			}
			if tt.wantCount > 0 && findings[0].Location.Line != tt.wantLine {
				t.Errorf("expected finding at line %d, got %d", tt.wantLine, findings[0].Location.Line)
			}
		})
	}
}

func TestLoopTargetRule(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantCount int
	}{
		{"plain name ok", "for i in range(3):\n  pass\n", 0},
		{"tuple of names ok", "for k, v in items:\n  pass\n", 0},
		{"subscript target flagged", "for d['k'] in items:\n  pass\n", 1},
		{"attribute target flagged", "for obj.field in items:\n  pass\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := findingsFor(t, tt.source, domain.RuleLoopTarget)
			if len(findings) != tt.wantCount {
				t.Fatalf("expected %d findings, got %d: %v", tt.wantCount, len(findings), findings)
			}
		})
	}
}

func TestMutableDefaultRule(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantCount int
	}{
		{"list default", "def f(items=[]):\n  pass\n", 1},
		{"dict default", "def f(opts={}):\n  pass\n", 1},
		{"none default ok", "def f(items=None):\n  pass\n", 0},
		{"literal default ok", "def f(n=3):\n  pass\n", 0},
		{"typed list default", "def f(items: list = []):\n  pass\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := findingsFor(t, tt.source, domain.RuleMutableDefault)
			if len(findings) != tt.wantCount {
				t.Fatalf("expected %d findings, got %d: %v", tt.wantCount, len(findings), findings)
			}
		})
	}
}
