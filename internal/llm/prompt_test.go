package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codelens-ai/pydebug/domain"
)

func TestBuildPrompt(t *testing.T) {
	findings := []domain.Finding{
		{RuleID: domain.RuleDebugPrint, Location: domain.SourceLocation{Line: 2}, Message: "possible leftover debug print statement"},
		{RuleID: domain.RuleUnusedVariable, Location: domain.SourceLocation{Line: 3}, Message: "variable 'x' is assigned but never used"},
	}

	prompt := BuildPrompt("def f():\n  print('hi')\n  x = 1\n", findings, "NameError: name 'a' is not defined")

	assert.Contains(t, prompt, "def f():")
	assert.Contains(t, prompt, "1. [DEBUG_PRINT] line 2: possible leftover debug print statement")
	assert.Contains(t, prompt, "2. [UNUSED_VARIABLE] line 3:")
	assert.Contains(t, prompt, "NameError: name 'a' is not defined")
	assert.Contains(t, prompt, "### Explanation")
	assert.Contains(t, prompt, "### Suggested Fix")
	assert.Contains(t, prompt, "### Tips")
}

func TestBuildPromptEmptyInputs(t *testing.T) {
	prompt := BuildPrompt("x = 1\n", nil, "")

	assert.Contains(t, prompt, "(none)")
	assert.True(t, strings.Count(prompt, "(none)") >= 2, "both findings and error message placeholders")
}

func TestParseSections(t *testing.T) {
	response := `### Explanation
The function is missing a colon.

### Suggested Fix
` + "```python" + `
def foo():
    print('Hello')
` + "```" + `

### Tips
Run a linter before committing.
`

	explanation, fix, tips := ParseSections(response)

	assert.Equal(t, "The function is missing a colon.", explanation)
	assert.Equal(t, "def foo():\n    print('Hello')", fix)
	assert.Equal(t, "Run a linter before committing.", tips)
}

func TestParseSectionsMissingSections(t *testing.T) {
	explanation, fix, tips := ParseSections("### Explanation\nOnly an explanation here.\n")

	assert.Equal(t, "Only an explanation here.", explanation)
	assert.Empty(t, fix)
	assert.Empty(t, tips)
}

func TestParseSectionsNoMarkers(t *testing.T) {
	explanation, fix, tips := ParseSections("The code looks fine to me.\n")

	assert.Equal(t, "The code looks fine to me.", explanation)
	assert.Empty(t, fix)
	assert.Empty(t, tips)
}

func TestParseSectionsFixWithoutFence(t *testing.T) {
	_, fix, _ := ParseSections("### Suggested Fix\nJust rename the variable.\n")

	assert.Equal(t, "Just rename the variable.", fix)
}
