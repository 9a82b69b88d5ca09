package llm

import (
	"fmt"
	"strings"

	"github.com/codelens-ai/pydebug/domain"
)

const promptTemplate = `You are an expert Python debugging assistant. Analyze this code, the static-analysis findings, and any error messages.
Provide:
1. Clear explanation of issues (in markdown)
2. Suggested fixes (as Python code blocks)
3. Any relevant tips

Code:
%s

Static analysis findings:
%s

Error message:
%s

Format your response with clear sections:
### Explanation
[your explanation here]

### Suggested Fix
` + "```python" + `
[fixed code here]
` + "```" + `

### Tips
[any additional tips]
`

// BuildPrompt renders the fixed prompt template with the raw source, the
// enumerated findings, and the user-supplied error message.
func BuildPrompt(source string, findings []domain.Finding, errorMessage string) string {
	var sb strings.Builder
	for i, f := range findings {
		fmt.Fprintf(&sb, "%d. [%s] line %d: %s\n", i+1, f.RuleID, f.Location.Line, f.Message)
	}
	enumerated := sb.String()
	if enumerated == "" {
		enumerated = "(none)\n"
	}

	errMsg := errorMessage
	if errMsg == "" {
		errMsg = "(none)"
	}

	return fmt.Sprintf(promptTemplate, source, enumerated, errMsg)
}

// ParseSections splits a model response into its explanation, suggested
// fix, and tips sections. Missing sections stay empty; a response with no
// section markers at all becomes the explanation verbatim.
func ParseSections(response string) (explanation, suggestedFix, tips string) {
	if !strings.Contains(response, "### ") {
		return strings.TrimSpace(response), "", ""
	}

	for _, section := range strings.Split(response, "### ") {
		switch {
		case strings.HasPrefix(section, "Explanation"):
			explanation = strings.TrimSpace(strings.TrimPrefix(section, "Explanation"))
		case strings.HasPrefix(section, "Suggested Fix"):
			suggestedFix = extractCodeBlock(section)
		case strings.HasPrefix(section, "Tips"):
			tips = strings.TrimSpace(strings.TrimPrefix(section, "Tips"))
		}
	}
	return explanation, suggestedFix, tips
}

// extractCodeBlock pulls the first fenced python block out of a section,
// falling back to the raw section text without its heading
func extractCodeBlock(section string) string {
	start := strings.Index(section, "```python")
	if start == -1 {
		return strings.TrimSpace(strings.TrimPrefix(section, "Suggested Fix"))
	}
	rest := section[start+len("```python"):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:end])
}
