package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParseError reports syntactically invalid source with a 1-based position
type ParseError struct {
	File    string
	Line    int
	Column  int
	Message string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.File != "<input>" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Parser wraps the tree-sitter parser for Python
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

// NewParser creates a new Python parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := python.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
	}
}

// ParseFile parses Python source into the internal AST. Invalid syntax
// yields a *ParseError; the same input always produces the same tree or
// the same error.
func (p *Parser) ParseFile(filename string, source []byte) (*Node, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s: %v", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}

	if rootNode.HasError() {
		return nil, buildParseError(filename, rootNode, source)
	}

	builder := NewASTBuilder(filename, source)
	return builder.Build(rootNode), nil
}

// Parse parses Python source code
func (p *Parser) Parse(source []byte) (*Node, error) {
	return p.ParseFile("<input>", source)
}

// ParseString parses Python source code from a string
func (p *Parser) ParseString(source string) (*Node, error) {
	return p.Parse([]byte(source))
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// buildParseError locates the first ERROR or missing node and converts it
// into a ParseError with a line clamped to the source's line range.
func buildParseError(filename string, root *sitter.Node, source []byte) *ParseError {
	errNode := findFirstError(root)
	if errNode == nil {
		errNode = root
	}

	line := int(errNode.StartPoint().Row) + 1
	col := int(errNode.StartPoint().Column) + 1

	lineCount := strings.Count(string(source), "\n") + 1
	if line > lineCount {
		line = lineCount
	}
	if line < 1 {
		line = 1
	}

	message := "invalid syntax"
	if errNode.IsMissing() {
		message = fmt.Sprintf("missing %s", errNode.Type())
	}

	return &ParseError{
		File:    filename,
		Line:    line,
		Column:  col,
		Message: message,
	}
}

// findFirstError returns the first ERROR or missing node in document order
func findFirstError(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := findFirstError(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
