package parser

import "fmt"

// NodeType represents the type of AST node
type NodeType string

// Python AST node types
const (
	// Module structure
	NodeModule NodeType = "Module"

	// Definitions
	NodeFunctionDef NodeType = "FunctionDef"
	NodeLambda      NodeType = "Lambda"
	NodeClassDef    NodeType = "ClassDef"

	// Parameters
	NodeParameter        NodeType = "Parameter"
	NodeDefaultParameter NodeType = "DefaultParameter"

	// Statements
	NodeIf              NodeType = "If"
	NodeFor             NodeType = "For"
	NodeWhile           NodeType = "While"
	NodeTry             NodeType = "Try"
	NodeExceptClause    NodeType = "ExceptClause"
	NodeFinallyClause   NodeType = "FinallyClause"
	NodeElseClause      NodeType = "ElseClause"
	NodeWith            NodeType = "With"
	NodeReturn          NodeType = "Return"
	NodeRaise           NodeType = "Raise"
	NodeAssert          NodeType = "Assert"
	NodePass            NodeType = "Pass"
	NodeBreak           NodeType = "Break"
	NodeContinue        NodeType = "Continue"
	NodeGlobal          NodeType = "Global"
	NodeNonlocal        NodeType = "Nonlocal"
	NodeDelete          NodeType = "Delete"
	NodeImport          NodeType = "Import"
	NodeImportFrom      NodeType = "ImportFrom"
	NodeBlock           NodeType = "Block"
	NodeAssignment      NodeType = "Assignment"
	NodeAugAssignment   NodeType = "AugAssignment"
	NodeNamedExpression NodeType = "NamedExpression"

	// Expressions
	NodeCall        NodeType = "Call"
	NodeAttribute   NodeType = "Attribute"
	NodeSubscript   NodeType = "Subscript"
	NodeIdentifier  NodeType = "Identifier"
	NodeBinaryOp    NodeType = "BinaryOp"
	NodeBooleanOp   NodeType = "BooleanOp"
	NodeUnaryOp     NodeType = "UnaryOp"
	NodeComparison  NodeType = "Comparison"
	NodeConditional NodeType = "Conditional"
	NodeAwait       NodeType = "Await"
	NodeYield       NodeType = "Yield"

	// Literals and containers
	NodeStringLiteral  NodeType = "StringLiteral"
	NodeNumberLiteral  NodeType = "NumberLiteral"
	NodeBooleanLiteral NodeType = "BooleanLiteral"
	NodeNoneLiteral    NodeType = "NoneLiteral"
	NodeEllipsis       NodeType = "Ellipsis"
	NodeList           NodeType = "List"
	NodeTuple          NodeType = "Tuple"
	NodeDictionary     NodeType = "Dictionary"
	NodeSet            NodeType = "Set"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node represents an AST node
type Node struct {
	Type     NodeType
	Children []*Node
	Location Location
	Parent   *Node

	// Name holds function/class/parameter/identifier names
	Name string

	// Function-related fields
	Params []*Node // Function parameters
	Body   []*Node // Function/block/clause body
	Async  bool    // Async function

	// Control flow fields
	Test       *Node   // Condition for if/while, iterable for for
	Consequent *Node   // Then branch for if
	Alternate  *Node   // Else/elif branch for if
	OrElse     []*Node // else clause body for for/while/try

	// Try-except fields
	Handlers  []*Node // Except clauses
	Finalizer *Node   // Finally clause

	// Expression fields
	Left      *Node   // Assignment target, binary left operand
	Right     *Node   // Assignment value, binary right operand
	Operator  string  // Operator (+, -, and, not, ==, etc.)
	Argument  *Node   // Unary/return/raise/await argument
	Arguments []*Node // Call arguments
	Callee    *Node   // Function being called
	Object    *Node   // Object in attribute access
	Property  *Node   // Attribute name node

	// Raw literal text as written in the source
	Raw string
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType) *Node {
	return &Node{
		Type:     nodeType,
		Children: []*Node{},
		Params:   []*Node{},
		Body:     []*Node{},
	}
}

// AddChild adds a child node
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk traverses the AST depth-first and calls the visitor function for each node.
// If the visitor returns false, traversal of that branch is stopped.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}

	if !visitor(n) {
		return
	}

	for _, child := range n.Children {
		child.Walk(visitor)
	}
	for _, param := range n.Params {
		param.Walk(visitor)
	}
	for _, stmt := range n.Body {
		stmt.Walk(visitor)
	}
	for _, stmt := range n.OrElse {
		stmt.Walk(visitor)
	}
	for _, handler := range n.Handlers {
		handler.Walk(visitor)
	}
	for _, arg := range n.Arguments {
		arg.Walk(visitor)
	}

	// Walk individual nodes
	if n.Test != nil {
		n.Test.Walk(visitor)
	}
	if n.Consequent != nil {
		n.Consequent.Walk(visitor)
	}
	if n.Alternate != nil {
		n.Alternate.Walk(visitor)
	}
	if n.Finalizer != nil {
		n.Finalizer.Walk(visitor)
	}
	if n.Left != nil {
		n.Left.Walk(visitor)
	}
	if n.Right != nil {
		n.Right.Walk(visitor)
	}
	if n.Argument != nil {
		n.Argument.Walk(visitor)
	}
	if n.Callee != nil {
		n.Callee.Walk(visitor)
	}
	if n.Object != nil {
		n.Object.Walk(visitor)
	}
	if n.Property != nil {
		n.Property.Walk(visitor)
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}

// IsStatement returns true if the node is a statement
func (n *Node) IsStatement() bool {
	switch n.Type {
	case NodeIf, NodeFor, NodeWhile, NodeTry, NodeWith,
		NodeReturn, NodeRaise, NodeAssert, NodePass,
		NodeBreak, NodeContinue, NodeGlobal, NodeNonlocal, NodeDelete,
		NodeImport, NodeImportFrom, NodeAssignment, NodeAugAssignment,
		NodeBlock:
		return true
	}
	return false
}

// IsLiteral returns true if the node is a literal value
func (n *Node) IsLiteral() bool {
	switch n.Type {
	case NodeStringLiteral, NodeNumberLiteral, NodeBooleanLiteral,
		NodeNoneLiteral, NodeEllipsis:
		return true
	}
	return false
}

// IsFunction returns true if the node defines a function
func (n *Node) IsFunction() bool {
	return n.Type == NodeFunctionDef || n.Type == NodeLambda
}

// EnclosingFunction walks the parent chain to the nearest function definition,
// or nil when the node sits at module level.
func (n *Node) EnclosingFunction() *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == NodeFunctionDef || p.Type == NodeLambda {
			return p
		}
	}
	return nil
}
