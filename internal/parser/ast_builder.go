package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds our internal AST from the tree-sitter CST
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build builds the AST from a tree-sitter node
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	return b.buildNode(tsNode)
}

// buildNode converts a tree-sitter node to our internal AST node
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "module":
		return b.buildModule(tsNode)
	case "function_definition":
		return b.buildFunctionDef(tsNode)
	case "lambda":
		return b.buildLambda(tsNode)
	case "class_definition":
		return b.buildClassDef(tsNode)
	case "decorated_definition":
		// Unwrap to the inner definition; decorators are not analyzed
		if defNode := b.getChildByFieldName(tsNode, "definition"); defNode != nil {
			return b.buildNode(defNode)
		}
		return b.buildGenericNode(tsNode)
	case "if_statement":
		return b.buildIfStatement(tsNode)
	case "elif_clause":
		return b.buildElifClause(tsNode)
	case "else_clause":
		return b.buildElseClause(tsNode)
	case "for_statement":
		return b.buildForStatement(tsNode)
	case "while_statement":
		return b.buildWhileStatement(tsNode)
	case "try_statement":
		return b.buildTryStatement(tsNode)
	case "except_clause":
		return b.buildExceptClause(tsNode)
	case "finally_clause":
		return b.buildFinallyClause(tsNode)
	case "with_statement":
		return b.buildWithStatement(tsNode)
	case "return_statement":
		return b.buildArgumentStatement(tsNode, NodeReturn, "return")
	case "raise_statement":
		return b.buildArgumentStatement(tsNode, NodeRaise, "raise")
	case "assert_statement":
		return b.buildArgumentStatement(tsNode, NodeAssert, "assert")
	case "delete_statement":
		return b.buildArgumentStatement(tsNode, NodeDelete, "del")
	case "pass_statement":
		return b.buildSimpleStatement(tsNode, NodePass)
	case "break_statement":
		return b.buildSimpleStatement(tsNode, NodeBreak)
	case "continue_statement":
		return b.buildSimpleStatement(tsNode, NodeContinue)
	case "global_statement":
		return b.buildNameListStatement(tsNode, NodeGlobal)
	case "nonlocal_statement":
		return b.buildNameListStatement(tsNode, NodeNonlocal)
	case "import_statement":
		return b.buildGenericTyped(tsNode, NodeImport)
	case "import_from_statement":
		return b.buildGenericTyped(tsNode, NodeImportFrom)
	case "expression_statement":
		return b.buildExpressionStatement(tsNode)
	case "assignment":
		return b.buildAssignment(tsNode, NodeAssignment)
	case "augmented_assignment":
		return b.buildAssignment(tsNode, NodeAugAssignment)
	case "named_expression":
		return b.buildNamedExpression(tsNode)
	case "call":
		return b.buildCall(tsNode)
	case "attribute":
		return b.buildAttribute(tsNode)
	case "subscript":
		return b.buildSubscript(tsNode)
	case "binary_operator":
		return b.buildBinaryOp(tsNode, NodeBinaryOp)
	case "boolean_operator":
		return b.buildBinaryOp(tsNode, NodeBooleanOp)
	case "comparison_operator":
		return b.buildComparison(tsNode)
	case "not_operator", "unary_operator":
		return b.buildUnaryOp(tsNode)
	case "conditional_expression":
		return b.buildConditional(tsNode)
	case "await":
		return b.buildAwait(tsNode)
	case "yield":
		return b.buildGenericTyped(tsNode, NodeYield)
	case "identifier":
		return b.buildIdentifier(tsNode)
	case "string", "concatenated_string", "integer", "float", "true", "false", "none", "ellipsis":
		return b.buildLiteral(tsNode)
	case "list", "list_comprehension":
		return b.buildContainer(tsNode, NodeList)
	case "tuple", "pattern_list", "tuple_pattern", "expression_list":
		return b.buildContainer(tsNode, NodeTuple)
	case "dictionary", "dictionary_comprehension":
		return b.buildContainer(tsNode, NodeDictionary)
	case "set", "set_comprehension":
		return b.buildContainer(tsNode, NodeSet)
	case "block":
		return b.buildBlock(tsNode)
	case "parenthesized_expression":
		// Unwrap to the inner expression
		for i := 0; i < int(tsNode.ChildCount()); i++ {
			child := tsNode.Child(i)
			if child != nil && !b.isTrivia(child) && child.Type() != "(" && child.Type() != ")" {
				return b.buildNode(child)
			}
		}
		return b.buildGenericNode(tsNode)
	default:
		return b.buildGenericNode(tsNode)
	}
}

// buildModule builds the root module node
func (b *ASTBuilder) buildModule(tsNode *sitter.Node) *Node {
	node := NewNode(NodeModule)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) {
			childNode := b.buildNode(child)
			if childNode != nil {
				childNode.Parent = node
				node.Body = append(node.Body, childNode)
			}
		}
	}

	return node
}

// buildFunctionDef builds a function definition node
func (b *ASTBuilder) buildFunctionDef(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFunctionDef)
	node.Location = b.getLocation(tsNode)

	// async def has an "async" keyword child before "def"
	if tsNode.ChildCount() > 0 {
		first := tsNode.Child(0)
		if first != nil && first.Type() == "async" {
			node.Async = true
		}
	}

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}

	if paramsNode := b.getChildByFieldName(tsNode, "parameters"); paramsNode != nil {
		node.Params = b.buildParameters(paramsNode)
		for _, p := range node.Params {
			p.Parent = node
		}
	}

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = b.adoptBlockBody(node, bodyNode)
	}

	return node
}

// buildLambda builds a lambda node
func (b *ASTBuilder) buildLambda(tsNode *sitter.Node) *Node {
	node := NewNode(NodeLambda)
	node.Location = b.getLocation(tsNode)

	if paramsNode := b.getChildByFieldName(tsNode, "parameters"); paramsNode != nil {
		node.Params = b.buildParameters(paramsNode)
		for _, p := range node.Params {
			p.Parent = node
		}
	}

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		expr := b.buildNode(bodyNode)
		if expr != nil {
			expr.Parent = node
			node.Body = []*Node{expr}
		}
	}

	return node
}

// buildClassDef builds a class definition node
func (b *ASTBuilder) buildClassDef(tsNode *sitter.Node) *Node {
	node := NewNode(NodeClassDef)
	node.Location = b.getLocation(tsNode)

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = b.adoptBlockBody(node, bodyNode)
	}

	return node
}

// buildIfStatement builds an if statement node; elif chains become
// nested If nodes through the Alternate field
func (b *ASTBuilder) buildIfStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIf)
	node.Location = b.getLocation(tsNode)

	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.adopt(node, b.buildNode(condNode))
	}
	if consNode := b.getChildByFieldName(tsNode, "consequence"); consNode != nil {
		node.Consequent = b.adopt(node, b.buildNode(consNode))
	}

	// Alternatives are repeated elif_clause/else_clause children
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "elif_clause" || child.Type() == "else_clause" {
			node.Alternate = b.adopt(node, b.buildNode(child))
		}
	}

	return node
}

// buildElifClause builds an elif clause as a nested If node
func (b *ASTBuilder) buildElifClause(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIf)
	node.Location = b.getLocation(tsNode)

	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.adopt(node, b.buildNode(condNode))
	}
	if consNode := b.getChildByFieldName(tsNode, "consequence"); consNode != nil {
		node.Consequent = b.adopt(node, b.buildNode(consNode))
	}

	return node
}

// buildElseClause builds an else clause node
func (b *ASTBuilder) buildElseClause(tsNode *sitter.Node) *Node {
	node := NewNode(NodeElseClause)
	node.Location = b.getLocation(tsNode)

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = b.adoptBlockBody(node, bodyNode)
	}

	return node
}

// buildForStatement builds a for statement node
func (b *ASTBuilder) buildForStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFor)
	node.Location = b.getLocation(tsNode)

	if tsNode.ChildCount() > 0 {
		first := tsNode.Child(0)
		if first != nil && first.Type() == "async" {
			node.Async = true
		}
	}

	// Loop target
	if leftNode := b.getChildByFieldName(tsNode, "left"); leftNode != nil {
		node.Left = b.adopt(node, b.buildNode(leftNode))
	}
	// Iterable
	if rightNode := b.getChildByFieldName(tsNode, "right"); rightNode != nil {
		node.Test = b.adopt(node, b.buildNode(rightNode))
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = b.adoptBlockBody(node, bodyNode)
	}
	if altNode := b.getChildByFieldName(tsNode, "alternative"); altNode != nil {
		elseClause := b.buildNode(altNode)
		if elseClause != nil {
			elseClause.Parent = node
			node.OrElse = elseClause.Body
		}
	}

	return node
}

// buildWhileStatement builds a while statement node
func (b *ASTBuilder) buildWhileStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeWhile)
	node.Location = b.getLocation(tsNode)

	if condNode := b.getChildByFieldName(tsNode, "condition"); condNode != nil {
		node.Test = b.adopt(node, b.buildNode(condNode))
	}
	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = b.adoptBlockBody(node, bodyNode)
	}
	if altNode := b.getChildByFieldName(tsNode, "alternative"); altNode != nil {
		elseClause := b.buildNode(altNode)
		if elseClause != nil {
			elseClause.Parent = node
			node.OrElse = elseClause.Body
		}
	}

	return node
}

// buildTryStatement builds a try statement node
func (b *ASTBuilder) buildTryStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeTry)
	node.Location = b.getLocation(tsNode)

	if bodyNode := b.getChildByFieldName(tsNode, "body"); bodyNode != nil {
		node.Body = b.adoptBlockBody(node, bodyNode)
	}

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "except_clause", "except_group_clause":
			handler := b.buildNode(child)
			if handler != nil {
				handler.Parent = node
				node.Handlers = append(node.Handlers, handler)
			}
		case "finally_clause":
			node.Finalizer = b.adopt(node, b.buildNode(child))
		case "else_clause":
			elseClause := b.buildNode(child)
			if elseClause != nil {
				elseClause.Parent = node
				node.OrElse = elseClause.Body
			}
		}
	}

	return node
}

// buildExceptClause builds an except clause node. Test stays nil for a
// bare `except:`; `except E as name` keeps E as Test and name as Name.
func (b *ASTBuilder) buildExceptClause(tsNode *sitter.Node) *Node {
	node := NewNode(NodeExceptClause)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "except", "except*", ":", "*":
			continue
		case "block":
			node.Body = b.adoptBlockBody(node, child)
		case "as_pattern":
			// except ValueError as e
			for j := 0; j < int(child.ChildCount()); j++ {
				grandchild := child.Child(j)
				if grandchild == nil {
					continue
				}
				switch grandchild.Type() {
				case "as":
					continue
				case "as_pattern_target":
					node.Name = grandchild.Content(b.source)
				default:
					if node.Test == nil {
						node.Test = b.adopt(node, b.buildNode(grandchild))
					}
				}
			}
		default:
			if node.Test == nil {
				node.Test = b.adopt(node, b.buildNode(child))
			}
		}
	}

	return node
}

// buildFinallyClause builds a finally clause node
func (b *ASTBuilder) buildFinallyClause(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFinallyClause)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && child.Type() == "block" {
			node.Body = b.adoptBlockBody(node, child)
		}
	}

	return node
}

// buildWithStatement builds a with statement node
func (b *ASTBuilder) buildWithStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeWith)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "with", "async", ":":
			continue
		case "block":
			node.Body = b.adoptBlockBody(node, child)
		case "with_clause":
			withItems := b.buildGenericNode(child)
			if withItems != nil {
				withItems.Parent = node
				node.Test = withItems
			}
		}
	}

	return node
}

// buildArgumentStatement builds statements of the form KEYWORD [expression]
func (b *ASTBuilder) buildArgumentStatement(tsNode *sitter.Node, nodeType NodeType, keyword string) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != keyword && child.Type() != "," {
			node.Argument = b.adopt(node, b.buildNode(child))
			break
		}
	}

	return node
}

// buildSimpleStatement builds keyword-only statements (pass, break, continue)
func (b *ASTBuilder) buildSimpleStatement(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	return node
}

// buildNameListStatement builds global/nonlocal statements; declared names
// become Identifier children
func (b *ASTBuilder) buildNameListStatement(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && child.Type() == "identifier" {
			node.AddChild(b.buildIdentifier(child))
		}
	}

	return node
}

// buildExpressionStatement unwraps to the contained expression
func (b *ASTBuilder) buildExpressionStatement(tsNode *sitter.Node) *Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != ";" {
			return b.buildNode(child)
		}
	}
	return b.buildGenericNode(tsNode)
}

// buildAssignment builds assignment and augmented assignment nodes
func (b *ASTBuilder) buildAssignment(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)

	if leftNode := b.getChildByFieldName(tsNode, "left"); leftNode != nil {
		node.Left = b.adopt(node, b.buildNode(leftNode))
	}
	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if rightNode := b.getChildByFieldName(tsNode, "right"); rightNode != nil {
		node.Right = b.adopt(node, b.buildNode(rightNode))
	}

	return node
}

// buildNamedExpression builds a walrus (:=) node
func (b *ASTBuilder) buildNamedExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeNamedExpression)
	node.Location = b.getLocation(tsNode)

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Left = b.adopt(node, b.buildNode(nameNode))
	}
	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil {
		node.Right = b.adopt(node, b.buildNode(valueNode))
	}

	return node
}

// buildCall builds a call expression node
func (b *ASTBuilder) buildCall(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCall)
	node.Location = b.getLocation(tsNode)

	if funcNode := b.getChildByFieldName(tsNode, "function"); funcNode != nil {
		node.Callee = b.adopt(node, b.buildNode(funcNode))
	}

	if argsNode := b.getChildByFieldName(tsNode, "arguments"); argsNode != nil {
		for i := 0; i < int(argsNode.ChildCount()); i++ {
			child := argsNode.Child(i)
			if child != nil && !b.isTrivia(child) &&
				child.Type() != "(" && child.Type() != ")" && child.Type() != "," {
				argNode := b.buildNode(child)
				if argNode != nil {
					argNode.Parent = node
					node.Arguments = append(node.Arguments, argNode)
				}
			}
		}
	}

	return node
}

// buildAttribute builds an attribute access node (obj.attr)
func (b *ASTBuilder) buildAttribute(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAttribute)
	node.Location = b.getLocation(tsNode)

	if objNode := b.getChildByFieldName(tsNode, "object"); objNode != nil {
		node.Object = b.adopt(node, b.buildNode(objNode))
	}
	if attrNode := b.getChildByFieldName(tsNode, "attribute"); attrNode != nil {
		node.Property = b.adopt(node, b.buildIdentifier(attrNode))
		node.Name = attrNode.Content(b.source)
	}

	return node
}

// buildSubscript builds a subscript node (obj[key])
func (b *ASTBuilder) buildSubscript(tsNode *sitter.Node) *Node {
	node := NewNode(NodeSubscript)
	node.Location = b.getLocation(tsNode)

	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil {
		node.Object = b.adopt(node, b.buildNode(valueNode))
	}
	if subNode := b.getChildByFieldName(tsNode, "subscript"); subNode != nil {
		node.Property = b.adopt(node, b.buildNode(subNode))
	}

	return node
}

// buildBinaryOp builds binary and boolean operator nodes
func (b *ASTBuilder) buildBinaryOp(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)

	if leftNode := b.getChildByFieldName(tsNode, "left"); leftNode != nil {
		node.Left = b.adopt(node, b.buildNode(leftNode))
	}
	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	}
	if rightNode := b.getChildByFieldName(tsNode, "right"); rightNode != nil {
		node.Right = b.adopt(node, b.buildNode(rightNode))
	}

	return node
}

// buildComparison builds a comparison node; chained comparisons keep all
// operands as children and the first operator as Operator
func (b *ASTBuilder) buildComparison(tsNode *sitter.Node) *Node {
	node := NewNode(NodeComparison)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if tsNode.FieldNameForChild(i) == "operators" {
			if node.Operator == "" {
				node.Operator = child.Content(b.source)
			}
			continue
		}
		node.AddChild(b.buildNode(child))
	}

	return node
}

// buildUnaryOp builds unary and not operator nodes
func (b *ASTBuilder) buildUnaryOp(tsNode *sitter.Node) *Node {
	node := NewNode(NodeUnaryOp)
	node.Location = b.getLocation(tsNode)

	if opNode := b.getChildByFieldName(tsNode, "operator"); opNode != nil {
		node.Operator = opNode.Content(b.source)
	} else if tsNode.Type() == "not_operator" {
		node.Operator = "not"
	}
	if argNode := b.getChildByFieldName(tsNode, "argument"); argNode != nil {
		node.Argument = b.adopt(node, b.buildNode(argNode))
	}

	return node
}

// buildConditional builds a conditional expression (x if cond else y)
func (b *ASTBuilder) buildConditional(tsNode *sitter.Node) *Node {
	node := NewNode(NodeConditional)
	node.Location = b.getLocation(tsNode)

	// Children layout: consequence "if" condition "else" alternative
	var exprs []*Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == "if" || child.Type() == "else" {
			continue
		}
		exprs = append(exprs, b.buildNode(child))
	}
	if len(exprs) > 0 {
		node.Consequent = b.adopt(node, exprs[0])
	}
	if len(exprs) > 1 {
		node.Test = b.adopt(node, exprs[1])
	}
	if len(exprs) > 2 {
		node.Alternate = b.adopt(node, exprs[2])
	}

	return node
}

// buildAwait builds an await expression node
func (b *ASTBuilder) buildAwait(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAwait)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != "await" {
			node.Argument = b.adopt(node, b.buildNode(child))
			break
		}
	}

	return node
}

// buildIdentifier builds an identifier node
func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIdentifier)
	node.Location = b.getLocation(tsNode)
	node.Name = tsNode.Content(b.source)
	return node
}

// buildLiteral builds a literal node
func (b *ASTBuilder) buildLiteral(tsNode *sitter.Node) *Node {
	node := NewNode(NodeStringLiteral)
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)

	switch tsNode.Type() {
	case "string", "concatenated_string":
		node.Type = NodeStringLiteral
	case "integer", "float":
		node.Type = NodeNumberLiteral
	case "true", "false":
		node.Type = NodeBooleanLiteral
	case "none":
		node.Type = NodeNoneLiteral
	case "ellipsis":
		node.Type = NodeEllipsis
	}

	return node
}

// buildContainer builds list/tuple/dict/set nodes with element children
func (b *ASTBuilder) buildContainer(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "[", "]", "(", ")", "{", "}", ",", ":":
			continue
		}
		node.AddChild(b.buildNode(child))
	}

	return node
}

// buildBlock builds a block node
func (b *ASTBuilder) buildBlock(tsNode *sitter.Node) *Node {
	node := NewNode(NodeBlock)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) {
			childNode := b.buildNode(child)
			if childNode != nil {
				childNode.Parent = node
				node.Body = append(node.Body, childNode)
			}
		}
	}

	return node
}

// buildGenericTyped builds a node of the given type with generic children
func (b *ASTBuilder) buildGenericTyped(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.IsNamed() {
			node.AddChild(b.buildNode(child))
		}
	}

	return node
}

// buildGenericNode builds a generic node for unmapped types
func (b *ASTBuilder) buildGenericNode(tsNode *sitter.Node) *Node {
	node := NewNode(NodeType(tsNode.Type()))
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.IsNamed() {
			node.AddChild(b.buildNode(child))
		}
	}

	return node
}

// buildParameters builds the parameter list from a parameters node
func (b *ASTBuilder) buildParameters(tsNode *sitter.Node) []*Node {
	var params []*Node

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "(", ")", ",", ":":
			continue
		case "identifier":
			param := NewNode(NodeParameter)
			param.Location = b.getLocation(child)
			param.Name = child.Content(b.source)
			params = append(params, param)
		case "typed_parameter":
			param := NewNode(NodeParameter)
			param.Location = b.getLocation(child)
			if child.ChildCount() > 0 && child.Child(0) != nil {
				param.Name = child.Child(0).Content(b.source)
			}
			params = append(params, param)
		case "default_parameter", "typed_default_parameter":
			param := NewNode(NodeDefaultParameter)
			param.Location = b.getLocation(child)
			if nameNode := b.getChildByFieldName(child, "name"); nameNode != nil {
				param.Name = nameNode.Content(b.source)
			}
			if valueNode := b.getChildByFieldName(child, "value"); valueNode != nil {
				param.Right = b.adopt(param, b.buildNode(valueNode))
			}
			params = append(params, param)
		case "list_splat_pattern", "dictionary_splat_pattern":
			// *args / **kwargs
			param := NewNode(NodeParameter)
			param.Location = b.getLocation(child)
			for j := 0; j < int(child.ChildCount()); j++ {
				grandchild := child.Child(j)
				if grandchild != nil && grandchild.Type() == "identifier" {
					param.Name = grandchild.Content(b.source)
				}
			}
			params = append(params, param)
		default:
			param := b.buildNode(child)
			if param != nil {
				params = append(params, param)
			}
		}
	}

	return params
}

// Helper methods

// adopt sets the parent pointer on a freshly built child
func (b *ASTBuilder) adopt(parent, child *Node) *Node {
	if child != nil {
		child.Parent = parent
	}
	return child
}

// adoptBlockBody builds a block and reparents its statements to owner
func (b *ASTBuilder) adoptBlockBody(owner *Node, blockNode *sitter.Node) []*Node {
	blockAST := b.buildNode(blockNode)
	if blockAST == nil {
		return nil
	}
	for _, stmt := range blockAST.Body {
		stmt.Parent = owner
	}
	return blockAST.Body
}

// getLocation extracts location information from a tree-sitter node
func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}

// getChildByFieldName gets a child node by field name
func (b *ASTBuilder) getChildByFieldName(tsNode *sitter.Node, fieldName string) *sitter.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && tsNode.FieldNameForChild(i) == fieldName {
			return child
		}
	}
	return nil
}

// isTrivia checks if a node is trivia (comments, empty nodes)
func (b *ASTBuilder) isTrivia(tsNode *sitter.Node) bool {
	nodeType := tsNode.Type()
	return nodeType == "comment" || nodeType == ""
}
