// File: visitor.go
// Title: C-minus AST Visitor and Traversal
// Description: Visitor interface over all node variants, the ordered child
//              slots of each node and a depth-first Inspect walker.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial visitor implementation

package ast

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitProgram(n *Program) interface{}

	// Statements
	VisitIf(n *If) interface{}
	VisitWhile(n *While) interface{}
	VisitReturn(n *Return) interface{}
	VisitAssign(n *Assign) interface{}
	VisitParamList(n *ParamList) interface{}
	VisitParam(n *Param) interface{}
	VisitFunction(n *Function) interface{}
	VisitVarDecl(n *VarDecl) interface{}
	VisitCompound(n *Compound) interface{}

	// Expressions
	VisitBinaryOp(n *BinaryOp) interface{}
	VisitConst(n *Const) interface{}
	VisitIdentifier(n *Identifier) interface{}
	VisitIntType(n *IntType) interface{}
	VisitVoidType(n *VoidType) interface{}
	VisitArrayElement(n *ArrayElement) interface{}
	VisitCall(n *Call) interface{}
	VisitArrayDecl(n *ArrayDecl) interface{}
	VisitArgList(n *ArgList) interface{}
}

// Children returns the present child slots of n in slot order. Sequences
// (declarations, items, parameters, arguments) are expanded in place.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}

	switch n := n.(type) {
	case *Program:
		for _, d := range n.Decls {
			add(d)
		}
	case *If:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *While:
		add(n.Cond)
		add(n.Body)
	case *Return:
		add(n.Value)
	case *Assign:
		add(n.Target)
		add(n.Value)
	case *ParamList:
		for _, p := range n.Params {
			if p != nil {
				out = append(out, p)
			}
		}
	case *Param:
		add(n.Type)
		if n.Name != nil {
			out = append(out, n.Name)
		}
	case *Function:
		add(n.Type)
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Params != nil {
			out = append(out, n.Params)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *VarDecl:
		add(n.Type)
		add(n.Name)
	case *Compound:
		for _, item := range n.Items {
			add(item)
		}
	case *BinaryOp:
		add(n.Left)
		add(n.Right)
	case *ArrayElement:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		add(n.Index)
	case *Call:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Args != nil {
			out = append(out, n.Args)
		}
	case *ArrayDecl:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		if n.Size != nil {
			out = append(out, n.Size)
		}
	case *ArgList:
		for _, a := range n.Args {
			add(a)
		}
	}
	return out
}

// Inspect traverses the tree depth-first in slot order, calling fn for
// each node. When fn returns false the children of that node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n
func Count(n Node) int {
	total := 0
	Inspect(n, func(Node) bool {
		total++
		return true
	})
	return total
}
