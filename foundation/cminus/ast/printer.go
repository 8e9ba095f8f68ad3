// File: printer.go
// Title: C-minus Syntax Tree Printer
// Description: Visitor that renders a syntax tree as indented text, one
//              node per line, children two spaces deeper than their parent.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial printer implementation

package ast

import (
	"io"
	"strings"
)

// Printer creates an indented text representation of the AST
type Printer struct {
	buffer strings.Builder
	indent int
}

// NewPrinter creates a new printer
func NewPrinter() *Printer {
	return &Printer{}
}

// String returns the rendered tree
func (p *Printer) String() string {
	return p.buffer.String()
}

// Reset clears the internal buffer
func (p *Printer) Reset() {
	p.buffer.Reset()
	p.indent = 0
}

// Sprint renders the tree rooted at n
func Sprint(n Node) string {
	if n == nil {
		return ""
	}
	p := NewPrinter()
	n.Accept(p)
	return p.String()
}

// Fprint writes the tree rooted at n to w
func Fprint(w io.Writer, n Node) error {
	_, err := io.WriteString(w, Sprint(n))
	return err
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buffer.WriteString("  ")
	}
}

// node prints the label of n and then its children one level deeper
func (p *Printer) node(n Node) interface{} {
	p.writeIndent()
	p.buffer.WriteString(n.String())
	p.buffer.WriteByte('\n')

	p.indent++
	for _, c := range Children(n) {
		c.Accept(p)
	}
	p.indent--
	return nil
}

// VisitProgram prints the declarations at the current indent level
func (p *Printer) VisitProgram(n *Program) interface{} {
	for _, d := range n.Decls {
		if d != nil {
			d.Accept(p)
		}
	}
	return nil
}

func (p *Printer) VisitIf(n *If) interface{}                     { return p.node(n) }
func (p *Printer) VisitWhile(n *While) interface{}               { return p.node(n) }
func (p *Printer) VisitReturn(n *Return) interface{}             { return p.node(n) }
func (p *Printer) VisitAssign(n *Assign) interface{}             { return p.node(n) }
func (p *Printer) VisitParamList(n *ParamList) interface{}       { return p.node(n) }
func (p *Printer) VisitParam(n *Param) interface{}               { return p.node(n) }
func (p *Printer) VisitFunction(n *Function) interface{}         { return p.node(n) }
func (p *Printer) VisitVarDecl(n *VarDecl) interface{}           { return p.node(n) }
func (p *Printer) VisitCompound(n *Compound) interface{}         { return p.node(n) }
func (p *Printer) VisitBinaryOp(n *BinaryOp) interface{}         { return p.node(n) }
func (p *Printer) VisitConst(n *Const) interface{}               { return p.node(n) }
func (p *Printer) VisitIdentifier(n *Identifier) interface{}     { return p.node(n) }
func (p *Printer) VisitIntType(n *IntType) interface{}           { return p.node(n) }
func (p *Printer) VisitVoidType(n *VoidType) interface{}         { return p.node(n) }
func (p *Printer) VisitArrayElement(n *ArrayElement) interface{} { return p.node(n) }
func (p *Printer) VisitCall(n *Call) interface{}                 { return p.node(n) }
func (p *Printer) VisitArrayDecl(n *ArrayDecl) interface{}       { return p.node(n) }
func (p *Printer) VisitArgList(n *ArgList) interface{}           { return p.node(n) }
