// File: doc.go
// Title: C-minus Abstract Syntax Tree Package Documentation
// Description: Node types, traversal, printing and export of C-minus
//              syntax trees.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial AST implementation

/*
Package ast defines the syntax tree produced by the C-minus parser.

Every node variant is its own type with named child slots. The slot order
returned by Children is the order used by the printer and the YAML export:

	If            Cond, Then, Else
	While         Cond, Body
	Return        Value
	Assign        Target, Value
	ParamList     Params...
	Param         Type, Name
	Function      Type, Name, Params, Body
	VarDecl       Type, Name (Identifier or ArrayDecl)
	Compound      Items...
	BinaryOp      Left, Right
	ArrayElement  Name, Index
	Call          Name, Args
	ArrayDecl     Name, Size
	ArgList       Args...

Absent slots are nil and are skipped. Trees are built bottom-up by the
parser and are not modified afterwards.
*/
package ast
