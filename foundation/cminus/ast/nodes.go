// File: nodes.go
// Title: C-minus AST Node Definitions
// Description: Defines the closed set of syntax tree node types produced by
//              the parser. Statement and expression variants each carry
//              named child slots, their source position and, where needed,
//              one attribute (operator, constant value or name).
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"

	"github.com/msto63/cminus/foundation/cminus/token"
)

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// NodeKind separates statements from expressions
type NodeKind int

const (
	Statement NodeKind = iota
	Expression
	Root
)

// String returns the kind name
func (k NodeKind) String() string {
	switch k {
	case Statement:
		return "statement"
	case Expression:
		return "expression"
	case Root:
		return "root"
	default:
		return "unknown"
	}
}

// SubKind identifies the concrete node variant
type SubKind int

const (
	KindProgram SubKind = iota

	// Statements
	KindIf
	KindWhile
	KindReturn
	KindAssign
	KindParamList
	KindParam
	KindFunction
	KindVarDecl
	KindCompound

	// Expressions
	KindBinaryOp
	KindConst
	KindIdentifier
	KindIntType
	KindVoidType
	KindArrayElement
	KindCall
	KindArrayDecl
	KindArgList
)

var subKindNames = [...]string{
	KindProgram:      "Program",
	KindIf:           "If",
	KindWhile:        "While",
	KindReturn:       "Return",
	KindAssign:       "Assign",
	KindParamList:    "ParamList",
	KindParam:        "Param",
	KindFunction:     "Function",
	KindVarDecl:      "VarDecl",
	KindCompound:     "Compound",
	KindBinaryOp:     "BinaryOp",
	KindConst:        "Const",
	KindIdentifier:   "Identifier",
	KindIntType:      "IntType",
	KindVoidType:     "VoidType",
	KindArrayElement: "ArrayElement",
	KindCall:         "Call",
	KindArrayDecl:    "ArrayDecl",
	KindArgList:      "ArgList",
}

// String returns the variant name
func (k SubKind) String() string {
	if k >= 0 && int(k) < len(subKindNames) {
		return subKindNames[k]
	}
	return fmt.Sprintf("SubKind(%d)", int(k))
}

// Node represents the base interface for all AST nodes
type Node interface {
	// Pos returns the source position of the node
	Pos() Position

	// NodeKind reports whether the node is a statement or an expression
	NodeKind() NodeKind

	// SubKind returns the concrete variant
	SubKind() SubKind

	// String returns the one-line label used by the tree printer
	String() string

	// Accept implements the visitor pattern
	Accept(v Visitor) interface{}
}

// Stmt is implemented by statement nodes
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes
type Expr interface {
	Node
	exprNode()
}

// TypeSpec is implemented by IntType and VoidType
type TypeSpec interface {
	Expr
	typeSpec()
}

type stmtBase struct{ pos Position }

func (b stmtBase) Pos() Position      { return b.pos }
func (b stmtBase) NodeKind() NodeKind { return Statement }
func (stmtBase) stmtNode()            {}

type exprBase struct{ pos Position }

func (b exprBase) Pos() Position      { return b.pos }
func (b exprBase) NodeKind() NodeKind { return Expression }
func (exprBase) exprNode()            {}

// Program is the root of a syntax tree: the top-level declarations in
// source order. Each declaration is a *Function or a *VarDecl.
type Program struct {
	Decls []Stmt
}

// NewProgram creates a program from its declarations
func NewProgram(decls []Stmt) *Program {
	return &Program{Decls: decls}
}

func (p *Program) Pos() Position {
	if len(p.Decls) > 0 {
		return p.Decls[0].Pos()
	}
	return Position{Line: 1, Column: 1}
}
func (p *Program) NodeKind() NodeKind          { return Root }
func (p *Program) SubKind() SubKind            { return KindProgram }
func (p *Program) String() string              { return "Program" }
func (p *Program) Accept(v Visitor) interface{} { return v.VisitProgram(p) }

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// If is "if ( Cond ) Then [ else Else ]"; Else is nil when absent
type If struct {
	stmtBase
	Cond Expr
	Then Node
	Else Node
}

// NewIf creates an if statement
func NewIf(pos Position, cond Expr, then, els Node) *If {
	return &If{stmtBase: stmtBase{pos}, Cond: cond, Then: then, Else: els}
}

func (n *If) SubKind() SubKind            { return KindIf }
func (n *If) String() string              { return "If" }
func (n *If) Accept(v Visitor) interface{} { return v.VisitIf(n) }

// While is "while ( Cond ) Body"
type While struct {
	stmtBase
	Cond Expr
	Body Node
}

// NewWhile creates a while statement
func NewWhile(pos Position, cond Expr, body Node) *While {
	return &While{stmtBase: stmtBase{pos}, Cond: cond, Body: body}
}

func (n *While) SubKind() SubKind            { return KindWhile }
func (n *While) String() string              { return "While" }
func (n *While) Accept(v Visitor) interface{} { return v.VisitWhile(n) }

// Return is "return [ Value ] ;"; Value is nil for a bare return
type Return struct {
	stmtBase
	Value Expr
}

// NewReturn creates a return statement
func NewReturn(pos Position, value Expr) *Return {
	return &Return{stmtBase: stmtBase{pos}, Value: value}
}

func (n *Return) SubKind() SubKind            { return KindReturn }
func (n *Return) String() string              { return "Return" }
func (n *Return) Accept(v Visitor) interface{} { return v.VisitReturn(n) }

// Assign is "Target = Value". Target is an *Identifier or *ArrayElement.
// Assignment is also an expression, so Assign satisfies both Stmt and Expr.
type Assign struct {
	stmtBase
	Target Expr
	Value  Expr
}

// NewAssign creates an assignment
func NewAssign(pos Position, target, value Expr) *Assign {
	return &Assign{stmtBase: stmtBase{pos}, Target: target, Value: value}
}

func (n *Assign) SubKind() SubKind            { return KindAssign }
func (n *Assign) String() string              { return "Assign" }
func (n *Assign) Accept(v Visitor) interface{} { return v.VisitAssign(n) }
func (*Assign) exprNode()                     {}

// ParamList holds the parameters of a function in order
type ParamList struct {
	stmtBase
	Params []*Param
}

// NewParamList creates a parameter list
func NewParamList(pos Position, params []*Param) *ParamList {
	return &ParamList{stmtBase: stmtBase{pos}, Params: params}
}

func (n *ParamList) SubKind() SubKind            { return KindParamList }
func (n *ParamList) String() string              { return "Params" }
func (n *ParamList) Accept(v Visitor) interface{} { return v.VisitParamList(n) }

// Param is "Type [ Name [ '[' ']' ] ]". The lone "void" parameter has a nil
// Name.
type Param struct {
	stmtBase
	Type    TypeSpec
	Name    *Identifier
	IsArray bool
}

// NewParam creates a parameter
func NewParam(pos Position, typ TypeSpec, name *Identifier, isArray bool) *Param {
	return &Param{stmtBase: stmtBase{pos}, Type: typ, Name: name, IsArray: isArray}
}

func (n *Param) SubKind() SubKind { return KindParam }
func (n *Param) String() string {
	if n.IsArray {
		return "Param []"
	}
	return "Param"
}
func (n *Param) Accept(v Visitor) interface{} { return v.VisitParam(n) }

// Function is "Type Name ( Params ) Body"
type Function struct {
	stmtBase
	Type   TypeSpec
	Name   *Identifier
	Params *ParamList
	Body   *Compound
}

// NewFunction creates a function declaration
func NewFunction(pos Position, typ TypeSpec, name *Identifier, params *ParamList, body *Compound) *Function {
	return &Function{stmtBase: stmtBase{pos}, Type: typ, Name: name, Params: params, Body: body}
}

func (n *Function) SubKind() SubKind            { return KindFunction }
func (n *Function) String() string              { return "Function" }
func (n *Function) Accept(v Visitor) interface{} { return v.VisitFunction(n) }

// VarDecl declares a scalar (Name is *Identifier) or an array (Name is
// *ArrayDecl)
type VarDecl struct {
	stmtBase
	Type TypeSpec
	Name Expr
}

// NewVarDecl creates a variable declaration
func NewVarDecl(pos Position, typ TypeSpec, name Expr) *VarDecl {
	return &VarDecl{stmtBase: stmtBase{pos}, Type: typ, Name: name}
}

func (n *VarDecl) SubKind() SubKind            { return KindVarDecl }
func (n *VarDecl) String() string              { return "Var declaration" }
func (n *VarDecl) Accept(v Visitor) interface{} { return v.VisitVarDecl(n) }

// Compound is "{ local declarations and statements }" in source order
type Compound struct {
	stmtBase
	Items []Node
}

// NewCompound creates a compound statement
func NewCompound(pos Position, items []Node) *Compound {
	return &Compound{stmtBase: stmtBase{pos}, Items: items}
}

func (n *Compound) SubKind() SubKind            { return KindCompound }
func (n *Compound) String() string              { return "Compound" }
func (n *Compound) Accept(v Visitor) interface{} { return v.VisitCompound(n) }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// BinaryOp is "Left Op Right" for arithmetic and relational operators
type BinaryOp struct {
	exprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// NewBinaryOp creates a binary operation
func NewBinaryOp(pos Position, op token.Kind, left, right Expr) *BinaryOp {
	return &BinaryOp{exprBase: exprBase{pos}, Op: op, Left: left, Right: right}
}

func (n *BinaryOp) SubKind() SubKind            { return KindBinaryOp }
func (n *BinaryOp) String() string              { return "Op: " + n.Op.Symbol() }
func (n *BinaryOp) Accept(v Visitor) interface{} { return v.VisitBinaryOp(n) }

// Const is an integer literal
type Const struct {
	exprBase
	Value int
}

// NewConst creates an integer constant
func NewConst(pos Position, value int) *Const {
	return &Const{exprBase: exprBase{pos}, Value: value}
}

func (n *Const) SubKind() SubKind            { return KindConst }
func (n *Const) String() string              { return fmt.Sprintf("Const: %d", n.Value) }
func (n *Const) Accept(v Visitor) interface{} { return v.VisitConst(n) }

// Identifier is a name
type Identifier struct {
	exprBase
	Name string
}

// NewIdentifier creates an identifier
func NewIdentifier(pos Position, name string) *Identifier {
	return &Identifier{exprBase: exprBase{pos}, Name: name}
}

func (n *Identifier) SubKind() SubKind            { return KindIdentifier }
func (n *Identifier) String() string              { return "Id: " + n.Name }
func (n *Identifier) Accept(v Visitor) interface{} { return v.VisitIdentifier(n) }

// IntType is the "int" type specifier
type IntType struct{ exprBase }

// NewIntType creates an int type specifier
func NewIntType(pos Position) *IntType { return &IntType{exprBase{pos}} }

func (n *IntType) SubKind() SubKind            { return KindIntType }
func (n *IntType) String() string              { return "Type: int" }
func (n *IntType) Accept(v Visitor) interface{} { return v.VisitIntType(n) }
func (*IntType) typeSpec()                     {}

// VoidType is the "void" type specifier
type VoidType struct{ exprBase }

// NewVoidType creates a void type specifier
func NewVoidType(pos Position) *VoidType { return &VoidType{exprBase{pos}} }

func (n *VoidType) SubKind() SubKind            { return KindVoidType }
func (n *VoidType) String() string              { return "Type: void" }
func (n *VoidType) Accept(v Visitor) interface{} { return v.VisitVoidType(n) }
func (*VoidType) typeSpec()                     {}

// ArrayElement is "Name [ Index ]"
type ArrayElement struct {
	exprBase
	Name  *Identifier
	Index Expr
}

// NewArrayElement creates an array element access
func NewArrayElement(pos Position, name *Identifier, index Expr) *ArrayElement {
	return &ArrayElement{exprBase: exprBase{pos}, Name: name, Index: index}
}

func (n *ArrayElement) SubKind() SubKind            { return KindArrayElement }
func (n *ArrayElement) String() string              { return "Array element" }
func (n *ArrayElement) Accept(v Visitor) interface{} { return v.VisitArrayElement(n) }

// Call is "Name ( Args )"; Args is nil for an empty argument list
type Call struct {
	exprBase
	Name *Identifier
	Args *ArgList
}

// NewCall creates a function call
func NewCall(pos Position, name *Identifier, args *ArgList) *Call {
	return &Call{exprBase: exprBase{pos}, Name: name, Args: args}
}

func (n *Call) SubKind() SubKind            { return KindCall }
func (n *Call) String() string              { return "Call" }
func (n *Call) Accept(v Visitor) interface{} { return v.VisitCall(n) }

// ArrayDecl is the "Name [ Size ]" part of an array declaration
type ArrayDecl struct {
	exprBase
	Name *Identifier
	Size *Const
}

// NewArrayDecl creates an array declarator
func NewArrayDecl(pos Position, name *Identifier, size *Const) *ArrayDecl {
	return &ArrayDecl{exprBase: exprBase{pos}, Name: name, Size: size}
}

func (n *ArrayDecl) SubKind() SubKind            { return KindArrayDecl }
func (n *ArrayDecl) String() string              { return "Array declaration" }
func (n *ArrayDecl) Accept(v Visitor) interface{} { return v.VisitArrayDecl(n) }

// ArgList holds the arguments of a call in order
type ArgList struct {
	exprBase
	Args []Expr
}

// NewArgList creates an argument list
func NewArgList(pos Position, args []Expr) *ArgList {
	return &ArgList{exprBase: exprBase{pos}, Args: args}
}

func (n *ArgList) SubKind() SubKind            { return KindArgList }
func (n *ArgList) String() string              { return "Args" }
func (n *ArgList) Accept(v Visitor) interface{} { return v.VisitArgList(n) }
