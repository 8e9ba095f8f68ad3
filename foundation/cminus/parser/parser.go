// File: parser.go
// Title: C-minus Recursive Descent Parser
// Description: Builds a syntax tree from the token stream with one token of
//              lookahead. Productions that share an identifier prefix are
//              told apart after the identifier has been consumed. Errors are
//              reported to the sink and collected; recovery skips exactly one
//              token, so parsing always reaches the end of input.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial parser implementation

// Package parser builds C-minus syntax trees from a token stream.
package parser

import (
	"strconv"

	"github.com/msto63/cminus/foundation/cminus/ast"
	"github.com/msto63/cminus/foundation/cminus/diag"
	"github.com/msto63/cminus/foundation/cminus/token"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
)

// TokenSource supplies tokens; after the end of input it must keep
// returning EOF
type TokenSource interface {
	Next() token.Token
}

// Options configures a Parser
type Options struct {
	// Logger receives debug entries on parse start and finish and one entry
	// per syntax error. Nil disables logging.
	Logger *mdwlog.Logger

	// Sink receives syntax error records. Nil disables them.
	Sink diag.Sink
}

// Parser is a recursive descent parser for C-minus. It is not safe for
// concurrent use and parses a single token stream once.
type Parser struct {
	src     TokenSource
	current token.Token
	errors  ErrorList
	tokens  int
	primed  bool

	logger *mdwlog.Logger
	sink   diag.Sink
}

// New creates a parser reading tokens from src
func New(src TokenSource, opts Options) *Parser {
	p := &Parser{
		src:    src,
		logger: opts.Logger,
		sink:   opts.Sink,
	}
	if p.logger == nil {
		p.logger = mdwlog.Discard()
	}
	if p.sink == nil {
		p.sink = diag.Discard
	}
	return p
}

// Parse parses the whole token stream. It always returns a program, which
// may be incomplete when errors were reported; the error list is nil for a
// clean parse.
func (p *Parser) Parse() (*ast.Program, ErrorList) {
	p.logger.Debug("parse started")

	p.advance()
	prog := p.program()
	if p.current.Kind != token.EOF {
		p.report(MsgTrailingInput)
	}

	p.logger.Debug("parse finished", mdwlog.Fields{
		"declarations": len(prog.Decls),
		"errors":       len(p.errors),
		"tokens":       p.tokens,
	})
	return prog, p.errors
}

// Errors returns the syntax errors reported so far
func (p *Parser) Errors() ErrorList {
	return p.errors
}

// Consumed reports whether the token stream was read up to EOF
func (p *Parser) Consumed() bool {
	return p.current.Kind == token.EOF
}

// Tokens returns the number of tokens consumed, EOF excluded
func (p *Parser) Tokens() int {
	return p.tokens
}

// ---------------------------------------------------------------------------
// Token handling
// ---------------------------------------------------------------------------

// advance moves to the next token; EOF is never moved past
func (p *Parser) advance() {
	if p.primed && p.current.Kind == token.EOF {
		return
	}
	p.primed = true
	p.current = p.src.Next()
	if p.current.Kind != token.EOF {
		p.tokens++
	}
}

// match consumes the current token when it has the expected kind. On a
// mismatch the error is reported and the token is left in place.
func (p *Parser) match(expected token.Kind) {
	if p.current.Kind == expected {
		p.advance()
		return
	}
	p.report(MsgUnexpectedToken)
}

// unexpected reports the current token and skips it
func (p *Parser) unexpected(message string) {
	p.report(message)
	p.advance()
}

func (p *Parser) report(message string) {
	tok := p.current
	err := &SyntaxError{
		Line:    tok.Line,
		Column:  tok.Column,
		Message: message,
		Token:   tok,
	}
	p.errors = append(p.errors, err)
	p.sink.SyntaxError(tok.Line, message, tok)
	p.logger.Debug("syntax error", mdwlog.Fields{
		"line":    tok.Line,
		"column":  tok.Column,
		"message": message,
		"token":   tok.Describe(),
	})
}

func (p *Parser) pos() ast.Position {
	return ast.Position{Line: p.current.Line, Column: p.current.Column}
}

func (p *Parser) is(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.current.Kind == k {
			return true
		}
	}
	return false
}

// identifier takes the current token as a name if it is an ID; the token
// itself is not consumed
func (p *Parser) identifier() *ast.Identifier {
	if p.current.Kind != token.ID {
		return nil
	}
	return ast.NewIdentifier(p.pos(), p.current.Lexeme)
}

// constant converts the current NUM token; it is not consumed
func (p *Parser) constant() *ast.Const {
	if p.current.Kind != token.NUM {
		return nil
	}
	value, err := strconv.Atoi(p.current.Lexeme)
	if err != nil {
		p.report(MsgConstantRange)
		value = 0
	}
	return ast.NewConst(p.pos(), value)
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// program -> declaration { declaration }
func (p *Parser) program() *ast.Program {
	var decls []ast.Stmt
	for p.current.Kind != token.EOF {
		if d := p.declaration(); d != nil {
			decls = append(decls, d)
		}
	}
	return ast.NewProgram(decls)
}

// typeSpecifier -> int | void
func (p *Parser) typeSpecifier() ast.TypeSpec {
	pos := p.pos()
	switch p.current.Kind {
	case token.Int:
		p.advance()
		return ast.NewIntType(pos)
	case token.Void:
		p.advance()
		return ast.NewVoidType(pos)
	default:
		p.unexpected(MsgUnexpectedType)
		return nil
	}
}

// declaration -> type ID ( ';' | '[' NUM ']' ';' | '(' params ')' compound )
func (p *Parser) declaration() ast.Stmt {
	pos := p.pos()
	typ := p.typeSpecifier()
	name := p.identifier()
	p.match(token.ID)

	switch p.current.Kind {
	case token.Semi:
		p.advance()
		return ast.NewVarDecl(pos, typ, nameExpr(name))
	case token.LBracket:
		return ast.NewVarDecl(pos, typ, p.arrayDeclarator(name))
	case token.LParen:
		p.advance()
		params := p.paramList()
		p.match(token.RParen)
		body := p.compound()
		return ast.NewFunction(pos, typ, name, params, body)
	default:
		p.unexpected(MsgUnexpectedToken)
		return nil
	}
}

// varDecl -> type ID ( ';' | ',' | ')' | '[' NUM ']' ';' )
func (p *Parser) varDecl() *ast.VarDecl {
	pos := p.pos()
	typ := p.typeSpecifier()
	name := p.identifier()
	p.match(token.ID)

	switch p.current.Kind {
	case token.Semi, token.Comma, token.RParen:
		p.advance()
		return ast.NewVarDecl(pos, typ, nameExpr(name))
	case token.LBracket:
		return ast.NewVarDecl(pos, typ, p.arrayDeclarator(name))
	default:
		p.unexpected(MsgUnexpectedToken)
		return nil
	}
}

// arrayDeclarator -> '[' NUM ']' ';' with the identifier already consumed
func (p *Parser) arrayDeclarator(name *ast.Identifier) *ast.ArrayDecl {
	pos := p.pos()
	if name != nil {
		pos = name.Pos()
	}
	p.match(token.LBracket)
	size := p.constant()
	p.match(token.NUM)
	p.match(token.RBracket)
	p.match(token.Semi)
	return ast.NewArrayDecl(pos, name, size)
}

// nameExpr keeps a missing identifier a nil interface
func nameExpr(name *ast.Identifier) ast.Expr {
	if name == nil {
		return nil
	}
	return name
}

// paramList -> 'void' [ ID [ '[' ']' ] { ',' param } ] | param { ',' param }
func (p *Parser) paramList() *ast.ParamList {
	pos := p.pos()
	var params []*ast.Param

	switch p.current.Kind {
	case token.Void:
		voidPos := p.pos()
		p.advance()
		first := ast.NewParam(voidPos, ast.NewVoidType(voidPos), nil, false)
		if p.current.Kind == token.ID {
			name := p.identifier()
			p.advance()
			first = ast.NewParam(voidPos, ast.NewVoidType(voidPos), name, p.arraySuffix())
			params = append(params, first)
			params = p.moreParams(params)
		} else {
			params = append(params, first)
		}
	case token.Int:
		params = append(params, p.param())
		params = p.moreParams(params)
	default:
		p.unexpected(MsgUnexpectedToken)
	}

	return ast.NewParamList(pos, params)
}

func (p *Parser) moreParams(params []*ast.Param) []*ast.Param {
	for p.current.Kind == token.Comma {
		p.advance()
		params = append(params, p.param())
	}
	return params
}

// param -> type ID [ '[' ']' ]
func (p *Parser) param() *ast.Param {
	pos := p.pos()
	typ := p.typeSpecifier()
	name := p.identifier()
	p.match(token.ID)
	return ast.NewParam(pos, typ, name, p.arraySuffix())
}

// arraySuffix consumes an optional "[ ]"
func (p *Parser) arraySuffix() bool {
	if p.current.Kind != token.LBracket {
		return false
	}
	p.advance()
	p.match(token.RBracket)
	return true
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// compound -> '{' { varDecl | stmt } '}'
func (p *Parser) compound() *ast.Compound {
	pos := p.pos()
	p.match(token.LBrace)

	var items []ast.Node
	for !p.is(token.RBrace, token.EOF) {
		switch p.current.Kind {
		case token.Int, token.Void:
			if d := p.varDecl(); d != nil {
				items = append(items, d)
			}
		case token.Semi, token.ID, token.LParen, token.NUM,
			token.LBrace, token.If, token.While, token.Return:
			if s := p.stmt(); s != nil {
				items = append(items, s)
			}
		default:
			p.unexpected(MsgUnexpectedToken)
		}
	}

	p.match(token.RBrace)
	return ast.NewCompound(pos, items)
}

// stmt -> ifStmt | whileStmt | returnStmt | exprStmt | compound
func (p *Parser) stmt() ast.Node {
	switch p.current.Kind {
	case token.If:
		return p.ifStmt()
	case token.While:
		return p.whileStmt()
	case token.Return:
		return p.returnStmt()
	case token.ID, token.LParen, token.NUM, token.Semi:
		return p.exprStmt()
	case token.LBrace:
		return p.compound()
	default:
		p.unexpected(MsgUnexpectedToken)
		return nil
	}
}

// ifStmt -> 'if' '(' expr ')' stmt [ 'else' stmt ]
func (p *Parser) ifStmt() *ast.If {
	pos := p.pos()
	p.match(token.If)
	p.match(token.LParen)
	cond := p.expr()
	p.match(token.RParen)
	then := p.stmt()

	var els ast.Node
	if p.current.Kind == token.Else {
		p.advance()
		els = p.stmt()
	}
	return ast.NewIf(pos, cond, then, els)
}

// whileStmt -> 'while' '(' expr ')' stmt
func (p *Parser) whileStmt() *ast.While {
	pos := p.pos()
	p.match(token.While)
	p.match(token.LParen)
	cond := p.expr()
	p.match(token.RParen)
	body := p.stmt()
	return ast.NewWhile(pos, cond, body)
}

// returnStmt -> 'return' [ expr ] ';'
func (p *Parser) returnStmt() *ast.Return {
	pos := p.pos()
	p.match(token.Return)

	var value ast.Expr
	if p.is(token.ID, token.LParen, token.NUM) {
		value = p.expr()
	}
	p.match(token.Semi)
	return ast.NewReturn(pos, value)
}

// exprStmt -> [ expr ] ';'
func (p *Parser) exprStmt() ast.Node {
	if p.current.Kind == token.Semi {
		p.advance()
		return nil
	}
	e := p.expr()
	p.match(token.Semi)
	if e == nil {
		return nil
	}
	return e
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// followsOperand reports whether the current token may follow a complete
// operand: an operator or a token that closes the surrounding construct
func (p *Parser) followsOperand() bool {
	k := p.current.Kind
	return k.IsMultiplicative() || k.IsAdditive() || k.IsRelational() ||
		k == token.Semi || k == token.RParen || k == token.Comma || k == token.RBracket
}

// expr -> ID ( '[' expr ']' ( '=' expr | tail ) | '(' args ')' tail | '=' expr | tail )
//
//	| '(' expr ')' tail
//	| NUM tail
func (p *Parser) expr() ast.Expr {
	pos := p.pos()

	switch p.current.Kind {
	case token.ID:
		id := p.identifier()
		p.advance()

		switch p.current.Kind {
		case token.LBracket:
			p.advance()
			index := p.expr()
			p.match(token.RBracket)
			elem := ast.NewArrayElement(pos, id, index)
			if p.current.Kind == token.Assign {
				p.advance()
				return ast.NewAssign(pos, elem, p.expr())
			}
			if p.followsOperand() {
				return p.simpleExpr(elem)
			}
			return elem
		case token.LParen:
			p.advance()
			args := p.args()
			p.match(token.RParen)
			return p.simpleExpr(ast.NewCall(pos, id, args))
		case token.Assign:
			p.advance()
			return ast.NewAssign(pos, id, p.expr())
		default:
			if p.followsOperand() {
				return p.simpleExpr(id)
			}
			return id
		}

	case token.LParen:
		p.advance()
		inner := p.expr()
		p.match(token.RParen)
		if inner == nil {
			return nil
		}
		return p.simpleExpr(inner)

	case token.NUM:
		c := p.constant()
		p.advance()
		return p.simpleExpr(c)

	default:
		p.unexpected(MsgUnexpectedToken)
		return nil
	}
}

// simpleExpr continues an expression whose first operand has already been
// parsed: { mulop factor } { addop term } [ relop additive ]. Both operator
// levels fold to the left.
func (p *Parser) simpleExpr(left ast.Expr) ast.Expr {
	for p.current.Kind.IsMultiplicative() {
		left = p.binary(left, p.factor)
	}
	for p.current.Kind.IsAdditive() {
		left = p.binary(left, p.term)
	}
	if p.current.Kind.IsRelational() {
		left = p.binary(left, p.additive)
	}
	return left
}

// binary consumes the operator and parses the right operand with operand
func (p *Parser) binary(left ast.Expr, operand func() ast.Expr) ast.Expr {
	pos := p.pos()
	if left != nil {
		pos = left.Pos()
	}
	op := p.current.Kind
	p.advance()
	return ast.NewBinaryOp(pos, op, left, operand())
}

// additive -> term { addop term }
func (p *Parser) additive() ast.Expr {
	left := p.term()
	for p.current.Kind.IsAdditive() {
		left = p.binary(left, p.term)
	}
	return left
}

// term -> factor { mulop factor }
func (p *Parser) term() ast.Expr {
	left := p.factor()
	for p.current.Kind.IsMultiplicative() {
		left = p.binary(left, p.factor)
	}
	return left
}

// factor -> '(' expr ')' | ID [ '[' expr ']' | '(' args ')' ] | NUM
func (p *Parser) factor() ast.Expr {
	pos := p.pos()

	switch p.current.Kind {
	case token.LParen:
		p.advance()
		inner := p.expr()
		p.match(token.RParen)
		return inner

	case token.ID:
		id := p.identifier()
		p.advance()
		switch p.current.Kind {
		case token.LBracket:
			p.advance()
			index := p.expr()
			p.match(token.RBracket)
			return ast.NewArrayElement(pos, id, index)
		case token.LParen:
			p.advance()
			args := p.args()
			p.match(token.RParen)
			return ast.NewCall(pos, id, args)
		default:
			if !p.followsOperand() {
				p.unexpected(MsgUnexpectedToken)
			}
			return id
		}

	case token.NUM:
		c := p.constant()
		p.advance()
		return c

	default:
		p.unexpected(MsgUnexpectedToken)
		return nil
	}
}

// args -> ε | expr { ',' expr }
func (p *Parser) args() *ast.ArgList {
	pos := p.pos()

	switch p.current.Kind {
	case token.RParen:
		return nil
	case token.ID, token.LParen, token.NUM:
		var list []ast.Expr
		if e := p.expr(); e != nil {
			list = append(list, e)
		}
		for p.current.Kind == token.Comma {
			p.advance()
			if e := p.expr(); e != nil {
				list = append(list, e)
			}
		}
		return ast.NewArgList(pos, list)
	default:
		p.unexpected(MsgUnexpectedToken)
		return nil
	}
}
