// File: token.go
// Title: C-minus Token Model
// Description: Token kinds, the reserved-word table and the textual token
//              descriptions used by scan traces and syntax error records.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial token model

package token

import (
	"fmt"
)

// Kind represents the kind of a lexical token
type Kind int

const (
	// Book-keeping tokens
	EOF Kind = iota
	Error

	// Reserved words
	If
	Else
	Int
	Return
	Void
	While

	// Multi-character tokens
	ID
	NUM

	// Special symbols
	Assign   // =
	EQ       // ==
	NEQ      // ~=
	LT       // <
	LE       // <=
	GT       // >
	GE       // >=
	Plus     // +
	Minus    // -
	Times    // *
	Over     // /
	LParen   // (
	RParen   // )
	Semi     // ;
	Comma    // ,
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
)

var kindNames = [...]string{
	EOF:      "EOF",
	Error:    "ERROR",
	If:       "IF",
	Else:     "ELSE",
	Int:      "INT",
	Return:   "RETURN",
	Void:     "VOID",
	While:    "WHILE",
	ID:       "ID",
	NUM:      "NUM",
	Assign:   "ASSIGN",
	EQ:       "EQ",
	NEQ:      "NEQ",
	LT:       "LT",
	LE:       "LE",
	GT:       "GT",
	GE:       "GE",
	Plus:     "PLUS",
	Minus:    "MINUS",
	Times:    "TIMES",
	Over:     "OVER",
	LParen:   "LPAREN",
	RParen:   "RPAREN",
	Semi:     "SEMI",
	Comma:    "COMMA",
	LBracket: "LBRACKET",
	RBracket: "RBRACKET",
	LBrace:   "LBRACE",
	RBrace:   "RBRACE",
}

// String returns the upper-case name of the kind
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var symbols = map[Kind]string{
	Assign:   "=",
	EQ:       "==",
	NEQ:      "~=",
	LT:       "<",
	LE:       "<=",
	GT:       ">",
	GE:       ">=",
	Plus:     "+",
	Minus:    "-",
	Times:    "*",
	Over:     "/",
	LParen:   "(",
	RParen:   ")",
	Semi:     ";",
	Comma:    ",",
	LBracket: "[",
	RBracket: "]",
	LBrace:   "{",
	RBrace:   "}",
}

// Symbol returns the source spelling of a symbol kind, or "" for other kinds
func (k Kind) Symbol() string {
	return symbols[k]
}

// IsReserved reports whether k is a reserved word
func (k Kind) IsReserved() bool {
	return k >= If && k <= While
}

// IsRelational reports whether k is one of the six comparison operators
func (k Kind) IsRelational() bool {
	switch k {
	case LT, LE, GT, GE, EQ, NEQ:
		return true
	}
	return false
}

// IsAdditive reports whether k is + or -
func (k Kind) IsAdditive() bool {
	return k == Plus || k == Minus
}

// IsMultiplicative reports whether k is * or /
func (k Kind) IsMultiplicative() bool {
	return k == Times || k == Over
}

// reservedWords is searched linearly; the table is tiny
var reservedWords = [...]struct {
	word string
	kind Kind
}{
	{"if", If},
	{"else", Else},
	{"int", Int},
	{"return", Return},
	{"void", Void},
	{"while", While},
}

// Lookup maps a complete identifier lexeme to its reserved-word kind, or ID.
// The comparison is exact and case-sensitive.
func Lookup(lexeme string) Kind {
	for _, rw := range reservedWords {
		if rw.word == lexeme {
			return rw.kind
		}
	}
	return ID
}

// Token is a lexical token. Lexeme is an independent copy and stays valid
// after the scanner moves on.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int // 1-based
	Column int // 1-based column of the first character
}

// String returns a compact representation for debugging
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case ID, NUM, Error:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
	default:
		return t.Kind.String()
	}
}

// Describe renders the token the way the listing prints it
func (t Token) Describe() string {
	return Describe(t.Kind, t.Lexeme)
}

// Describe renders a token kind and lexeme as a listing line fragment:
// "reserved word: if", "ID, name= x", "NUM, val= 3", "ERROR: ~", "EOF",
// or the symbol itself.
func Describe(kind Kind, lexeme string) string {
	switch {
	case kind.IsReserved():
		return "reserved word: " + lexeme
	case kind == ID:
		return "ID, name= " + lexeme
	case kind == NUM:
		return "NUM, val= " + lexeme
	case kind == Error:
		return "ERROR: " + lexeme
	case kind == EOF:
		return "EOF"
	}
	if s := kind.Symbol(); s != "" {
		return s
	}
	return "Unknown token: " + kind.String()
}
