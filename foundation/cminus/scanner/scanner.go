// File: scanner.go
// Title: C-minus Lexical Analyzer
// Description: DFA scanner that turns C-minus source text into tokens. Reads
//              the input one line at a time, supports exactly one character
//              of pushback, skips /* */ comments and resolves reserved words
//              once an identifier is complete.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial scanner implementation

// Package scanner converts C-minus source text into tokens.
package scanner

import (
	"bufio"
	"errors"
	"io"

	"github.com/msto63/cminus/foundation/cminus/diag"
	"github.com/msto63/cminus/foundation/cminus/token"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
)

// eofChar is returned by nextChar once the input is exhausted
const eofChar = -1

// state is a state of the scanner DFA
type state int

const (
	stateStart state = iota
	stateSlash          // seen '/', deciding between OVER and a comment
	stateInComment      // inside /* ... */
	stateCommentClosing // inside a comment, just seen '*'
	stateInNumber
	stateInIdentifier
	stateInLess
	stateInGreater
	stateInTilde
	stateInEquals
	stateDone
)

// Options configures a Scanner
type Options struct {
	// Logger receives a warning for unterminated comments and, at trace
	// level, one entry per token. Nil disables logging.
	Logger *mdwlog.Logger

	// Sink receives every source line and every token. Nil disables both.
	Sink diag.Sink
}

// Scanner is a pull-based tokenizer. It is not safe for concurrent use.
type Scanner struct {
	reader *bufio.Reader
	logger *mdwlog.Logger
	sink   diag.Sink

	line   string // current physical line including its newline
	pos    int    // index of the next character in line
	lineno int    // number of the current line, 1-based
	eof    bool   // physical end of input reached; pushback is a no-op

	// lexeme is reused for every token; Token.Lexeme gets a copy
	lexeme []byte

	unterminated bool
	finished     bool
	err          error
}

// New creates a scanner reading from r
func New(r io.Reader, opts Options) *Scanner {
	s := &Scanner{
		reader: bufio.NewReader(r),
		logger: opts.Logger,
		sink:   opts.Sink,
		lexeme: make([]byte, 0, 64),
	}
	if s.logger == nil {
		s.logger = mdwlog.Discard()
	}
	if s.sink == nil {
		s.sink = diag.Discard
	}
	return s
}

// nextChar returns the next character, reading a new line when the current
// one is exhausted
func (s *Scanner) nextChar() int {
	if s.pos < len(s.line) {
		c := s.line[s.pos]
		s.pos++
		return int(c)
	}
	if s.eof {
		return eofChar
	}

	text, err := s.reader.ReadString('\n')
	if len(text) == 0 {
		s.eof = true
		if err != nil && !errors.Is(err, io.EOF) {
			s.err = mdwerror.Wrap(err, "reading source").
				WithCode(mdwerror.CodeSourceRead).
				WithDetail("line", s.lineno+1)
		}
		return eofChar
	}

	s.lineno++
	s.line = text
	s.pos = 0
	s.sink.EchoLine(s.lineno, text)

	c := s.line[s.pos]
	s.pos++
	return int(c)
}

// unreadChar backs up one character in the current line
func (s *Scanner) unreadChar() {
	if !s.eof && s.pos > 0 {
		s.pos--
	}
}

// Next returns the next token. After the end of input it keeps returning EOF.
func (s *Scanner) Next() token.Token {
	if s.finished {
		return s.eofToken()
	}

	s.lexeme = s.lexeme[:0]
	st := stateStart
	kind := token.Error
	line, col := s.lineno, s.pos
	commentLine := 0

	for st != stateDone {
		c := s.nextChar()
		save := true

		switch st {
		case stateStart:
			line, col = s.lineno, s.pos
			switch {
			case isDigit(c):
				st = stateInNumber
			case isLetter(c):
				st = stateInIdentifier
			case c == '<':
				st = stateInLess
			case c == '>':
				st = stateInGreater
			case c == '~':
				st = stateInTilde
			case c == '=':
				st = stateInEquals
			case c == '/':
				st = stateSlash
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				save = false
			case c == eofChar:
				save = false
				st = stateDone
				kind = token.EOF
			default:
				st = stateDone
				kind = singleCharKind(c)
			}

		case stateInEquals:
			st = stateDone
			kind = s.twoChar(c, '=', token.EQ, token.Assign, &save)

		case stateInTilde:
			st = stateDone
			kind = s.twoChar(c, '=', token.NEQ, token.Error, &save)

		case stateInLess:
			st = stateDone
			kind = s.twoChar(c, '=', token.LE, token.LT, &save)

		case stateInGreater:
			st = stateDone
			kind = s.twoChar(c, '=', token.GE, token.GT, &save)

		case stateInNumber:
			if !isDigit(c) {
				s.unreadChar()
				save = false
				st = stateDone
				kind = token.NUM
			}

		case stateInIdentifier:
			if !isLetter(c) {
				s.unreadChar()
				save = false
				st = stateDone
				kind = token.ID
			}

		case stateSlash:
			save = false
			if c == '*' {
				s.lexeme = s.lexeme[:0]
				commentLine = line
				st = stateInComment
			} else {
				s.unreadChar()
				st = stateDone
				kind = token.Over
			}

		case stateInComment:
			save = false
			switch c {
			case eofChar:
				st = stateDone
				kind = token.EOF
				s.noteUnterminated(commentLine)
			case '*':
				st = stateCommentClosing
			}

		case stateCommentClosing:
			save = false
			switch c {
			case eofChar:
				st = stateDone
				kind = token.EOF
				s.noteUnterminated(commentLine)
			case '*':
				// still closing
			case '/':
				st = stateStart
			default:
				st = stateInComment
			}
		}

		if save && c != eofChar {
			s.lexeme = append(s.lexeme, byte(c))
		}
	}

	if kind == token.ID {
		kind = token.Lookup(string(s.lexeme))
	}

	tok := token.Token{Kind: kind, Lexeme: string(s.lexeme), Line: line, Column: col}
	if kind == token.EOF {
		s.finished = true
		tok = s.eofToken()
	}

	s.sink.TraceToken(tok)
	if s.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		s.logger.Trace("token", mdwlog.Fields{
			"kind":   tok.Kind.String(),
			"lexeme": tok.Lexeme,
			"line":   tok.Line,
			"column": tok.Column,
		})
	}
	return tok
}

// twoChar finishes a possibly two-character operator: when c equals second
// the long kind is returned, otherwise c is pushed back
func (s *Scanner) twoChar(c int, second byte, long, short token.Kind, save *bool) token.Kind {
	if c == int(second) {
		return long
	}
	s.unreadChar()
	*save = false
	return short
}

func (s *Scanner) noteUnterminated(startLine int) {
	s.unterminated = true
	s.logger.Warn("unterminated comment at end of input", mdwlog.Fields{
		"comment_line": startLine,
		"last_line":    s.lineno,
	})
}

func (s *Scanner) eofToken() token.Token {
	line := s.lineno
	if line < 1 {
		line = 1
	}
	return token.Token{Kind: token.EOF, Line: line, Column: s.pos + 1}
}

// Line returns the number of the line currently being scanned
func (s *Scanner) Line() int {
	return s.lineno
}

// UnterminatedComment reports whether the input ended inside a comment
func (s *Scanner) UnterminatedComment() bool {
	return s.unterminated
}

// Err returns the first read error other than io.EOF
func (s *Scanner) Err() error {
	return s.err
}

func singleCharKind(c int) token.Kind {
	switch c {
	case '+':
		return token.Plus
	case '-':
		return token.Minus
	case '*':
		return token.Times
	case '(':
		return token.LParen
	case ')':
		return token.RParen
	case ';':
		return token.Semi
	case ',':
		return token.Comma
	case '[':
		return token.LBracket
	case ']':
		return token.RBracket
	case '{':
		return token.LBrace
	case '}':
		return token.RBrace
	default:
		return token.Error
	}
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

// isLetter accepts ASCII letters only; identifiers carry no digits or '_'
func isLetter(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
