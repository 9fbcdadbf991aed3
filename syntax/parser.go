package syntax

import (
	"vaaktra/ast"
	"vaaktra/report"
	"vaaktra/util"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is the parser for a Vāktra translation unit.  It is a recursive
// descent parser: it moves over the source token by token and decides what to
// parse based on the token it is currently positioned on and its context
// (implicit from the callstack of parsing functions).  All parsing functions
// assume that they begin with the parser positioned on the first token of
// their production and must consume all tokens of their production, leaving
// the parser on the next token.  Parsing is deterministic and total: for any
// token sequence it either yields exactly one AST or raises exactly one
// syntax error; no partial output survives a failure.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source text.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token before the current token.
	lookbehind *Token
}

// Parse parses a source text and returns the resulting program.  Loose
// top-level statements are collected into a synthetic entry function named
// प्रधानं so that every statement lives inside a function.  Any lexical or
// syntax error is raised as a compile error and must be caught by the caller.
func Parse(source string) *ast.Program {
	p := &Parser{lexer: NewLexer(source)}
	p.next()

	return p.parseProgram()
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.lookbehind = p.tok
	p.tok = p.lexer.NextToken()
}

// has returns whether the parser is on a token of the given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// hasOneOf returns whether the parser's current token kind is one of the
// given kinds.
func (p *Parser) hasOneOf(kinds ...int) bool {
	return util.Contains(kinds, p.tok.Kind)
}

// want asserts that the parser is on a token of the given kind, rejecting the
// current token if not, and moves the parser forward.  The matched token is
// returned.
func (p *Parser) want(kind int) *Token {
	return p.wantAs(kind, report.KindUnexpectedToken)
}

// wantAs behaves as want but raises its rejection with the given diagnostic
// kind, so productions with dedicated error subkinds (eg. missing statement
// terminators) can report precisely.
func (p *Parser) wantAs(kind, errKind int) *Token {
	if !p.has(kind) {
		p.rejectAs(errKind, "expected %s", tokenKindRepr(kind))
	}

	tok := p.tok
	p.next()
	return tok
}

// -----------------------------------------------------------------------------

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	p.rejectAs(report.KindUnexpectedToken, "unexpected token")
}

// rejectAs raises an error of the given diagnostic kind on the current token.
func (p *Parser) rejectAs(errKind int, msg string, args ...interface{}) {
	var found string
	if p.tok.Kind == TOK_EOF {
		found = "end of input"
	} else {
		found = "`" + p.tok.Value + "`"
	}

	panic(report.Raise(errKind, p.tok.Span, msg+", found %s", append(args, found)...))
}

// error raises an error of the given diagnostic kind on the given token.
func (p *Parser) error(tok *Token, errKind int, msg string, args ...interface{}) {
	panic(report.Raise(errKind, tok.Span, msg, args...))
}

// -----------------------------------------------------------------------------

// tokenKindRepr returns the display form of a token kind used in syntax error
// messages.
func tokenKindRepr(kind int) string {
	for pattern, patternKind := range keywordPatterns {
		if patternKind == kind {
			return "`" + pattern + "`"
		}
	}

	for pattern, patternKind := range symbolPatterns {
		if patternKind == kind {
			return "`" + pattern + "`"
		}
	}

	switch kind {
	case TOK_IDENT:
		return "identifier"
	case TOK_INTLIT:
		return "integer literal"
	case TOK_STRINGLIT:
		return "string literal"
	case TOK_DIV:
		return "`/`"
	case TOK_EOF:
		return "end of input"
	default:
		return "token"
	}
}
