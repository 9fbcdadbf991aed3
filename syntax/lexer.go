package syntax

import (
	"strings"
	"unicode"

	"vaaktra/report"
)

// Lexer is responsible for tokenizing a source text.  It produces a lazy,
// non-restartable sequence of tokens terminated by an EOF token.  Lexical
// errors are raised as compile errors: the first error halts the stage, since
// tokens after a lexical error are unreliable.
type Lexer struct {
	source  []rune
	tokBuff *strings.Builder

	pos, line, col      int
	startPos            int
	startLine, startCol int
}

// NewLexer creates a new lexer for the given source text.
func NewLexer(source string) *Lexer {
	return &Lexer{
		source:  []rune(source),
		tokBuff: &strings.Builder{},
	}
}

// NextToken retrieves the next token from the source text.  If the text has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() *Token {
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok := l.lexCommentOrDiv(); tok != nil {
				return tok
			}
		case '"':
			return l.lexStringLit()
		default:
			if isDigit(c) {
				return l.lexIntLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF)
}

// -----------------------------------------------------------------------------

// lexPunctOrOper lexes a punctuation or operator symbol.
func (l *Lexer) lexPunctOrOper() *Token {
	l.mark()
	first := l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		// A single character that is no token on its own may still begin a
		// two-character operator (eg. `|` begins `||`).
		if next := l.peek(); next != -1 {
			if _kind, ok := symbolPatterns[string(first)+string(next)]; ok {
				l.eat()
				return l.makeToken(_kind)
			}
		}

		panic(report.Raise(report.KindUnexpectedCharacter, l.getSpan(), "unexpected character: `%c`", first))
	}

	for {
		c := l.peek()
		if c == -1 {
			break
		}

		if _kind, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = _kind
		} else {
			break
		}
	}

	return l.makeToken(kind)
}

// -----------------------------------------------------------------------------

// lexIdentOrKeyword lexes an identifier or a keyword.  Identifiers follow
// Unicode word boundaries, so Devanagari identifiers (including combining
// marks such as the virama) lex the same way ASCII ones do; any identifier
// outside the keyword table is an ordinary identifier, never an error.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()
	l.eat()

	for {
		c := l.peek()
		if !isIdentChar(c) {
			break
		}

		l.eat()
	}

	kind := TOK_IDENT
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	}

	tok := l.makeToken(kind)
	if kind == TOK_BOOLLIT {
		tok.Decoded = tok.Value == "सत्यम्"
	}

	return tok
}

// -----------------------------------------------------------------------------

// lexIntLit lexes an integer literal: a contiguous run of either ASCII or
// Devanagari digit glyphs.  Mixing the two scripts within one literal is a
// lexical error.  Both scripts decode to the same semantic integer values:
// each Devanagari glyph ०-९ maps to its 0-9 value before the literal is
// constructed.
func (l *Lexer) lexIntLit() *Token {
	l.mark()
	first := l.eat()
	devanagari := isDevanagariDigit(first)

	var value int64
	value = digitValue(first)

	for {
		c := l.peek()
		if !isDigit(c) {
			break
		}

		if isDevanagariDigit(c) != devanagari {
			// Consume the rest of the digit run so the error spans the whole
			// malformed literal.
			for isDigit(l.peek()) {
				l.eat()
			}

			panic(report.Raise(
				report.KindInvalidNumberLiteral,
				l.getSpan(),
				"number literal mixes Devanagari and ASCII digits: `%s`",
				l.tokBuff.String(),
			))
		}

		l.eat()

		// Accumulation deliberately wraps: integers are fixed-width with
		// silent two's-complement wraparound everywhere in the language.
		value = value*10 + digitValue(c)
	}

	tok := l.makeToken(TOK_INTLIT)
	tok.Decoded = value
	return tok
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a string literal, decoding its escape sequences.
func (l *Lexer) lexStringLit() *Token {
	l.mark()
	l.skip()

	for {
		switch c := l.peek(); c {
		case -1, '\n':
			panic(report.Raise(report.KindUnterminatedString, l.getSpan(), "unterminated string literal"))
		case '"':
			l.skip()
			tok := l.makeToken(TOK_STRINGLIT)
			tok.Decoded = tok.Value
			return tok
		case '\\':
			l.skip()
			l.tokBuff.WriteRune(l.decodeEscapeSequence())
		default:
			l.eat()
		}
	}
}

// decodeEscapeSequence decodes a single escape sequence.  This assumes the
// leading `\` has already been consumed.
func (l *Lexer) decodeEscapeSequence() rune {
	switch c := l.skip(); c {
	case -1:
		panic(report.Raise(report.KindUnterminatedString, l.getSpan(), "unterminated string literal"))
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\', '"':
		return c
	default:
		panic(report.Raise(report.KindUnexpectedCharacter, l.getSpan(), "unknown escape sequence: `\\%c`", c))
	}
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a comment or a division token.  Comments are consumed
// silently; nil is returned for them.
func (l *Lexer) lexCommentOrDiv() *Token {
	l.mark()
	l.skip()

	switch l.peek() {
	case '/':
		for c := l.skip(); c != '\n' && c != -1; c = l.skip() {
		}
	case '*':
		l.skip()
		for {
			c := l.skip()
			if c == -1 {
				return nil
			}

			if c == '*' && l.peek() == '/' {
				l.skip()
				return nil
			}
		}
	default:
		tok := l.makeToken(TOK_DIV)
		tok.Value = "/"
		return tok
	}

	return nil
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start position to its current position.
func (l *Lexer) mark() {
	l.startPos = l.pos
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartOffset: l.startPos,
		EndOffset:   l.pos,
		StartLine:   l.startLine,
		StartCol:    l.startCol,
		EndLine:     l.line,
		EndCol:      l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token
// buffer.  If the lexer has reached the end of the source, -1 is returned.
func (l *Lexer) eat() rune {
	c := l.skip()
	if c != -1 {
		l.tokBuff.WriteRune(c)
	}

	return c
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer has reached the end of the source, -1 is
// returned.
func (l *Lexer) skip() rune {
	if l.pos >= len(l.source) {
		return -1
	}

	c := l.source[l.pos]
	l.pos++

	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return c
}

// peek returns the next rune in the source without moving the lexer forward.
// If the lexer has reached the end of the source, -1 is returned.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.source) {
		return -1
	}

	return l.source[l.pos]
}

// -----------------------------------------------------------------------------

// isDigit returns whether c is an ASCII or Devanagari digit.
func isDigit(c rune) bool {
	return isASCIIDigit(c) || isDevanagariDigit(c)
}

// isASCIIDigit returns whether c is an ASCII decimal digit.
func isASCIIDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isDevanagariDigit returns whether c is a Devanagari digit glyph (०-९).
func isDevanagariDigit(c rune) bool {
	return '०' <= c && c <= '९'
}

// digitValue returns the 0-9 value of an ASCII or Devanagari digit glyph.
func digitValue(c rune) int64 {
	if isDevanagariDigit(c) {
		return int64(c - '०')
	}

	return int64(c - '0')
}

// isFirstIdentChar returns whether c could be the first rune of an
// identifier.
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

// isIdentChar returns whether c could be a continuation rune of an
// identifier.  Combining marks are included so that Devanagari words carrying
// matras and the virama (eg. यावत्) lex as single identifiers.
func isIdentChar(c rune) bool {
	return c != -1 && (unicode.IsLetter(c) || unicode.IsMark(c) || unicode.IsDigit(c) || c == '_')
}
