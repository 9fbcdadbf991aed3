package syntax

import "vaaktra/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The raw string value of the token.  This may not directly correspond to
	// the source text: eg. the value of a string token has the leading quotes
	// trimmed off and its escape sequences decoded for convenience.
	Value string

	// The decoded semantic value of the token: int64 for integer literals,
	// bool for boolean literals, string for string literals, nil otherwise.
	// Devanagari and ASCII digit runs with the same digit pattern decode to
	// the same int64 value.
	Decoded interface{}

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_FUNC = iota // मन्त्र

	TOK_IF     // यदि
	TOK_ELSE   // अन्यथा
	TOK_WHILE  // यावत्
	TOK_RETURN // निर्गम

	TOK_INTTYPE  // संख्या
	TOK_BOOLTYPE // सत्यासत्य
	TOK_STRTYPE  // पाठ

	TOK_MUT // चल

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_NOT
	TOK_LAND
	TOK_LOR

	TOK_AMP
	TOK_ASSIGN

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_COMMA
	TOK_SEMI
	TOK_COLON

	TOK_IDENT
	TOK_INTLIT
	TOK_BOOLLIT
	TOK_STRINGLIT

	TOK_EOF
)

// keywordPatterns maps keyword strings (patterns) to their keyword token
// kind.  The table is a closed, versioned enumeration: adding a keyword to
// the language means adding an entry here, never registering one at runtime.
var keywordPatterns = map[string]int{
	"मन्त्र": TOK_FUNC,

	"यदि":    TOK_IF,
	"अन्यथा": TOK_ELSE,
	"यावत्":  TOK_WHILE,
	"निर्गम": TOK_RETURN,

	"संख्या":    TOK_INTTYPE,
	"सत्यासत्य": TOK_BOOLTYPE,
	"पाठ":       TOK_STRTYPE,

	"चल": TOK_MUT,

	"सत्यम्": TOK_BOOLLIT,
	"मिथ्या": TOK_BOOLLIT,
}

// symbolPatterns maps symbol strings (patterns) to their punctuation or
// operator token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	// Division is handled with comment logic.
	"%": TOK_MOD,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"!":  TOK_NOT,
	"&&": TOK_LAND,
	"||": TOK_LOR,

	"&": TOK_AMP,
	"=": TOK_ASSIGN,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	",": TOK_COMMA,
	";": TOK_SEMI,
	":": TOK_COLON,
}
