package ast

import (
	"vaaktra/common"
	"vaaktra/report"
)

// Oper is an operator as it was applied in the source.
type Oper struct {
	// The token kind of the operator.
	Kind int

	// The string form of the operator.
	Name string

	// The span of the operator token.
	Span *report.TextSpan
}

// BinaryExpr represents a binary operator application.  Assignment is a
// binary expression whose operator is `=`; it yields unit.
type BinaryExpr struct {
	ExprBase

	// The applied operator.
	Op Oper

	// The operands of the expression.
	Lhs, Rhs ASTExpr
}

// UnaryExpr represents a unary operator application: arithmetic negation,
// logical not, borrow (`&` or `&चल`), or dereference (`*`).
type UnaryExpr struct {
	ExprBase

	// The applied operator.
	Op Oper

	// The operand of the expression.
	Operand ASTExpr

	// Whether the operator is a mutable borrow.  Only meaningful when the
	// operator is a borrow.
	MutBorrow bool
}

// CallExpr represents a function call.
type CallExpr struct {
	ExprBase

	// The called function expression.
	Func ASTExpr

	// The arguments of the call, in source order.
	Args []ASTExpr
}

// Literal represents an integer, boolean, or string literal.
type Literal struct {
	ExprBase

	// The token kind of the literal.
	Kind int

	// The decoded value of the literal: int64, bool, or string.  Devanagari
	// and ASCII digit runs with the same digit pattern decode to the same
	// int64 here.
	Value interface{}

	// The raw source text of the literal.
	Text string
}

// Identifier represents a reference to a named symbol.
type Identifier struct {
	ExprBase

	// The name of the identifier.
	Name string

	// The symbol the identifier resolves to.  Nil until the analyzer
	// resolves it.
	Sym *common.Symbol
}
