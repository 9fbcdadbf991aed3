package ast

import (
	"vaaktra/report"
	"vaaktra/types"
)

// The abstract interface for all AST nodes.  Nodes are pure data: they are
// produced by the parser, annotated with types by the analyzer, and never
// mutated afterwards.  Each node owns its children exclusively; the AST is a
// tree, not a graph.
type ASTNode interface {
	// The text span of the AST node.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// ASTExpr is the interface for all AST expression nodes.
type ASTExpr interface {
	ASTNode

	// The yielded type of the expression.  This is nil until the analyzer
	// resolves it; no expression reaches lowering without a resolved type.
	Type() types.Type

	// SetType sets the yielded type of the expression.
	SetType(types.Type)

	// The value category of the expression.  This must be one of the
	// enumerated value categories.
	Category() int
}

// Enumeration of value categories.
const (
	LValue = iota
	RValue
)

// ExprBase is the base struct for all expression nodes.
type ExprBase struct {
	ASTBase

	typ types.Type
	cat int
}

// NewExprBase creates a new expression base over the given span with the
// given value category.
func NewExprBase(span *report.TextSpan, cat int) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span), cat: cat}
}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	eb.typ = typ
}

func (eb *ExprBase) Category() int {
	return eb.cat
}
