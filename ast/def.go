package ast

import "vaaktra/common"

// Program represents a single parsed translation unit: a list of function
// definitions.  Loose top-level statements are collected by the parser into
// an implicit entry function, so every statement in the tree lives inside
// some function by the time analysis begins.
type Program struct {
	ASTBase

	// The function definitions of the program, in source order.
	Funcs []*FuncDef
}

// FuncDef represents a function definition (मन्त्र).
type FuncDef struct {
	ASTBase

	// The symbol of the function being defined.
	Symbol *common.Symbol

	// The parameter symbols of the function, in declaration order.
	Params []*common.Symbol

	// The body of the function.
	Body *Block

	// Whether this definition was synthesized by the parser to hold loose
	// top-level statements.
	Synthetic bool
}

// Block represents a `{}`-delimited list of statements.
type Block struct {
	ASTBase

	// The statements of the block.
	Stmts []ASTNode
}
